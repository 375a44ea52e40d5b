package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/speclog/internal/config"
	cerrors "github.com/ariel-frischer/speclog/internal/errors"
	"github.com/ariel-frischer/speclog/internal/gitlog"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize speclog configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration and source-tree status",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config template to .speclog/config.yml",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return cerrors.WrapWithMessage(err, cerrors.Configuration, "loading configuration")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "log_file:  %s\n", cfg.LogFile)
	fmt.Fprintf(out, "spec_file: %s\n", cfg.SpecFile)
	fmt.Fprintf(out, "since:     %s\n", cfg.Since)
	fmt.Fprintf(out, "git_cmd:   %s\n", cfg.GitCmd)
	printSource(out, "companion", cfg.Companion)
	printSource(out, "primary", cfg.Primary)
	return nil
}

// printSource prints one source tree with its repository status: the HEAD
// branch when the path opens as a git repository, the open error otherwise.
func printSource(out io.Writer, name string, src config.Source) {
	fmt.Fprintf(out, "%s:\n", name)
	fmt.Fprintf(out, "  path:   %s\n", src.Path)
	if src.Marker != "" {
		fmt.Fprintf(out, "  marker: %s\n", src.Marker)
	}

	branch, err := gitlog.HeadBranch(src.Path)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  status: unavailable (%v)\n", err)
	case branch == "":
		fmt.Fprintf(out, "  status: ok (detached HEAD)\n")
	default:
		fmt.Fprintf(out, "  status: ok (branch %s)\n", branch)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil {
		return cerrors.NewConfigError(
			fmt.Sprintf("config file already exists at %s", path),
			"Remove it first if you want a fresh template")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote config template to %s\n", path)
	return nil
}
