package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/speclog/internal/changelog"
	"github.com/ariel-frischer/speclog/internal/config"
	cerrors "github.com/ariel-frischer/speclog/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Parse the log file and print its entries in a structured form",
	Long: `Parse the working log file into typed entries and print them.

The yaml format exposes the parsed fields (date, author, email, subject);
the text format prints the canonical header/body/blank rendering, which is
also a quick way to normalize a hand-edited log file.

Examples:
  speclog export
  speclog export --format text
  speclog export --log-file /tmp/gitlog`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("format", "yaml", "Output format: yaml | text")
	exportCmd.Flags().String("log-file", "", "Log file to parse (overrides config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return cerrors.WrapWithMessage(err, cerrors.Configuration, "loading configuration")
	}

	logFile := cfg.LogFile
	if cmd.Flags().Changed("log-file") {
		logFile, _ = cmd.Flags().GetString("log-file")
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		return cerrors.WrapWithMessage(err, cerrors.Prerequisite, "reading log file",
			"Run 'speclog generate' first to create the log file")
	}

	entries, err := changelog.Parse(string(data))
	if err != nil {
		return cerrors.WrapWithMessage(err, cerrors.Runtime, "parsing log file")
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml":
		out, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encoding entries: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	case "text":
		fmt.Fprint(cmd.OutOrStdout(), changelog.Render(entries))
	default:
		return cerrors.NewArgumentError(
			fmt.Sprintf("unknown format %q", format),
			"Use --format yaml or --format text")
	}
	return nil
}
