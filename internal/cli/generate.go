package cli

import (
	"fmt"

	"github.com/ariel-frischer/speclog/internal/changelog"
	"github.com/ariel-frischer/speclog/internal/config"
	cerrors "github.com/ariel-frischer/speclog/internal/errors"
	"github.com/ariel-frischer/speclog/internal/gitlog"
	"github.com/ariel-frischer/speclog/internal/output"
	"github.com/ariel-frischer/speclog/internal/progress"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the changelog pipeline and append the result to the spec file",
	Long: `Run the full changelog pipeline:

  1. Extract commit history for both source trees into the log file
     (companion tree first, tagged with its marker; primary tree appended)
  2. Sort all entries newest-first by commit date
  3. Remove merge-commit entries and strip time-of-day fields
  4. Annotate TFS/EC ticket and CVE references
  5. Append the transformed log file to the spec file

Examples:
  speclog generate
  speclog generate --since "2023-01-01 00:00:00"
  speclog generate --dry-run          # print the result, leave the spec file alone
  speclog generate --log-file /tmp/gitlog --spec-file ./pkg.spec`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("log-file", "", "Working log file path (overrides config)")
	generateCmd.Flags().String("spec-file", "", "Spec file to append the changelog to (overrides config)")
	generateCmd.Flags().String("since", "", "Only include commits after this timestamp (overrides config)")
	generateCmd.Flags().Bool("dry-run", false, "Run all stages but print the result instead of appending to the spec file")
	generateCmd.Flags().Bool("progress", false, "Show a spinner during pipeline stages")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return cerrors.WrapWithMessage(err, cerrors.Configuration, "loading configuration",
			"Run 'speclog config init' to write a commented config template",
			"Check .speclog/config.yml for syntax errors")
	}
	applyGenerateFlags(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return cerrors.WrapWithMessage(err, cerrors.Argument, "invalid flag value")
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	showProgress, _ := cmd.Flags().GetBool("progress")

	pipeline := &changelog.Pipeline{
		Config: cfg,
		Runner: gitlog.ExecRunner{},
		DryRun: dryRun,
	}

	var display *progress.Display
	if showProgress {
		display = progress.NewDisplay(cmd.OutOrStdout(), progress.DetectTerminalCapabilities())
		pipeline.Report = func(n, total int, name string) {
			display.CompleteStage()
			display.StartStage(fmt.Sprintf("[%d/%d] %s", n, total, name))
		}
	} else {
		pipeline.Report = func(n, total int, name string) {
			output.PrintStageHeader(cmd.OutOrStdout(), n, total, name)
		}
	}

	final, err := pipeline.Run(cmd.Context())
	if display != nil {
		if err != nil {
			display.FailStage()
		} else {
			display.CompleteStage()
		}
	}
	if err != nil {
		return cerrors.WrapWithMessage(err, cerrors.Runtime, "changelog pipeline failed",
			"Verify both source trees are git repositories",
			"Verify the git executable is on PATH (or set git_cmd)")
	}

	if dryRun {
		output.PrintSeparator(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), final)
		output.PrintSeparator(cmd.OutOrStdout())
		return nil
	}

	output.PrintStageSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("Changelog appended to %s", cfg.SpecFile))
	return nil
}

// applyGenerateFlags overrides config values from flags that were set.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile, _ = cmd.Flags().GetString("log-file")
	}
	if cmd.Flags().Changed("spec-file") {
		cfg.SpecFile, _ = cmd.Flags().GetString("spec-file")
	}
	if cmd.Flags().Changed("since") {
		cfg.Since, _ = cmd.Flags().GetString("since")
	}
}
