// Package cli wires the speclog commands: generate runs the changelog
// pipeline, export dumps the parsed log file, config inspects and writes
// configuration, version prints build metadata.
package cli

import (
	"os"

	"github.com/ariel-frischer/speclog/internal/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "speclog",
	Short: "Assemble an RPM changelog from git commit history",
	Long: `speclog assembles a release changelog from the commit history of two
source trees, merges and sorts the entries newest-first, strips merge
commits and time-of-day fields, annotates TFS/EC ticket and CVE
references, and appends the result to an RPM packaging spec file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to project config file (default .speclog/config.yml)")
}

// Execute runs the root command. Structured CLI errors are printed with
// their remediation steps; anything else gets cobra's default rendering.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.FprintError(os.Stderr, cliErr)
	} else {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}
