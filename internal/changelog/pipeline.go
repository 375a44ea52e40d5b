package changelog

import (
	"context"
	"fmt"
	"os"

	"github.com/ariel-frischer/speclog/internal/config"
	"github.com/ariel-frischer/speclog/internal/gitlog"
)

// StageNames lists the pipeline stages in execution order, for progress
// display.
var StageNames = []string{
	"Extracting commit history",
	"Sorting entries",
	"Removing merge entries and time fields",
	"Annotating references",
	"Publishing to spec file",
}

// Pipeline assembles the changelog: extract both trees into the log file,
// tag the companion tree's entries, sort newest-first, clean up, enrich
// with reference tags, and append the result to the spec file.
//
// Every stage after extraction is a whole-file read/transform/write on the
// log file, which stays on disk as the working and final representation.
type Pipeline struct {
	Config *config.Configuration
	Runner gitlog.Runner

	// Validate checks a source tree before extraction. Nil means
	// gitlog.ValidateTree. Tests substitute a stub.
	Validate func(path string) error

	// Report, when set, is called at the start of each stage with the
	// 1-based stage number, total stage count, and stage name.
	Report func(n, total int, name string)

	// DryRun skips the final append to the spec file.
	DryRun bool
}

// Run executes the pipeline and returns the final changelog text.
// Any stage error aborts the run; the log file may be left in a partially
// transformed state, as a rerun regenerates it from scratch.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	validate := p.Validate
	if validate == nil {
		validate = gitlog.ValidateTree
	}

	for _, src := range []config.Source{p.Config.Companion, p.Config.Primary} {
		if err := validate(src.Path); err != nil {
			return "", fmt.Errorf("validating source tree: %w", err)
		}
	}

	p.report(1)
	if err := p.extract(ctx); err != nil {
		return "", err
	}

	p.report(2)
	if err := p.transformLog(SortByDate); err != nil {
		return "", fmt.Errorf("sorting log: %w", err)
	}

	p.report(3)
	if err := p.transformLog(Cleanup); err != nil {
		return "", fmt.Errorf("cleaning log: %w", err)
	}

	p.report(4)
	if err := p.transformLog(Enrich); err != nil {
		return "", fmt.Errorf("enriching log: %w", err)
	}

	p.report(5)
	final, err := os.ReadFile(p.Config.LogFile)
	if err != nil {
		return "", fmt.Errorf("reading log file: %w", err)
	}
	if !p.DryRun {
		if err := Publish(p.Config.LogFile, p.Config.SpecFile); err != nil {
			return "", err
		}
	}

	return string(final), nil
}

// extract writes the companion tree's tagged log to the log file, then
// appends the primary tree's log. Tagging happens before the append so the
// marker lands only on companion entries.
func (p *Pipeline) extract(ctx context.Context) error {
	cfg := p.Config

	companionLog, err := gitlog.Extract(ctx, p.Runner, cfg.GitCmd, cfg.Companion.Path, cfg.Since)
	if err != nil {
		return err
	}
	if cfg.Companion.Marker != "" {
		companionLog, err = Tag(companionLog, cfg.Companion.Marker)
		if err != nil {
			return fmt.Errorf("tagging companion log: %w", err)
		}
	}
	if err := os.WriteFile(cfg.LogFile, []byte(companionLog), 0644); err != nil {
		return fmt.Errorf("writing log file: %w", err)
	}

	primaryLog, err := gitlog.Extract(ctx, p.Runner, cfg.GitCmd, cfg.Primary.Path, cfg.Since)
	if err != nil {
		return err
	}
	return appendFile(cfg.LogFile, primaryLog)
}

// transformLog applies one text → text stage to the log file in place.
func (p *Pipeline) transformLog(stage func(string) (string, error)) error {
	data, err := os.ReadFile(p.Config.LogFile)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}
	out, err := stage(string(data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.Config.LogFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing log file: %w", err)
	}
	return nil
}

func (p *Pipeline) report(n int) {
	if p.Report != nil {
		p.Report(n, len(StageNames), StageNames[n-1])
	}
}

// Publish appends the transformed log file's contents to the spec file,
// creating the spec file if it does not exist. Append, never overwrite:
// the spec file's existing content is the packaging descriptor itself.
func Publish(logPath, specPath string) error {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}
	return appendFile(specPath, string(content))
}

// appendFile appends text to path, creating it if needed.
func appendFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Close()
}
