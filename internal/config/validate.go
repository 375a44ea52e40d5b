package config

import (
	"fmt"
	"strings"
	"time"
)

// SinceLayout is the timestamp format for the extraction window,
// matching what git --after accepts.
const SinceLayout = "2006-01-02 15:04:05"

// Validate checks configuration values before the pipeline runs.
// Tree paths are checked for presence only; whether they open as git
// repositories is the gitlog package's concern.
func Validate(cfg *Configuration) error {
	if cfg.LogFile == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	if cfg.SpecFile == "" {
		return fmt.Errorf("spec_file must not be empty")
	}
	if cfg.GitCmd == "" {
		return fmt.Errorf("git_cmd must not be empty")
	}

	if cfg.Since != "" {
		if _, err := time.Parse(SinceLayout, cfg.Since); err != nil {
			return fmt.Errorf("since %q: want format %q: %v", cfg.Since, SinceLayout, err)
		}
	}

	if err := validateSource("companion", cfg.Companion); err != nil {
		return err
	}
	return validateSource("primary", cfg.Primary)
}

func validateSource(name string, src Source) error {
	if src.Path == "" {
		return fmt.Errorf("%s.path must not be empty", name)
	}
	// A marker with spaces would split into multiple subject tokens and
	// confuse the enrichment scan.
	if strings.ContainsAny(src.Marker, " \t\n") {
		return fmt.Errorf("%s.marker %q must be a single token", name, src.Marker)
	}
	return nil
}
