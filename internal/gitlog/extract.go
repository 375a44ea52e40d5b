package gitlog

import (
	"context"
	"fmt"
	"strings"
)

// LogFormat is git's format string for one changelog entry: a header line
// with commit date and author, a body line with the subject and ref
// decorations, and a blank separator line. The trailing space after %ae>
// is part of the wire format the downstream stages expect.
const LogFormat = "* %cd %aN<%ae> %n- %s%d%n"

// Extract runs the log command for one source tree and returns the raw
// entry text for every commit after the since timestamp.
//
// --date=local keeps the header date in git's default 5-token form
// (weekday month day HH:MM:SS year, single-space separated, no timezone),
// which is the exact shape the sort stage parses.
func Extract(ctx context.Context, r Runner, gitCmd, tree, since string) (string, error) {
	result, err := r.Run(ctx, tree, gitCmd,
		"log",
		"--after="+since,
		"--format="+LogFormat,
		"--date=local",
	)
	if err != nil {
		return "", fmt.Errorf("extracting log for %s: %w", tree, err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("extracting log for %s: git exited %d: %s",
			tree, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return result.Stdout, nil
}
