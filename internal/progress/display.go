package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Display shows a spinner for the stage currently running. On a non-TTY
// the spinner is skipped and stages print as plain lines, so piped output
// stays clean.
type Display struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	current string
}

// NewDisplay creates a Display writing to out with the given capabilities.
func NewDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// StartStage begins showing progress for a stage, stopping any previous
// spinner first.
func (d *Display) StartStage(name string) {
	d.StopSpinner()
	d.current = name

	if !d.caps.IsTTY {
		fmt.Fprintf(d.out, "%s...\n", name)
		return
	}

	d.spin = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(d.out))
	d.spin.Suffix = " " + name + "..."
	d.spin.Start()
}

// CompleteStage stops the spinner and prints the completion symbol for the
// current stage.
func (d *Display) CompleteStage() {
	name := d.current
	d.StopSpinner()
	if name == "" || !d.caps.IsTTY {
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", d.symbols.Checkmark, name)
}

// FailStage stops the spinner and prints the failure symbol. Best-effort;
// the error itself is reported by the caller.
func (d *Display) FailStage() {
	name := d.current
	d.StopSpinner()
	if name == "" || !d.caps.IsTTY {
		return
	}
	fmt.Fprintf(d.out, "%s %s\n", d.symbols.Failure, name)
}

// StopSpinner stops the spinner without printing a status line.
func (d *Display) StopSpinner() {
	if d.spin != nil {
		d.spin.Stop()
		d.spin = nil
	}
}
