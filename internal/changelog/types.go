package changelog

import (
	"strings"
	"time"
)

// Entry is one commit's changelog record: a header line carrying the commit
// date and author, and a body line carrying the subject (plus any ref
// decorations git appended and any marker token a stage appended).
//
// The subject is kept verbatim rather than split into subject/decorations:
// git's %d expansion is not reliably separable from subjects that themselves
// contain parentheses, and no stage needs the distinction.
type Entry struct {
	// Date is the commit date parsed from the header line.
	Date time.Time `yaml:"date"`

	// HasTime reports whether the header still carries the HH:MM:SS field.
	// The cleanup stage strips it; a cleaned entry renders the 4-token
	// date form (weekday month day year).
	HasTime bool `yaml:"-"`

	Author string `yaml:"author"`
	Email  string `yaml:"email"`

	// Subject is the body line content after the "- " prefix, verbatim.
	// Includes ref decorations and any appended marker or reference tags.
	Subject string `yaml:"subject"`
}

// Date layouts matching git's default date formatting with --date=local.
// Git never zero-pads the day, so "2" (not "02") is the correct layout token.
const (
	headerDateLayout = "Mon Jan 2 15:04:05 2006"
	headerDateNoTime = "Mon Jan 2 2006"
)

// SubjectWords returns the single-space-separated words of the subject,
// matching the tokenization the annotation stages use. Empty words from
// repeated spaces are dropped.
func (e Entry) SubjectWords() []string {
	if e.Subject == "" {
		return nil
	}
	parts := strings.Split(e.Subject, " ")
	words := make([]string, 0, len(parts))
	for _, w := range parts {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
