package changelog

import (
	"fmt"
	"strings"
	"time"
)

// ParseError reports a malformed log line with its 1-based line number.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parse converts log-file text into a sequence of typed entries.
//
// An entry is a "*"-prefixed header line immediately followed by a
// "-"-prefixed body line; the blank separator line after the body is
// optional. Stray lines that belong to no entry are skipped, matching the
// sort stage of the original tool. A header with no following body line is
// an error rather than the index crash the adjacency scan used to produce.
func Parse(text string) ([]Entry, error) {
	lines := strings.Split(text, "\n")
	var entries []Entry

	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "*") {
			continue
		}
		if i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], "-") {
			return nil, &ParseError{
				Line:    i + 1,
				Message: "header line has no following \"-\" body line",
			}
		}

		entry, err := parseEntry(lines[i], lines[i+1], i+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		i++ // body line consumed
	}

	return entries, nil
}

// parseEntry builds an Entry from a header/body line pair.
// lineNum is the 1-based number of the header line, used for diagnostics.
func parseEntry(header, body string, lineNum int) (Entry, error) {
	tokens := strings.Split(header, " ")

	date, hasTime, rest, err := parseHeaderDate(tokens)
	if err != nil {
		return Entry{}, &ParseError{Line: lineNum, Message: err.Error()}
	}

	author, email := parseAuthor(rest)

	subject := strings.TrimPrefix(body, "-")
	subject = strings.TrimPrefix(subject, " ")

	return Entry{
		Date:    date,
		HasTime: hasTime,
		Author:  author,
		Email:   email,
		Subject: subject,
	}, nil
}

// parseHeaderDate parses the date tokens of a header line. Full headers
// carry five date tokens (weekday month day HH:MM:SS year); headers that
// went through the cleanup stage carry four (no time field). The time form
// is detected by the ":" in the fourth date token. Returns the remaining
// tokens after the date.
func parseHeaderDate(tokens []string) (time.Time, bool, []string, error) {
	// tokens[0] is the "*" marker
	if len(tokens) >= 6 && strings.Contains(tokens[4], ":") {
		date, err := time.Parse(headerDateLayout, strings.Join(tokens[1:6], " "))
		if err != nil {
			return time.Time{}, false, nil, fmt.Errorf("parsing header date: %v", err)
		}
		return date, true, tokens[6:], nil
	}

	if len(tokens) >= 5 {
		date, err := time.Parse(headerDateNoTime, strings.Join(tokens[1:5], " "))
		if err != nil {
			return time.Time{}, false, nil, fmt.Errorf("parsing header date: %v", err)
		}
		return date, false, tokens[5:], nil
	}

	return time.Time{}, false, nil, fmt.Errorf("header has %d tokens, need at least 5", len(tokens))
}

// parseAuthor splits the post-date remainder "Name Surname<email> " into
// author name and email. The last "<" starts the email so author names
// containing "<" still parse.
func parseAuthor(rest []string) (author, email string) {
	rem := strings.TrimRight(strings.Join(rest, " "), " ")
	idx := strings.LastIndex(rem, "<")
	if idx < 0 {
		return rem, ""
	}
	author = rem[:idx]
	email = strings.TrimSuffix(rem[idx+1:], ">")
	return author, email
}

// Render serializes entries back to the log-file text form: a header line,
// a body line, and a blank separator line per entry. It is the inverse of
// Parse for well-formed input.
func Render(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(renderHeader(e))
		sb.WriteString("\n- ")
		sb.WriteString(e.Subject)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// renderHeader rebuilds the header line. The trailing space matches git's
// "* %cd %aN<%ae> " format expansion and survives the cleanup stage's
// token rejoin in the original tool, so it is preserved here too.
func renderHeader(e Entry) string {
	layout := headerDateLayout
	if !e.HasTime {
		layout = headerDateNoTime
	}
	return "* " + e.Date.Format(layout) + " " + e.Author + "<" + e.Email + "> "
}
