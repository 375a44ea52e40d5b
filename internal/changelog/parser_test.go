package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryText(header, body string) string {
	return header + "\n" + body + "\n\n"
}

func TestParse_WellFormed(t *testing.T) {
	tests := map[string]struct {
		text     string
		expected []Entry
	}{
		"single entry with time": {
			text: entryText(
				"* Thu Mar 10 11:05:09 2022 Alice Example<alice@example.com> ",
				"- fix cgroup mount (HEAD -> main)",
			),
			expected: []Entry{{
				Date:    time.Date(2022, time.March, 10, 11, 5, 9, 0, time.UTC),
				HasTime: true,
				Author:  "Alice Example",
				Email:   "alice@example.com",
				Subject: "fix cgroup mount (HEAD -> main)",
			}},
		},
		"cleaned entry without time": {
			text: entryText(
				"* Thu Mar 10 2022 Alice Example<alice@example.com> ",
				"- fix cgroup mount",
			),
			expected: []Entry{{
				Date:    time.Date(2022, time.March, 10, 0, 0, 0, 0, time.UTC),
				HasTime: false,
				Author:  "Alice Example",
				Email:   "alice@example.com",
				Subject: "fix cgroup mount",
			}},
		},
		"two entries with stray blank lines": {
			text: "\n" +
				entryText(
					"* Thu Mar 10 11:05:09 2022 Alice Example<alice@example.com> ",
					"- first change",
				) + "\n" +
				entryText(
					"* Tue Feb 1 09:00:00 2022 Bob Builder<bob@example.com> ",
					"- second change",
				),
			expected: []Entry{
				{
					Date:    time.Date(2022, time.March, 10, 11, 5, 9, 0, time.UTC),
					HasTime: true,
					Author:  "Alice Example",
					Email:   "alice@example.com",
					Subject: "first change",
				},
				{
					Date:    time.Date(2022, time.February, 1, 9, 0, 0, 0, time.UTC),
					HasTime: true,
					Author:  "Bob Builder",
					Email:   "bob@example.com",
					Subject: "second change",
				},
			},
		},
		"empty input": {
			text:     "",
			expected: nil,
		},
		"stray non-entry lines are skipped": {
			text:     "some unrelated line\nanother one\n",
			expected: nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			entries, err := Parse(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, entries)
		})
	}
}

func TestParse_DanglingHeader(t *testing.T) {
	tests := map[string]struct {
		text     string
		wantLine int
	}{
		"header at end of input": {
			text:     "* Thu Mar 10 11:05:09 2022 Alice<alice@example.com> \n",
			wantLine: 1,
		},
		"header followed by blank line": {
			text: entryText(
				"* Thu Mar 10 11:05:09 2022 Alice<alice@example.com> ",
				"- ok",
			) + "* Tue Feb 1 09:00:00 2022 Bob<bob@example.com> \n\n",
			wantLine: 4,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.text)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.wantLine, parseErr.Line)
		})
	}
}

func TestParse_BadHeaderDate(t *testing.T) {
	text := entryText(
		"* not a date at all here<x@example.com> ",
		"- subject",
	)
	_, err := Parse(text)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "parsing header date")
}

func TestRender_RoundTrip(t *testing.T) {
	text := entryText(
		"* Thu Mar 10 11:05:09 2022 Alice Example<alice@example.com> ",
		"- fix cgroup mount (tag: v1.1.0)",
	) + entryText(
		"* Tue Feb 1 09:00:00 2022 Bob Builder<bob@example.com> ",
		"- TFS88 vendor bump",
	)

	entries, err := Parse(text)
	require.NoError(t, err)

	rendered := Render(entries)
	assert.Equal(t, text, rendered)

	// A second pass must see the same entries.
	again, err := Parse(rendered)
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestRender_CleanedHeaderKeepsTrailingSpace(t *testing.T) {
	entries := []Entry{{
		Date:    time.Date(2022, time.March, 10, 0, 0, 0, 0, time.UTC),
		Author:  "Alice Example",
		Email:   "alice@example.com",
		Subject: "fix things",
	}}

	rendered := Render(entries)
	assert.Equal(t,
		"* Thu Mar 10 2022 Alice Example<alice@example.com> \n- fix things\n\n",
		rendered)
}
