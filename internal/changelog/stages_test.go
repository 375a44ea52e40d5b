package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	headerAlice = "* Thu Mar 10 11:05:09 2022 Alice Example<alice@example.com> "
	headerBob   = "* Wed Mar 9 18:45:12 2022 Bob Builder<bob@example.com> "
	headerCarol = "* Tue Feb 1 09:00:00 2022 Carol Coder<carol@example.com> "
)

func TestTag(t *testing.T) {
	text := entryText(headerAlice, "- fix cgroup mount") +
		entryText(headerBob, "- vendor bump (tag: v1.1.0)")

	tagged, err := Tag(text, "RUNC")
	require.NoError(t, err)

	entries, err := Parse(tagged)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fix cgroup mount RUNC", entries[0].Subject)
	assert.Equal(t, "vendor bump (tag: v1.1.0) RUNC", entries[1].Subject)
}

func TestTag_DanglingHeader(t *testing.T) {
	_, err := Tag("* Thu Mar 10 11:05:09 2022 Alice<alice@example.com> \n", "RUNC")
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestSortByDate(t *testing.T) {
	// Oldest first on input; output must be newest first.
	text := entryText(headerCarol, "- oldest") +
		entryText(headerAlice, "- newest") +
		entryText(headerBob, "- middle")

	sorted, err := SortByDate(text)
	require.NoError(t, err)

	entries, err := Parse(sorted)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].Subject)
	assert.Equal(t, "middle", entries[1].Subject)
	assert.Equal(t, "oldest", entries[2].Subject)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.After(entries[i-1].Date),
			"dates must be non-increasing")
	}
}

func TestSortByDate_StableForEqualTimestamps(t *testing.T) {
	text := entryText(headerAlice, "- first of the tie") +
		entryText(headerAlice, "- second of the tie") +
		entryText(headerCarol, "- older")

	sorted, err := SortByDate(text)
	require.NoError(t, err)

	entries, err := Parse(sorted)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "first of the tie", entries[0].Subject)
	assert.Equal(t, "second of the tie", entries[1].Subject)
	assert.Equal(t, "older", entries[2].Subject)
}

func TestCleanup_StripsTimeField(t *testing.T) {
	text := entryText(headerAlice, "- fix cgroup mount")

	cleaned, err := Cleanup(text)
	require.NoError(t, err)
	assert.Equal(t,
		"* Thu Mar 10 2022 Alice Example<alice@example.com> \n- fix cgroup mount\n\n",
		cleaned)
}

func TestCleanup_RemovesMergeEntries(t *testing.T) {
	tests := map[string]struct {
		text         string
		wantSubjects []string
	}{
		"merge entry between two others": {
			text: entryText(headerAlice, "- change A") +
				entryText(headerBob, "- Merge branch 'release-1.1'") +
				entryText(headerCarol, "- change B"),
			wantSubjects: []string{"change A", "change B"},
		},
		"merge entry first in file": {
			text: entryText(headerAlice, "- Merge pull request #42") +
				entryText(headerBob, "- change A"),
			wantSubjects: []string{"change A"},
		},
		"merge entry last in file": {
			text: entryText(headerAlice, "- change A") +
				entryText(headerBob, "- Merge branch 'main'"),
			wantSubjects: []string{"change A"},
		},
		"merge word later in subject is kept": {
			text:         entryText(headerAlice, "- do not Merge this mid-subject"),
			wantSubjects: []string{"do not Merge this mid-subject"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cleaned, err := Cleanup(tc.text)
			require.NoError(t, err)

			entries, err := Parse(cleaned)
			require.NoError(t, err)

			var subjects []string
			for _, e := range entries {
				subjects = append(subjects, e.Subject)
				assert.False(t, e.HasTime, "time field must be stripped")
			}
			assert.Equal(t, tc.wantSubjects, subjects)
		})
	}
}

func TestCleanup_IdempotentOnCleanedText(t *testing.T) {
	text := entryText(headerAlice, "- change A") +
		entryText(headerCarol, "- change B")

	once, err := Cleanup(text)
	require.NoError(t, err)

	twice, err := Cleanup(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestEnrich(t *testing.T) {
	tests := map[string]struct {
		subject  string
		wantLine string
	}{
		"ticket and CVE": {
			subject:  "fix bug TFS12345 CVE-2023-0001",
			wantLine: "- fix bug TFS12345 CVE-2023-0001 [TFS12345] {CVE-2023-0001}",
		},
		"ticket as first word": {
			subject:  "TFS88 vendor bump",
			wantLine: "- TFS88 vendor bump [TFS88] ",
		},
		"EC ticket": {
			subject:  "EC1024 harden seccomp profile",
			wantLine: "- EC1024 harden seccomp profile [EC1024] ",
		},
		"CVE only": {
			subject:  "backport fix for CVE-2022-24769",
			wantLine: "- backport fix for CVE-2022-24769  {CVE-2022-24769}",
		},
		"no references": {
			subject:  "update documentation",
			wantLine: "- update documentation  ",
		},
		"last CVE wins": {
			subject:  "address CVE-2022-0001 and CVE-2022-0002",
			wantLine: "- address CVE-2022-0001 and CVE-2022-0002  {CVE-2022-0002}",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			enriched, err := Enrich(entryText(headerAlice, "- "+tc.subject))
			require.NoError(t, err)

			lines := strings.Split(enriched, "\n")
			require.GreaterOrEqual(t, len(lines), 2)
			assert.Equal(t, tc.wantLine, lines[1])
		})
	}
}

func TestCleanupThenEnrich_PreservesEntryCount(t *testing.T) {
	text := entryText(headerAlice, "- change A TFS12") +
		entryText(headerBob, "- change B") +
		entryText(headerCarol, "- change C CVE-2022-1234")

	cleaned, err := Cleanup(text)
	require.NoError(t, err)

	enriched, err := Enrich(cleaned)
	require.NoError(t, err)

	entries, err := Parse(enriched)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
