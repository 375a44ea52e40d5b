package changelog

import (
	"sort"
	"strings"
)

// The pipeline stages below all share the same shape: parse the log text
// into entries, transform, render back. Each one is a pure text → text
// function; file I/O stays in the pipeline.

// Tag appends the marker token to every entry's subject. The pipeline
// applies it to the companion tree's extraction output only, before the
// primary tree's log is appended, so the marker identifies which tree a
// commit came from after the two logs are merged.
func Tag(text, marker string) (string, error) {
	entries, err := Parse(text)
	if err != nil {
		return "", err
	}
	for i := range entries {
		entries[i].Subject += " " + marker
	}
	return Render(entries), nil
}

// SortByDate reorders entries newest-first by their parsed header date.
// The sort is stable: entries sharing a timestamp keep their relative
// order. Stray lines that belong to no entry are dropped.
func SortByDate(text string) (string, error) {
	entries, err := Parse(text)
	if err != nil {
		return "", err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return Render(entries), nil
}

// Cleanup strips the HH:MM:SS field from every header line and removes
// every entry whose subject's first word starts with "Merge".
//
// Removal is entry-granular: a merge entry first or last in the file
// removes only itself, never an adjacent entry's lines. Cleanup is
// idempotent; running it on already-cleaned text is a no-op.
func Cleanup(text string) (string, error) {
	entries, err := Parse(text)
	if err != nil {
		return "", err
	}
	kept := entries[:0]
	for _, e := range entries {
		if isMergeSubject(e.Subject) {
			continue
		}
		e.HasTime = false
		kept = append(kept, e)
	}
	return Render(kept), nil
}

// isMergeSubject reports whether the subject's first word starts with
// "Merge" (merge commits format as "Merge branch ..." / "Merge pull
// request ...").
func isMergeSubject(subject string) bool {
	first, _, _ := strings.Cut(subject, " ")
	return strings.HasPrefix(first, "Merge")
}

// Enrich appends reference tags to every entry's subject: a bracketed
// [TFSnnn] or [ECnnn] ticket tag for the first subject word carrying one
// of those prefixes, and a braced {CVE-...} tag for a CVE identifier. The
// two separating spaces are appended even when no tag matched, so every
// enriched subject ends " <ticket> <cve>" with possibly-empty tags.
func Enrich(text string) (string, error) {
	entries, err := Parse(text)
	if err != nil {
		return "", err
	}
	for i := range entries {
		entries[i].Subject += " " + referenceTags(entries[i])
	}
	return Render(entries), nil
}

// referenceTags builds the " <ticket> <cve>" suffix for an entry. The first
// TFS/EC word wins; for CVEs the last match wins, as in the original scan.
func referenceTags(e Entry) string {
	var ticket, cve string
	for _, w := range e.SubjectWords() {
		if ticket == "" && (strings.HasPrefix(w, "TFS") || strings.HasPrefix(w, "EC")) {
			ticket = "[" + w + "]"
		}
		if strings.HasPrefix(w, "CVE-") {
			cve = "{" + w + "}"
		}
	}
	return ticket + " " + cve
}
