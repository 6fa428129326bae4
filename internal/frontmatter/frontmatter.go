// Package frontmatter extracts +++-delimited key/value frontmatter from a
// chapter's Markdown event stream and splices a rendered metadata table back
// in its place.
//
// The delimiter is "+++" rather than the conventional "---" because a line of
// dashes parses as a heading underline in Markdown.
//
// Raw lines are collected from text events only. Inline HTML inside a
// frontmatter line is tokenized as separate raw-HTML events, which the
// scanner drops while capturing, so a value like "a <b>bold</b> move" loses
// its tags before parsing and keeps only the text fragments.
package frontmatter

import "strings"

// Delimiter bounds a frontmatter region. It must match the full content of a
// text event, not a substring.
const Delimiter = "+++"

// Entry is one key/value pair of a frontmatter block. Entries keep their
// source order and are not deduplicated.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParseEntries turns captured frontmatter lines into ordered entries.
// Each line is split at the first colon; later colons stay in the value.
// Lines without a colon are skipped silently.
func ParseEntries(lines []string) []Entry {
	var entries []Entry
	for _, line := range lines {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		entries = append(entries, Entry{
			Key:   strings.TrimSpace(parts[0]),
			Value: strings.TrimSpace(parts[1]),
		})
	}
	return entries
}
