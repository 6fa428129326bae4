package frontmatter

import (
	"fmt"

	"src.elv.sh/pkg/md"
)

// DefaultTableClass is the CSS class of rendered metadata tables.
const DefaultTableClass = "preamble"

// authorKey marks the one entry whose value is linkified.
const authorKey = "author"

// Renderer renders frontmatter entries as a raw HTML table block and drives
// the event-stream rewrite.
//
// Keys and values are inserted into the table verbatim, without HTML
// escaping. Chapter authors control both, so treat chapter sources as
// trusted input.
type Renderer struct {
	// TableClass is the CSS class on the <table> tag. Empty means
	// DefaultTableClass.
	TableClass string
}

func (r Renderer) tableClass() string {
	if r.TableClass == "" {
		return DefaultTableClass
	}
	return r.TableClass
}

// TableOp renders entries into a single raw HTML block op: the opening table
// tag, one row per entry in order, and the closing tag.
//
// The <th>…</td> pairing in each row is intentionally kept as-is; the
// downstream stylesheet depends on the exact markup.
func (r Renderer) TableOp(entries []Entry) md.Op {
	lines := make([]string, 0, len(entries)+2)
	lines = append(lines, fmt.Sprintf("<table class=%q>", r.tableClass()))
	for _, e := range entries {
		value := e.Value
		if e.Key == authorKey {
			value = Linkify(value)
		}
		lines = append(lines, fmt.Sprintf("<tr><th>%s</td><td>%s</td></tr>", e.Key, value))
	}
	lines = append(lines, "</table>")
	return md.Op{Type: md.OpHTMLBlock, Lines: lines}
}
