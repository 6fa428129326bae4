// Package book models the mdBook preprocessor protocol: the JSON book
// collection received on stdin and the transformed book written to stdout.
package book

import (
	"encoding/json"
	"fmt"
)

// Chapter is one content-bearing unit of the book.
type Chapter struct {
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Number      []uint32 `json:"number"`
	SubItems    []Item   `json:"sub_items"`
	Path        *string  `json:"path"`
	SourcePath  *string  `json:"source_path"`
	ParentNames []string `json:"parent_names"`
}

// Item is one entry of the book's section list. Exactly one of the variants
// is set, mirroring mdBook's externally tagged BookItem enum.
type Item struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// MarshalJSON emits the serde representation: {"Chapter": {...}},
// {"PartTitle": "..."} or the bare string "Separator".
func (it Item) MarshalJSON() ([]byte, error) {
	switch {
	case it.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": it.Chapter})
	case it.Separator:
		return json.Marshal("Separator")
	default:
		return json.Marshal(map[string]string{"PartTitle": it.PartTitle})
	}
}

// UnmarshalJSON accepts the serde representation produced by mdBook.
func (it *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Separator" {
			return fmt.Errorf("book: unknown item variant %q", s)
		}
		*it = Item{Separator: true}
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("book: decode item: %w", err)
	}
	if raw, ok := m["Chapter"]; ok {
		ch := new(Chapter)
		if err := json.Unmarshal(raw, ch); err != nil {
			return fmt.Errorf("book: decode chapter: %w", err)
		}
		*it = Item{Chapter: ch}
		return nil
	}
	if raw, ok := m["PartTitle"]; ok {
		var title string
		if err := json.Unmarshal(raw, &title); err != nil {
			return fmt.Errorf("book: decode part title: %w", err)
		}
		*it = Item{PartTitle: title}
		return nil
	}
	return fmt.Errorf("book: unrecognized item: %s", data)
}

// Book is the full document collection.
type Book struct {
	Sections []Item `json:"sections"`
	// mdBook serializes this marker field; round-trip it untouched.
	NonExhaustive json.RawMessage `json:"__non_exhaustive,omitempty"`
}

// ForEachChapter visits every chapter in order, including nested sub-items.
func (b *Book) ForEachChapter(fn func(*Chapter)) {
	visitItems(b.Sections, fn)
}

func visitItems(items []Item, fn func(*Chapter)) {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		fn(ch)
		visitItems(ch.SubItems, fn)
	}
}
