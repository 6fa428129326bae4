package frontmatter

import (
	"reflect"
	"testing"
)

func TestParseEntries_Basic(t *testing.T) {
	lines := []string{"author: Jane", "date: 2024-01-01"}
	got := ParseEntries(lines)
	want := []Entry{
		{Key: "author", Value: "Jane"},
		{Key: "date", Value: "2024-01-01"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestParseEntries_TrimsWhitespace(t *testing.T) {
	got := ParseEntries([]string{"  key  :   some value  "})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Key != "key" || got[0].Value != "some value" {
		t.Errorf("entry = %+v", got[0])
	}
}

func TestParseEntries_OnlyFirstColonSplits(t *testing.T) {
	got := ParseEntries([]string{"time: 12:30:00"})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Value != "12:30:00" {
		t.Errorf("value = %q, want %q", got[0].Value, "12:30:00")
	}
}

func TestParseEntries_SkipsLinesWithoutColon(t *testing.T) {
	lines := []string{"first: 1", "no colon here", "", "second: 2"}
	got := ParseEntries(lines)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got[0].Key != "first" || got[1].Key != "second" {
		t.Errorf("order disturbed: %v", got)
	}
}

func TestParseEntries_DuplicateKeysKept(t *testing.T) {
	got := ParseEntries([]string{"author: Jane", "author: John"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Value != "Jane" || got[1].Value != "John" {
		t.Errorf("entries = %v", got)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	if got := ParseEntries(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
