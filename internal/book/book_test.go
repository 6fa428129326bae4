package book

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestItem_UnmarshalVariants(t *testing.T) {
	raw := `[
		{"Chapter": {"name": "Intro", "content": "hi", "number": [1], "sub_items": [], "path": "intro.md", "source_path": "intro.md", "parent_names": []}},
		"Separator",
		{"PartTitle": "Part One"}
	]`
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if items[0].Chapter == nil || items[0].Chapter.Name != "Intro" {
		t.Errorf("item 0 = %+v", items[0])
	}
	if !items[1].Separator {
		t.Errorf("item 1 should be a separator: %+v", items[1])
	}
	if items[2].PartTitle != "Part One" {
		t.Errorf("item 2 = %+v", items[2])
	}
}

func TestItem_MarshalRoundTrip(t *testing.T) {
	path := "ch.md"
	items := []Item{
		{Chapter: &Chapter{Name: "Ch", Content: "text", SubItems: []Item{}, Path: &path, ParentNames: []string{}}},
		{Separator: true},
		{PartTitle: "Part"},
	}
	data, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []Item
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[0].Chapter == nil || back[0].Chapter.Name != "Ch" || !back[1].Separator || back[2].PartTitle != "Part" {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if !strings.Contains(string(data), `"Separator"`) {
		t.Errorf("separator must serialize as a bare string: %s", data)
	}
}

func TestItem_UnknownVariantRejected(t *testing.T) {
	var it Item
	if err := json.Unmarshal([]byte(`{"Mystery": 1}`), &it); err == nil {
		t.Error("expected error for unknown variant")
	}
	if err := json.Unmarshal([]byte(`"NotASeparator"`), &it); err == nil {
		t.Error("expected error for unknown string variant")
	}
}

func TestBook_ForEachChapterVisitsNestedInOrder(t *testing.T) {
	b := &Book{Sections: []Item{
		{Chapter: &Chapter{Name: "1", SubItems: []Item{
			{Chapter: &Chapter{Name: "1.1"}},
			{Chapter: &Chapter{Name: "1.2"}},
		}}},
		{Separator: true},
		{Chapter: &Chapter{Name: "2"}},
	}}

	var visited []string
	b.ForEachChapter(func(ch *Chapter) {
		visited = append(visited, ch.Name)
	})

	want := "1,1.1,1.2,2"
	if got := strings.Join(visited, ","); got != want {
		t.Errorf("visit order = %s, want %s", got, want)
	}
}
