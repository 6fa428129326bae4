package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/starford/preamble/internal/apperr"
	"github.com/starford/preamble/internal/frontmatter"
)

func protocolInput(t *testing.T, config string, chapters ...string) *bytes.Buffer {
	t.Helper()
	items := make([]Item, len(chapters))
	for i, content := range chapters {
		items[i] = Item{Chapter: &Chapter{
			Name:        "Chapter",
			Content:     content,
			SubItems:    []Item{},
			ParentNames: []string{},
		}}
	}
	ctx := map[string]any{
		"root":           "/book",
		"config":         json.RawMessage(config),
		"renderer":       "html",
		"mdbook_version": MDBookVersion,
	}
	pair, err := json.Marshal([]any{ctx, Book{Sections: items}})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(pair)
}

func TestHandle_TransformsEveryChapter(t *testing.T) {
	in := protocolInput(t, `{}`,
		"+++\nauthor: Jane (@jane)\n+++\nFirst body\n",
		"No frontmatter here\n",
	)
	var out bytes.Buffer

	p := NewPreprocessor(frontmatter.Renderer{}, nil)
	if err := p.Handle(in, &out); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	var processed Book
	if err := json.Unmarshal(out.Bytes(), &processed); err != nil {
		t.Fatalf("output is not a book: %v", err)
	}
	first := processed.Sections[0].Chapter.Content
	if !strings.Contains(first, `<table class="preamble">`) {
		t.Errorf("first chapter not transformed:\n%s", first)
	}
	if !strings.Contains(first, `https://github.com/jane`) {
		t.Errorf("author not linkified:\n%s", first)
	}
	second := processed.Sections[1].Chapter.Content
	if !strings.Contains(second, "No frontmatter here") {
		t.Errorf("plain chapter content lost:\n%s", second)
	}
}

func TestHandle_TableClassOverrideFromBookConfig(t *testing.T) {
	in := protocolInput(t, `{"preprocessor": {"preamble": {"table-class": "chapter-meta"}}}`,
		"+++\nk: v\n+++\n")
	var out bytes.Buffer

	p := NewPreprocessor(frontmatter.Renderer{}, nil)
	if err := p.Handle(in, &out); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(out.String(), `class=\"chapter-meta\"`) {
		t.Errorf("table class override not applied:\n%s", out.String())
	}
}

func TestParseInput_RejectsBadShapes(t *testing.T) {
	_, _, err := ParseInput(strings.NewReader(`[{"root": ""}]`))
	if !errors.Is(err, apperr.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
	if _, _, err := ParseInput(strings.NewReader(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSupports(t *testing.T) {
	if !Supports("html") {
		t.Error("html renderer must be supported")
	}
	if Supports("epub") || Supports("") {
		t.Error("only html is supported")
	}
}

func TestCompatibleVersion(t *testing.T) {
	cases := []struct {
		built, running string
		want           bool
	}{
		{"0.4.40", "0.4.40", true},
		{"0.4.40", "0.4.21", true},
		{"0.4.40", "0.5.0", false},
		{"0.4.40", "1.0.0", false},
		{"0.4.40", "garbage", false},
	}
	for _, c := range cases {
		if got := compatibleVersion(c.built, c.running); got != c.want {
			t.Errorf("compatibleVersion(%q, %q) = %v, want %v", c.built, c.running, got, c.want)
		}
	}
}
