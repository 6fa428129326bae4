package frontmatter

import "testing"

func TestLinkify_GitHubHandle(t *testing.T) {
	got := Linkify("(@octocat)")
	want := `(<a href="https://github.com/octocat">@octocat</a>)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLinkify_Email(t *testing.T) {
	got := Linkify("(me@example.com)")
	want := `(<a href="mailto:me@example.com">me@example.com</a>)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLinkify_BothInOneValue(t *testing.T) {
	got := Linkify("Jane (@jane) (jane@example.org)")
	want := `Jane (<a href="https://github.com/jane">@jane</a>) (<a href="mailto:jane@example.org">jane@example.org</a>)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLinkify_MultipleHandles(t *testing.T) {
	got := Linkify("(@a) and (@b)")
	want := `(<a href="https://github.com/a">@a</a>) and (<a href="https://github.com/b">@b</a>)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLinkify_NoMatchPassesThrough(t *testing.T) {
	cases := []string{
		"plain text",
		"@nohandle without parens",
		"me@example.com without parens",
		"(not a handle)",
		"()",
	}
	for _, c := range cases {
		if got := Linkify(c); got != c {
			t.Errorf("Linkify(%q) = %q, want unchanged", c, got)
		}
	}
}
