package frontmatter

import "regexp"

var (
	githubRe = regexp.MustCompile(`\(@([a-zA-Z0-9_]+)\)`)
	emailRe  = regexp.MustCompile(`\(([a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+)\)`)
)

// Linkify rewrites parenthesized GitHub handles and email addresses in text
// into anchor tags. The two substitutions run as separate passes in fixed
// order: handles first, then emails over the result.
func Linkify(text string) string {
	text = githubRe.ReplaceAllString(text, `(<a href="https://github.com/$1">@$1</a>)`)
	return emailRe.ReplaceAllString(text, `(<a href="mailto:$1">$1</a>)`)
}
