package mcpserver

// FrontmatterContract describes the chapter frontmatter format that LLM
// consumers should follow when writing or editing chapter metadata.
const FrontmatterContract = `# Chapter Frontmatter Contract

Chapters may open with a metadata block that the preprocessor renders as an
HTML table at the top of the page.

## Structure

` + "```" + `markdown
+++
author: Jane Doe (@jane)
date: 2025-01-15
status: draft
+++

Chapter body in standard Markdown.
` + "```" + `

## Rules

1. **Delimiters are ` + "`" + `+++` + "`" + ` on their own line.** Triple dashes are not
   usable because a dashed line under text parses as a setext heading.
2. **One entry per line**, ` + "`" + `key: value` + "`" + `. The key is everything before
   the first colon; the value is everything after it. Both are trimmed.
3. **Lines without a colon are ignored.** They produce no table row.
4. **Keys repeat freely.** Each occurrence becomes its own row, in source
   order. There is no schema; any key is allowed.
5. **The ` + "`" + `author` + "`" + ` value is linkified.** ` + "`" + `(@handle)` + "`" + ` becomes a GitHub
   profile link and ` + "`" + `(user@host.tld)` + "`" + ` becomes a mailto link.
6. **Values are not escaped.** Characters such as ` + "`" + `<` + "`" + ` and ` + "`" + `&` + "`" + ` pass
   into the page verbatim. HTML tags themselves do not survive: the parser
   tokenizes a tag as its own event, which capture drops, so
   ` + "`" + `a <b>bold</b> move` + "`" + ` keeps only its text fragments.
7. **The block must be closed.** An unmatched opening delimiter swallows
   everything after it.
8. A chapter may carry more than one block; each renders where it appears.

## Example

` + "```" + `markdown
# Getting Started

+++
author: Jane Doe (@jane)
reviewer: Bob (bob@example.com)
date: 2025-01-20
+++

Welcome to the guide.
` + "```" + `
`
