// Package mdtext is a thin seam over the src.elv.sh/pkg/md event codec:
// Markdown text goes in as an ordered op sequence and comes back out as
// Markdown, HTML, or plain text. Everything else in preamble works on the
// op sequence, never on raw Markdown.
package mdtext

import (
	"strings"

	"src.elv.sh/pkg/md"
)

// collector is a md.Codec that buffers every op it receives.
type collector struct {
	ops []md.Op
}

func (c *collector) Do(op md.Op) {
	c.ops = append(c.ops, op)
}

// Ops parses source into its ordered op sequence.
//
// The md package does not support CRLF line endings, so they are normalised
// to LF first.
func Ops(source string) []md.Op {
	var c collector
	md.Render(strings.ReplaceAll(source, "\r\n", "\n"), &c)
	return c.ops
}

// Markdown re-serializes an op sequence back to Markdown text.
func Markdown(ops []md.Op) string {
	var codec md.FmtCodec
	for _, op := range ops {
		codec.Do(op)
	}
	return codec.String()
}

// HTML renders an op sequence to HTML.
func HTML(ops []md.Op) string {
	var codec md.HTMLCodec
	for _, op := range ops {
		codec.Do(op)
	}
	return codec.String()
}

// Title returns the text of the first level-1 heading, or "".
func Title(ops []md.Op) string {
	for _, op := range ops {
		if op.Type == md.OpHeading && op.Number == 1 {
			return inlineText(op.Content)
		}
	}
	return ""
}

// PlainText extracts the text content of headings and paragraphs, one block
// per line. Used to build the search index body.
func PlainText(ops []md.Op) string {
	var sb strings.Builder
	for _, op := range ops {
		if op.Type != md.OpHeading && op.Type != md.OpParagraph {
			continue
		}
		text := inlineText(op.Content)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func inlineText(content []md.InlineOp) string {
	var sb strings.Builder
	for _, in := range content {
		switch in.Type {
		case md.OpText, md.OpCodeSpan:
			sb.WriteString(in.Text)
		case md.OpNewLine, md.OpHardLineBreak:
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}
