package frontmatter

import (
	"src.elv.sh/pkg/md"

	"github.com/starford/preamble/internal/mdtext"
)

// scanState is the scanner's position relative to a frontmatter region.
type scanState int

const (
	stateIdle scanState = iota
	stateCapturing
)

// scanner folds over a chapter's op sequence. Between delimiters it passes
// ops through unchanged; inside a region it buffers text events as raw lines
// and drops everything else. A nil renderer strips regions without splicing
// a table (the indexing path).
type scanner struct {
	renderer *Renderer

	state   scanState
	lines   []string
	entries []Entry
	out     []md.Op
}

func (s *scanner) feed(op md.Op) {
	switch op.Type {
	case md.OpParagraph, md.OpHeading:
		s.feedInline(op)
	default:
		if s.state == stateIdle {
			s.out = append(s.out, op)
		}
		// Whole blocks inside an (unterminated) region are dropped, same
		// as non-text inline events.
	}
}

// feedInline scans the inline events of a text-bearing block. The block is
// rebuilt from the events that survive the scan so that ops spliced
// mid-block keep their position in the stream.
func (s *scanner) feedInline(op md.Op) {
	var kept []md.InlineOp

	flush := func() {
		// Soft breaks hugging a removed region would otherwise dangle at
		// the block edges.
		for len(kept) > 0 && kept[0].Type == md.OpNewLine {
			kept = kept[1:]
		}
		for len(kept) > 0 && kept[len(kept)-1].Type == md.OpNewLine {
			kept = kept[:len(kept)-1]
		}
		if len(kept) == 0 {
			return
		}
		rebuilt := op
		rebuilt.Content = kept
		s.out = append(s.out, rebuilt)
		kept = nil
	}

	for _, in := range op.Content {
		switch {
		case in.Type == md.OpText && in.Text == Delimiter:
			if s.state == stateCapturing {
				flush()
				s.closeRegion()
				s.state = stateIdle
			} else {
				s.state = stateCapturing
			}
			// The delimiter event itself never reaches the output.
		case s.state == stateCapturing:
			if in.Type == md.OpText {
				s.lines = append(s.lines, in.Text)
			}
			// Soft breaks etc. inside a region are dropped, not buffered.
		default:
			kept = append(kept, in)
		}
	}
	flush()
}

func (s *scanner) closeRegion() {
	entries := ParseEntries(s.lines)
	s.lines = s.lines[:0]
	s.entries = append(s.entries, entries...)
	if s.renderer != nil {
		s.out = append(s.out, s.renderer.TableOp(entries))
	}
}

func (s *scanner) run(ops []md.Op) ([]md.Op, []Entry) {
	for _, op := range ops {
		s.feed(op)
	}
	// An unmatched opening delimiter leaves the scanner capturing at end of
	// stream: buffered lines and everything after the delimiter are gone
	// from the output. Known data-loss edge, kept for compatibility.
	return s.out, s.entries
}

// Rewrite replaces every delimited frontmatter region in ops with its
// rendered table op and returns the new sequence plus the entries collected
// from all regions. Ops outside regions keep their order and identity.
//
// Content after an unterminated opening delimiter is dropped.
func (r Renderer) Rewrite(ops []md.Op) ([]md.Op, []Entry) {
	s := scanner{renderer: &r}
	return s.run(ops)
}

// Strip removes frontmatter regions without rendering tables. Same fold as
// Rewrite; used when indexing chapter bodies.
func Strip(ops []md.Op) ([]md.Op, []Entry) {
	var s scanner
	return s.run(ops)
}

// Transform runs the full pipeline on one chapter: parse, rewrite, and
// re-serialize to Markdown. Deterministic for identical input; not
// guaranteed idempotent, since rendered tables re-enter the stream as raw
// HTML blocks.
func (r Renderer) Transform(source string) string {
	out, _ := r.Rewrite(mdtext.Ops(source))
	return mdtext.Markdown(out)
}

// Extract returns the frontmatter entries of source without transforming it.
func Extract(source string) []Entry {
	_, entries := Strip(mdtext.Ops(source))
	return entries
}
