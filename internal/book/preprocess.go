package book

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/mod/semver"

	"github.com/starford/preamble/internal/apperr"
	"github.com/starford/preamble/internal/frontmatter"
)

// MDBookVersion is the mdBook release this preprocessor was built against.
// A caller on a different major.minor gets a warning, not a failure.
const MDBookVersion = "0.4.40"

// Context is the first element of the preprocessor input pair.
type Context struct {
	Root          string          `json:"root"`
	Config        json.RawMessage `json:"config"`
	Renderer      string          `json:"renderer"`
	MdbookVersion string          `json:"mdbook_version"`
}

// PreprocessorConfig decodes the book.toml table config.preprocessor.<name>
// into v. Returns false when the table is absent.
func (c *Context) PreprocessorConfig(name string, v any) (bool, error) {
	if len(c.Config) == 0 {
		return false, nil
	}
	var cfg struct {
		Preprocessor map[string]json.RawMessage `json:"preprocessor"`
	}
	if err := json.Unmarshal(c.Config, &cfg); err != nil {
		return false, fmt.Errorf("book: decode config: %w", err)
	}
	raw, ok := cfg.Preprocessor[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("book: decode preprocessor config %q: %w", name, err)
	}
	return true, nil
}

// Supports reports whether the given renderer is supported.
func Supports(renderer string) bool {
	return renderer == "html"
}

// Preprocessor applies the frontmatter transform to every chapter of a book.
type Preprocessor struct {
	renderer frontmatter.Renderer
	logger   *slog.Logger
}

// NewPreprocessor creates a Preprocessor. A nil logger defaults to
// slog.Default().
func NewPreprocessor(r frontmatter.Renderer, logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{renderer: r, logger: logger}
}

// Name is the preprocessor name as configured in book.toml.
func (p *Preprocessor) Name() string { return "preamble" }

// Run rewrites every chapter's content in place, honoring a table-class
// override from the book configuration.
func (p *Preprocessor) Run(ctx *Context, b *Book) {
	r := p.renderer
	var opts struct {
		TableClass string `json:"table-class"`
	}
	if ok, err := ctx.PreprocessorConfig(p.Name(), &opts); err != nil {
		p.logger.Warn("ignoring unreadable preprocessor config", slog.String("error", err.Error()))
	} else if ok && opts.TableClass != "" {
		r.TableClass = opts.TableClass
	}

	b.ForEachChapter(func(ch *Chapter) {
		ch.Content = r.Transform(ch.Content)
	})
}

// ParseInput decodes the [context, book] pair mdBook writes to the
// preprocessor's stdin.
func ParseInput(rd io.Reader) (*Context, *Book, error) {
	var input []json.RawMessage
	if err := json.NewDecoder(rd).Decode(&input); err != nil {
		return nil, nil, fmt.Errorf("book: decode input: %w", err)
	}
	if len(input) != 2 {
		return nil, nil, fmt.Errorf("book: %w: expected [context, book] pair, got %d elements",
			apperr.ErrMalformedInput, len(input))
	}
	ctx := new(Context)
	if err := json.Unmarshal(input[0], ctx); err != nil {
		return nil, nil, fmt.Errorf("book: decode context: %w", err)
	}
	b := new(Book)
	if err := json.Unmarshal(input[1], b); err != nil {
		return nil, nil, fmt.Errorf("book: decode book: %w", err)
	}
	return ctx, b, nil
}

// Handle runs the whole stdin/stdout protocol exchange: parse the input
// pair, check version compatibility, transform, and write the processed
// book back as JSON.
func (p *Preprocessor) Handle(rd io.Reader, w io.Writer) error {
	ctx, b, err := ParseInput(rd)
	if err != nil {
		return err
	}

	if !compatibleVersion(MDBookVersion, ctx.MdbookVersion) {
		p.logger.Warn("mdbook version mismatch",
			slog.String("preprocessor", p.Name()),
			slog.String("built_against", MDBookVersion),
			slog.String("running", ctx.MdbookVersion))
	}

	p.Run(ctx, b)

	if err := json.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("book: write processed book: %w", err)
	}
	return nil
}

// compatibleVersion reports whether two mdBook versions agree on
// major.minor. Patch-level drift is fine.
func compatibleVersion(built, running string) bool {
	b := semver.MajorMinor("v" + built)
	r := semver.MajorMinor("v" + running)
	return b != "" && b == r
}
