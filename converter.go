package md2docx

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/compose"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/model"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = (*publicToInternalAdapter)(nil)
)

// documentNamespace seeds the name-based identifiers of generated documents.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/alnah/go-md2docx"))

// Converter orchestrates the Markdown-to-DOCX pipeline. It holds only
// immutable settings and is safe for concurrent use; every conversion works
// on packages of its own.
type Converter struct {
	log               *zap.Logger
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	templates         *assets.TemplateSet
	bundledTheme      []byte
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	mapper            *pipeline.Mapper
	buffer            *compose.SectionBuffer
	composer          *compose.Composer
	now               func() time.Time
}

// NewConverter creates a Converter. Use options to customize behavior
// (e.g., WithTemplate, WithAssetPath, WithStylePolicy, WithLogger).
// Returns error if the policy is invalid or the template set cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		log:           zap.NewNop(),
		cfg:           converterConfig{templateName: DefaultTemplateSet, policy: DefaultStylePolicy()},
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.policy.Validate(); err != nil {
		return nil, err
	}
	c.mapper = pipeline.NewMapper(c.cfg.policy)
	c.buffer = compose.NewSectionBuffer(c.log)
	c.composer = compose.NewComposer(compose.WithLogger(c.log))

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if c.cfg.templateSet != nil {
		c.templates = toInternalSet(c.cfg.templateSet)
	} else {
		ts, err := c.assetLoader.LoadTemplateSet(c.cfg.templateName)
		if err != nil {
			return nil, fmt.Errorf("loading template set %q: %w", c.cfg.templateName, convertAssetError(err))
		}
		c.templates = ts
	}

	bundled, err := assets.LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return nil, fmt.Errorf("loading bundled template set: %w", err)
	}
	c.bundledTheme = bundled.Theme

	c.log.Debug("Converter ready",
		zap.String("template", c.templates.Name),
		zap.Bool("theme", c.templates.Theme != nil),
		zap.Bool("cover", c.templates.Cover != nil),
		zap.Bool("end", c.templates.End != nil))
	return c, nil
}

// Convert runs the full pipeline and returns the package bytes.
// The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Conversion panicked", zap.Any("panic", r), zap.Stack("stack"))
			result, err = nil, ErrConversionFailed
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	start := time.Now()
	var diag Diagnostics

	blocks, err := c.parse(ctx, input.Markdown, &diag)
	if err != nil {
		return nil, err
	}

	body, err := c.buildBody(ctx, input, blocks, &diag)
	if err != nil {
		return nil, err
	}

	meta, err := c.resolveMetadata(input.Metadata, blocks)
	if err != nil {
		return nil, err
	}

	var cover, end *docx.Package
	if !input.DisableCover {
		cover = c.openFragment(assets.FragmentCover, input.Cover, c.templates.Cover, meta, &diag)
	}
	if !input.DisableEnd {
		end = c.openFragment(assets.FragmentEnd, input.End, c.templates.End, meta, &diag)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := c.composer.Compose(cover, body, end)
	if err != nil {
		return nil, c.fail("composing document", err)
	}
	diag.Cover, diag.End = cover != nil, end != nil

	if err := doc.SetCoreProperties(meta.coreProperties(input.Markdown, c.now())); err != nil {
		return nil, c.fail("setting document properties", err)
	}

	if secs, err := doc.Sections(); err == nil {
		diag.Sections = len(secs)
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, c.fail("serializing package", err)
	}
	if c.cfg.fixZip {
		if data, err = docx.StripDataDescriptors(data); err != nil {
			return nil, c.fail("rewriting zip entries", err)
		}
	}

	c.log.Debug("Conversion done",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("blocks", diag.Blocks),
		zap.Int("skipped", diag.Skipped),
		zap.Int("sections", diag.Sections),
		zap.Int("bytes", len(data)))
	return &ConvertResult{DOCX: data, Diagnostics: diag}, nil
}

// Close releases resources. It is currently a no-op.
func (c *Converter) Close() error {
	return nil
}

// validateInput checks the caller-provided options.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if err := input.Metadata.Validate(); err != nil {
		return err
	}
	return input.TOC.Validate()
}

// fail logs a fatal stage error and returns the generic conversion error.
func (c *Converter) fail(stage string, err error) error {
	c.log.Error("Conversion failed", zap.String("stage", stage), zap.Error(err))
	return ErrConversionFailed
}

// parse decodes the input and maps it to document blocks.
func (c *Converter) parse(ctx context.Context, raw []byte, diag *Diagnostics) ([]model.Block, error) {
	decoded := pipeline.DecodeMarkdown(raw)
	diag.Encoding = decoded.Encoding
	if err := decoded.Err(); err != nil {
		c.log.Warn("Input is not valid UTF-8, decoded permissively",
			zap.String("encoding", decoded.Encoding), zap.Bool("lossy", decoded.Lossy))
		diag.warn(fmt.Errorf("%w: decoded as %s", err, decoded.Encoding))
	}

	content := c.preprocessor.PreprocessMarkdown(ctx, decoded.Text)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, c.fail("converting to HTML", err)
	}

	nodes, err := pipeline.ParseBlocks(fragment)
	if err != nil {
		return nil, c.fail("parsing HTML blocks", err)
	}

	res := c.mapper.Map(nodes)
	diag.Blocks = len(res.Blocks)
	diag.Skipped = res.Skipped
	diag.SkippedTags = res.SkippedTags
	if res.Skipped > 0 {
		c.log.Debug("Skipped unsupported markup", zap.Int("count", res.Skipped), zap.Any("tags", res.SkippedTags))
	}
	return res.Blocks, nil
}

// buildBody renders blocks into a content-stripped theme. A theme that opens
// but cannot carry the body is replaced by the bundled one.
func (c *Converter) buildBody(ctx context.Context, input Input, blocks []model.Block, diag *Diagnostics) (*docx.Package, error) {
	theme, bundled := c.openTheme(input.Theme, diag)
	pkg, err := c.renderBody(theme, blocks, input)
	if err != nil && !bundled {
		c.log.Warn("Theme could not be used, using bundled default", zap.Error(err))
		diag.warn(fmt.Errorf("%w: %v", ErrThemeLoad, err))
		pkg, err = c.renderBody(c.openBundledTheme(), blocks, input)
	}
	if err != nil {
		return nil, c.fail("building body", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	diag.MissingStyles = pkg.missing
	return pkg.Package, nil
}

// renderedBody is a body package and the styles it lacked.
type renderedBody struct {
	*docx.Package
	missing []string
}

func (c *Converter) renderBody(theme *docx.Package, blocks []model.Block, input Input) (*renderedBody, error) {
	secs, err := theme.Sections()
	if err != nil {
		return nil, err
	}
	// Later sections of a multi-section theme often link back to the first.
	snap, err := theme.SnapshotHeadersFooters(secs[0])
	if err != nil {
		return nil, fmt.Errorf("unable to snapshot header and footer: %w", err)
	}
	placeholder, err := theme.StripContent()
	if err != nil {
		return nil, err
	}

	r, err := docx.NewRenderer(theme)
	if err != nil {
		return nil, err
	}
	els, err := r.Render(blocks)
	if err != nil {
		return nil, err
	}
	if err := theme.AppendToBody(els...); err != nil {
		return nil, err
	}
	if _, err := c.buffer.Apply(theme, placeholder, snap); err != nil {
		return nil, fmt.Errorf("unable to apply section buffer: %w", err)
	}

	if !input.DisableTOC {
		if err := c.insertTOC(theme, els, input.TOC); err != nil {
			return nil, fmt.Errorf("unable to insert TOC: %w", err)
		}
	}

	missing := r.MissingStyles()
	slices.Sort(missing)
	return &renderedBody{Package: theme, missing: missing}, nil
}

// insertTOC puts the field in front of the first body element, or of the
// body-level section properties when there is no content.
func (c *Converter) insertTOC(pkg *docx.Package, els []*etree.Element, toc *TOC) error {
	var anchor *etree.Element
	if len(els) > 0 {
		anchor = els[0]
	} else {
		sectPr, err := pkg.BodySectPr()
		if err != nil {
			return err
		}
		anchor = sectPr
	}

	opts := toc.options()
	opts.TitleStyle = model.TextStyle{
		Font:  c.cfg.policy.BodyFont,
		Size:  c.cfg.policy.HeadingSize(1),
		Bold:  true,
		Color: c.cfg.policy.HeadingColor,
	}
	return compose.InsertTOC(pkg, anchor, opts)
}

// openTheme returns the first theme that opens: the input override, the
// template set theme, then the bundled one. bundled reports the last case.
func (c *Converter) openTheme(override []byte, diag *Diagnostics) (pkg *docx.Package, bundled bool) {
	candidates := []struct {
		source string
		data   []byte
	}{
		{"input", override},
		{"template set " + c.templates.Name, c.templates.Theme},
	}
	for _, cand := range candidates {
		if len(cand.data) == 0 {
			continue
		}
		p, err := docx.Open(cand.data)
		if err == nil {
			return p, false
		}
		c.log.Warn("Theme is not a valid package, using the next candidate",
			zap.String("source", cand.source), zap.Error(err))
		diag.warn(fmt.Errorf("%w: %s: %v", ErrThemeLoad, cand.source, err))
	}
	return c.openBundledTheme(), true
}

func (c *Converter) openBundledTheme() *docx.Package {
	p, err := docx.Open(c.bundledTheme)
	if err != nil {
		c.log.Error("Bundled theme is unusable, using a blank package", zap.Error(err))
		return docx.NewPackage()
	}
	return p
}

// openFragment opens the override or, without one, the template set
// package, and fills its placeholders. Packages with any malformed part are
// treated as absent.
func (c *Converter) openFragment(frag assets.Fragment, override, fallback []byte, meta Metadata, diag *Diagnostics) *docx.Package {
	data := override
	if data == nil {
		data = fallback
	}
	if len(data) == 0 {
		return nil
	}

	p, err := docx.Open(data)
	if err == nil {
		// The composer reads settings, styles, numbering and related parts.
		err = p.ParseAll()
	}
	if err == nil {
		var n int
		n, err = compose.FillCover(p, meta.coverData())
		c.log.Debug("Fragment filled", zap.String("fragment", string(frag)), zap.Int("fields", n))
	}
	if err != nil {
		c.log.Warn("Fragment is not a valid package, leaving it out",
			zap.String("fragment", string(frag)), zap.Error(err))
		diag.warn(fmt.Errorf("%w: %s: %v", ErrFragmentLoad, frag, err))
		return nil
	}
	return p
}

// resolveMetadata fills defaults: the title falls back to the first
// level-1 heading and auto dates are rendered.
func (c *Converter) resolveMetadata(m *Metadata, blocks []model.Block) (Metadata, error) {
	var meta Metadata
	if m != nil {
		meta = *m
	}
	if meta.Title == "" {
		meta.Title = model.FirstHeading(blocks, 1)
	}
	date, err := dateutil.Resolve(meta.Date, c.now())
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	meta.Date = date
	return meta, nil
}

func (m Metadata) coverData() compose.CoverData {
	return compose.CoverData(m)
}

// coreProperties derives the document properties. The identifier is
// name-based, so the same source always gets the same one.
func (m Metadata) coreProperties(source []byte, now time.Time) docx.CoreProperties {
	return docx.CoreProperties{
		Title:      m.Title,
		Subject:    m.Subtitle,
		Creator:    m.Author,
		Identifier: "urn:uuid:" + uuid.NewSHA1(documentNamespace, source).String(),
		Created:    now.UTC().Truncate(time.Second),
	}
}
