package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	theme        []byte
	cover        []byte
	end          []byte
	metadata     *md2docx.Metadata
	toc          *md2docx.TOC
	disableCover bool
	disableEnd   bool
	disableTOC   bool
}

// input builds the conversion input for one markdown file.
func (p *conversionParams) input(markdown []byte) md2docx.Input {
	meta := *p.metadata
	return md2docx.Input{
		Markdown:     markdown,
		Theme:        p.theme,
		Cover:        p.cover,
		End:          p.end,
		Metadata:     &meta,
		TOC:          p.toc,
		DisableCover: p.disableCover,
		DisableEnd:   p.disableEnd,
		DisableTOC:   p.disableTOC,
	}
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI wins over config; the merged result is validated as a whole.
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := prepareLogger(cfg.Logging, flags.common, env)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
		_ = closeLog()
	}()

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	params, err := buildConversionParams(cfg, env)
	if err != nil {
		return err
	}

	poolSize := min(md2docx.ResolvePoolSize(flags.workers), len(files))
	log.Debug("Starting conversion", zap.Int("files", len(files)), zap.Int("workers", poolSize))

	pool := &poolAdapter{pool: md2docx.NewConverterPool(poolSize, converterOptions(cfg, log)...)}
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("Unable to close converter pool", zap.Error(err))
		}
	}()

	results := convertBatch(ctx, pool, files, params)
	if failed := printResults(results, flags.common, env); failed > 0 {
		return newBatchError(results)
	}
	if !params.disableTOC && !flags.common.quiet {
		fmt.Fprintln(env.Stdout, strings.TrimLeft(hints.ForTOCUpdate(), "\n"))
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Asset flags
	if flags.assets.template != "" {
		cfg.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.theme != "" {
		cfg.Theme.Path = flags.assets.theme
	}

	// Cover flags
	if flags.cover.path != "" {
		cfg.Cover.Path = flags.cover.path
	}
	if flags.cover.title != "" {
		cfg.Cover.Title = flags.cover.title
	}
	if flags.cover.subtitle != "" {
		cfg.Cover.Subtitle = flags.cover.subtitle
	}
	if flags.cover.author != "" {
		cfg.Cover.Author = flags.cover.author
	}
	if flags.cover.organization != "" {
		cfg.Cover.Organization = flags.cover.organization
	}
	if flags.cover.date != "" {
		cfg.Cover.Date = flags.cover.date
	}
	if flags.cover.version != "" {
		cfg.Cover.Version = flags.cover.version
	}

	// End flags
	if flags.end.path != "" {
		cfg.End.Path = flags.end.path
	}

	// TOC flags
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.placeholder != "" {
		cfg.TOC.Placeholder = flags.toc.placeholder
	}
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}

	if flags.fixZip {
		cfg.Package.FixZip = true
	}

	// Disable flags
	if flags.cover.disabled {
		cfg.Cover.Enabled = false
	}
	if flags.end.disabled {
		cfg.End.Enabled = false
	}
	if flags.toc.disabled {
		cfg.TOC.Enabled = false
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// converterOptions maps the config to converter options.
func converterOptions(cfg *config.Config, log *zap.Logger) []md2docx.Option {
	opts := []md2docx.Option{
		md2docx.WithLogger(log),
		md2docx.WithTemplate(cfg.TemplateName()),
		md2docx.WithStylePolicy(cfg.StylePolicy()),
		md2docx.WithFixZip(cfg.Package.FixZip),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2docx.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}

// buildConversionParams reads the package overrides and resolves the date
// once for the entire batch.
func buildConversionParams(cfg *config.Config, env *Environment) (*conversionParams, error) {
	date, err := dateutil.Resolve(cfg.Cover.Date, env.Now())
	if err != nil {
		return nil, fmt.Errorf("cover date: %w", err)
	}

	p := &conversionParams{
		metadata: &md2docx.Metadata{
			Title:        cfg.Cover.Title,
			Subtitle:     cfg.Cover.Subtitle,
			Author:       cfg.Cover.Author,
			Organization: cfg.Cover.Organization,
			Date:         date,
			Version:      cfg.Cover.Version,
		},
		toc: &md2docx.TOC{
			Title:       cfg.TOC.Title,
			MinDepth:    cfg.TOC.MinDepth,
			MaxDepth:    cfg.TOC.MaxDepth,
			Placeholder: cfg.TOC.Placeholder,
		},
		disableCover: !cfg.Cover.Enabled,
		disableEnd:   !cfg.End.Enabled,
		disableTOC:   !cfg.TOC.Enabled,
	}

	for _, pkg := range []struct {
		path string
		dst  *[]byte
	}{
		{cfg.Theme.Path, &p.theme},
		{cfg.Cover.Path, &p.cover},
		{cfg.End.Path, &p.end},
	} {
		if pkg.path == "" {
			continue
		}
		data, err := os.ReadFile(pkg.path) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadPackage, err)
		}
		*pkg.dst = data
	}
	return p, nil
}

// batchError reports the failed conversions of a batch. It matches the
// errors of every failed file with errors.Is.
type batchError struct {
	failed int
	total  int
	err    error
}

func newBatchError(results []ConversionResult) error {
	e := &batchError{total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			e.failed++
			e.err = multierr.Append(e.err, r.Err)
		}
	}
	return e
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversions failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.err
}
