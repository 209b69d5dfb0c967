package md2docx

import (
	"go.uber.org/zap"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the settings applied by options.
type converterConfig struct {
	assetPath    string
	templateName string
	templateSet  *TemplateSet
	policy       StylePolicy
	fixZip       bool
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithAssetPath loads template sets from a directory, falling back to the
// embedded ones. Ignored when WithAssetLoader is also given.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom loader for template sets.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithTemplate selects a template set by name (default: "default").
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithTemplateSet uses the given packages instead of loading a set.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithStylePolicy replaces the style policy applied to generated content.
func WithStylePolicy(p StylePolicy) Option {
	return func(c *Converter) {
		c.cfg.policy = p
	}
}

// WithFixZip rewrites the output so that no zip entry uses a data
// descriptor, for consumers that reject streamed entries.
func WithFixZip(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.fixZip = enabled
	}
}
