// Package config loads the YAML configuration of the md2docx command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/model"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxPathLength         = 4096
	MaxNameLength         = 100 // Author name
	MaxDateLength         = 30  // "2025-12-31" or "December 31, 2025"
	MaxCoverTitleLength   = 200 // Cover page title
	MaxSubtitleLength     = 200 // Cover page subtitle
	MaxOrganizationLength = 100 // Organization name
	MaxVersionLength      = 50  // Version string
	MaxTOCTitleLength     = 100 // TOC title
	MaxPlaceholderLength  = 200 // TOC field placeholder
)

// MaxExtractBytes caps extract.maxBytes.
const MaxExtractBytes = 64 << 20

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig       `yaml:"input"`
	Output   OutputConfig      `yaml:"output"`
	Assets   AssetsConfig      `yaml:"assets"`
	Template string            `yaml:"template"` // Template set name (default: "default")
	Theme    ThemeConfig       `yaml:"theme"`
	Cover    CoverConfig       `yaml:"cover"`
	End      EndConfig         `yaml:"end"`
	TOC      TOCConfig         `yaml:"toc"`
	Style    model.StylePolicy `yaml:"style"` // Overrides on top of the built-in policy
	Extract  ExtractConfig     `yaml:"extract"`
	Package  PackageConfig     `yaml:"package"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ThemeConfig points at a package replacing the template set's theme.
type ThemeConfig struct {
	Path string `yaml:"path"`
}

// CoverConfig defines cover page options.
type CoverConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Path         string `yaml:"path"`         // Replaces the template set's cover
	Title        string `yaml:"title"`        // Optional - auto: first H1
	Subtitle     string `yaml:"subtitle"`     // Optional
	Author       string `yaml:"author"`       // Optional
	Organization string `yaml:"organization"` // Optional
	Date         string `yaml:"date"`         // "auto" = YYYY-MM-DD, "auto:FORMAT"
	Version      string `yaml:"version"`      // Optional
}

// EndConfig defines closing page options.
type EndConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Replaces the template set's end page
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Title       string `yaml:"title"`       // Empty = no title above TOC
	MinDepth    int    `yaml:"minDepth"`    // 1-6, default 1
	MaxDepth    int    `yaml:"maxDepth"`    // 1-6, default 3
	Placeholder string `yaml:"placeholder"` // Shown until the field is updated
}

// ExtractConfig defines Word/PDF to Markdown options.
type ExtractConfig struct {
	MaxBytes int `yaml:"maxBytes"` // 0 = 3 MiB
}

// PackageConfig defines output package options.
type PackageConfig struct {
	FixZip bool `yaml:"fixZip"` // Rewrite without data descriptors
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	paths := map[string]string{
		"input.defaultDir":  c.Input.DefaultDir,
		"output.defaultDir": c.Output.DefaultDir,
		"assets.basePath":   c.Assets.BasePath,
		"theme.path":        c.Theme.Path,
		"cover.path":        c.Cover.Path,
		"end.path":          c.End.Path,
	}
	for name, p := range paths {
		if err := validateFieldLength(name, p, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Template != "" {
		if err := assets.ValidateAssetName(c.Template); err != nil {
			return fmt.Errorf("template: %w", err)
		}
	}

	// Validate cover fields
	if err := validateFieldLength("cover.title", c.Cover.Title, MaxCoverTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("cover.subtitle", c.Cover.Subtitle, MaxSubtitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("cover.author", c.Cover.Author, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("cover.organization", c.Cover.Organization, MaxOrganizationLength); err != nil {
		return err
	}
	if err := validateFieldLength("cover.date", c.Cover.Date, MaxDateLength); err != nil {
		return err
	}
	if err := dateutil.Validate(c.Cover.Date); err != nil {
		return fmt.Errorf("cover.date: %w", err)
	}
	if err := validateFieldLength("cover.version", c.Cover.Version, MaxVersionLength); err != nil {
		return err
	}

	// Validate TOC fields
	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("toc.placeholder", c.TOC.Placeholder, MaxPlaceholderLength); err != nil {
		return err
	}
	for name, d := range map[string]int{"toc.minDepth": c.TOC.MinDepth, "toc.maxDepth": c.TOC.MaxDepth} {
		if d != 0 && (d < 1 || d > 6) {
			return fmt.Errorf("%w: %s must be between 1 and 6, got %d", ErrInvalidValue, name, d)
		}
	}
	if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth %d exceeds toc.maxDepth %d", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
	}

	if err := c.StylePolicy().Validate(); err != nil {
		return fmt.Errorf("style: %w", err)
	}

	if c.Extract.MaxBytes < 0 || c.Extract.MaxBytes > MaxExtractBytes {
		return fmt.Errorf("%w: extract.maxBytes must be between 0 and %d, got %d", ErrInvalidValue, MaxExtractBytes, c.Extract.MaxBytes)
	}

	return c.Logging.Validate()
}

// StylePolicy returns the built-in policy with the style section applied.
func (c *Config) StylePolicy() model.StylePolicy {
	return model.DefaultStylePolicy().Merge(c.Style)
}

// TemplateName returns the configured template set, or the bundled one.
func (c *Config) TemplateName() string {
	if c.Template == "" {
		return assets.DefaultTemplateSetName
	}
	return c.Template
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file:
// bundled template set with cover, end page and table of contents.
func DefaultConfig() *Config {
	return &Config{
		Template: assets.DefaultTemplateSetName,
		Cover:    CoverConfig{Enabled: true, Date: "auto"},
		End:      EndConfig{Enabled: true},
		TOC:      TOCConfig{Enabled: true},
		Logging:  LoggingConfig{Level: LevelNormal},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2docx/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2docx", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
