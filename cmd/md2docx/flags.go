package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// coverFlags holds cover page flags. The metadata also feeds the end page
// and the document properties.
type coverFlags struct {
	path         string
	title        string
	subtitle     string
	author       string
	organization string
	date         string
	version      string
	disabled     bool
}

// endFlags holds closing page flags.
type endFlags struct {
	path     string
	disabled bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	title       string
	placeholder string
	minDepth    int
	maxDepth    int
	disabled    bool
}

// assetFlags holds template and theme flags.
type assetFlags struct {
	template  string // Template set name
	assetPath string // Override asset directory
	theme     string // Theme package path
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	fixZip  bool
	cover   coverFlags
	end     endFlags
	toc     tocFlags
	assets  assetFlags
}

// extractFlags holds all flags for the extract command.
type extractFlags struct {
	common   commonFlags
	output   string
	maxBytes int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addCoverFlags adds cover page flags to a FlagSet.
func addCoverFlags(fs *flag.FlagSet, f *coverFlags) {
	fs.StringVar(&f.path, "cover", "", "cover page package (.docx)")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = auto from H1)")
	fs.StringVar(&f.subtitle, "subtitle", "", "document subtitle")
	fs.StringVar(&f.author, "author", "", "author name")
	fs.StringVar(&f.organization, "org", "", "organization name")
	fs.StringVar(&f.date, "date", "", "document date (\"auto\" = today)")
	fs.StringVar(&f.version, "doc-version", "", "document version")
	fs.BoolVar(&f.disabled, "no-cover", false, "disable cover page")
}

// addEndFlags adds closing page flags to a FlagSet.
func addEndFlags(fs *flag.FlagSet, f *endFlags) {
	fs.StringVar(&f.path, "end", "", "closing page package (.docx)")
	fs.BoolVar(&f.disabled, "no-end", false, "disable closing page")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.StringVar(&f.placeholder, "toc-placeholder", "", "text shown until the TOC is updated")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 1)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.theme, "theme", "", "theme package (.docx) for styles, header and footer")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Returns flag.ErrHelp when -h or --help was given.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.fixZip, "fix-zip", false, "write zip entries without data descriptors")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addCoverFlags(fs, &f.cover)
	addEndFlags(fs, &f.end)
	addTOCFlags(fs, &f.toc)
	addAssetFlags(fs, &f.assets)

	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// parseExtractFlags parses extract command flags and returns positional args.
func parseExtractFlags(args []string, stderr io.Writer) (*extractFlags, []string, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	f := &extractFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.IntVar(&f.maxBytes, "max-bytes", 0, "largest accepted input in bytes (0 = 3 MiB)")
	addCommonFlags(fs, &f.common)

	fs.SetOutput(stderr)
	fs.Usage = func() { printExtractUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// flagError keeps flag.ErrHelp as is and marks everything else as a usage
// error.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}
