package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/hints"
)

// runExtractCmd parses flags and runs the extract command.
func runExtractCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExtractFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runExtract(ctx, positional, flags, env)
}

// runExtract turns one .docx or .pdf file into Markdown, written to the
// output file or to stdout.
func runExtract(ctx context.Context, positionalArgs []string, flags *extractFlags, env *Environment) error {
	if len(positionalArgs) == 0 {
		return ErrNoInput
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(positionalArgs))
	}
	inputPath := positionalArgs[0]

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flags.maxBytes != 0 {
		cfg.Extract.MaxBytes = flags.maxBytes
	}
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

	data, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	md, err := md2docx.ExtractMarkdown(ctx, filepath.Base(inputPath), data,
		md2docx.WithExtractLogger(log),
		md2docx.WithMaxBytes(cfg.Extract.MaxBytes))
	if err != nil {
		if errors.Is(err, md2docx.ErrFileTooLarge) {
			limit := cfg.Extract.MaxBytes
			if limit == 0 {
				limit = md2docx.DefaultMaxExtractBytes
			}
			return &hintedError{err: err, hint: hints.ForFileTooLarge(limit)}
		}
		return err
	}
	if md == "" {
		log.Warn("No text found, the file may hold scanned pages only", zap.String("file", inputPath))
	}

	if flags.output == "" || flags.output == "-" {
		_, err := fmt.Fprintln(env.Stdout, md)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flags.output), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteDocument, err, hints.ForOutputDirectory())
	}
	// #nosec G306 -- markdown is meant to be readable
	if err := os.WriteFile(flags.output, []byte(md+"\n"), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDocument, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}
