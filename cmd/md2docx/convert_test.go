package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake pool and converter
// ---------------------------------------------------------------------------

type fakeConverter struct {
	mu     sync.Mutex
	inputs []md2docx.Input
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, in md2docx.Input) (*md2docx.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &md2docx.ConvertResult{
		DOCX:        append([]byte("PK"), in.Markdown...),
		Diagnostics: md2docx.Diagnostics{Warnings: []error{md2docx.ErrThemeLoad}},
	}, nil
}

type fakePool struct {
	conv       CLIConverter
	acquireErr error
	size       int
}

func (p *fakePool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}
func (p *fakePool) Release(CLIConverter) {}
func (p *fakePool) Size() int            { return p.size }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func testParams() *conversionParams {
	return &conversionParams{
		metadata: &md2docx.Metadata{Author: "Jane"},
		toc:      &md2docx.TOC{},
	}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Worker pool behavior
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var files []FileToConvert
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		in := filepath.Join(dir, name)
		writeFile(t, in, "# "+name)
		files = append(files, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "out", name+".docx")})
	}

	conv := &fakeConverter{}
	results := convertBatch(context.Background(), &fakePool{conv: conv, size: 2}, files, testParams())

	if len(results) != len(files) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d] out of order: %s", i, r.InputPath)
		}
		if len(r.Warnings) != 1 {
			t.Errorf("results[%d].Warnings = %v, want the recovered theme error", i, r.Warnings)
		}
		data, err := os.ReadFile(files[i].OutputPath)
		if err != nil {
			t.Fatalf("output not written: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("PK# ")) {
			t.Errorf("output = %q", data)
		}
	}
	for _, in := range conv.inputs {
		if in.Metadata == nil || in.Metadata.Author != "Jane" {
			t.Errorf("metadata not passed: %+v", in.Metadata)
		}
	}
}

func TestConvertBatch_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.md")
	writeFile(t, in, "# Doc")
	files := []FileToConvert{
		{InputPath: in, OutputPath: filepath.Join(dir, "doc.docx")},
		{InputPath: filepath.Join(dir, "missing.md"), OutputPath: filepath.Join(dir, "missing.docx")},
	}

	tests := []struct {
		name    string
		pool    *fakePool
		ctx     func() context.Context
		wantErr []error
	}{
		{
			name:    "conversion error",
			pool:    &fakePool{conv: &fakeConverter{err: md2docx.ErrConversionFailed}, size: 1},
			ctx:     context.Background,
			wantErr: []error{md2docx.ErrConversionFailed, ErrReadMarkdown},
		},
		{
			name:    "acquire error",
			pool:    &fakePool{acquireErr: md2docx.ErrTemplateSetNotFound, size: 2},
			ctx:     context.Background,
			wantErr: []error{md2docx.ErrTemplateSetNotFound, md2docx.ErrTemplateSetNotFound},
		},
		{
			name: "canceled",
			pool: &fakePool{conv: &fakeConverter{}, size: 1},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: []error{context.Canceled, context.Canceled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results := convertBatch(tt.ctx(), tt.pool, files, testParams())
			for i, want := range tt.wantErr {
				if !errors.Is(results[i].Err, want) {
					t.Errorf("results[%d].Err = %v, want %v", i, results[i].Err, want)
				}
			}
		})
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &fakePool{size: 1}, nil, testParams()); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestBatchError(t *testing.T) {
	t.Parallel()

	err := newBatchError([]ConversionResult{
		{InputPath: "a.md"},
		{InputPath: "b.md", Err: ErrReadMarkdown},
		{InputPath: "c.md", Err: md2docx.ErrConversionFailed},
	})

	if err.Error() != "2 of 3 conversions failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrReadMarkdown) || !errors.Is(err, md2docx.ErrConversionFailed) {
		t.Errorf("batch error should match every failure: %v", err)
	}
	// The first matching category decides the exit code.
	if got := exitCodeFor(err); got != ExitIO {
		t.Errorf("exitCodeFor() = %d, want %d", got, ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults - Output formatting
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.docx", Warnings: []error{md2docx.ErrFragmentLoad}},
		{InputPath: "b.md", Err: ErrReadMarkdown},
	}

	tests := []struct {
		name       string
		common     commonFlags
		wantStdout []string
		notStdout  []string
	}{
		{name: "normal", wantStdout: []string{"Created a.docx", "warning:", "1 succeeded, 1 failed"}},
		{name: "verbose", common: commonFlags{verbose: true}, wantStdout: []string{"a.md -> a.docx"}},
		{name: "quiet", common: commonFlags{quiet: true}, notStdout: []string{"Created", "succeeded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			if failed := printResults(results, tt.common, env.Environment); failed != 1 {
				t.Errorf("printResults() = %d, want 1", failed)
			}
			if !strings.Contains(env.stderr.String(), "FAILED b.md") {
				t.Errorf("stderr = %q, want FAILED line", env.stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(env.stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, env.stdout.String())
				}
			}
			for _, not := range tt.notStdout {
				if strings.Contains(env.stdout.String(), not) {
					t.Errorf("stdout should not contain %q, got %q", not, env.stdout.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Cover.Author = "Config Author"
	cfg.Cover.Organization = "Config Org"
	cfg.TOC.MaxDepth = 2

	flags := &convertFlags{
		fixZip: true,
		cover:  coverFlags{author: "Flag Author", title: "Flag Title", disabled: true},
		end:    endFlags{path: "end.docx"},
		toc:    tocFlags{maxDepth: 4, title: "Contents"},
		assets: assetFlags{template: "corporate", theme: "theme.docx"},
	}
	mergeFlags(flags, cfg)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"author", cfg.Cover.Author, "Flag Author"},
		{"organization kept", cfg.Cover.Organization, "Config Org"},
		{"title", cfg.Cover.Title, "Flag Title"},
		{"cover disabled", cfg.Cover.Enabled, false},
		{"end kept", cfg.End.Enabled, true},
		{"end path", cfg.End.Path, "end.docx"},
		{"toc depth", cfg.TOC.MaxDepth, 4},
		{"toc title", cfg.TOC.Title, "Contents"},
		{"template", cfg.Template, "corporate"},
		{"theme", cfg.Theme.Path, "theme.docx"},
		{"fix zip", cfg.Package.FixZip, true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	withDefault := config.DefaultConfig()
	withDefault.Input.DefaultDir = "docs"

	tests := []struct {
		name    string
		args    []string
		cfg     *config.Config
		want    string
		wantErr error
	}{
		{name: "arg wins", args: []string{"a.md"}, cfg: withDefault, want: "a.md"},
		{name: "config default", cfg: withDefault, want: "docs"},
		{name: "nothing", cfg: config.DefaultConfig(), wantErr: ErrNoInput},
		{name: "too many", args: []string{"a.md", "b.md"}, cfg: withDefault, wantErr: ErrInvalidFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveInputPath(tt.args, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("resolveInputPath() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveInputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildConversionParams(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	t.Run("resolves auto date once", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Cover.Date = "auto:long"
		p, err := buildConversionParams(cfg, env.Environment)
		if err != nil {
			t.Fatalf("buildConversionParams() error = %v", err)
		}
		if p.metadata.Date != "March 15, 2024" {
			t.Errorf("Date = %q, want %q", p.metadata.Date, "March 15, 2024")
		}
		if p.disableCover || p.disableEnd || p.disableTOC {
			t.Error("defaults should enable cover, end and TOC")
		}
	})

	t.Run("missing package", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Theme.Path = filepath.Join(t.TempDir(), "missing.docx")
		if _, err := buildConversionParams(cfg, env.Environment); !errors.Is(err, ErrReadPackage) {
			t.Errorf("buildConversionParams() error = %v, want ErrReadPackage", err)
		}
	})

	t.Run("input copies metadata", func(t *testing.T) {
		t.Parallel()

		p := testParams()
		in := p.input([]byte("# x"))
		in.Metadata.Title = "changed"
		if p.metadata.Title != "" {
			t.Error("input() shares metadata between files")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunConvert - End to end through runMain
// ---------------------------------------------------------------------------

func TestRunConvert_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(src, "ch1.md"), "# Chapter 1\n\nIntro.")
	writeFile(t, filepath.Join(src, "part", "ch2.md"), "# Chapter 2\n\n- a\n- b")
	writeFile(t, filepath.Join(src, "notes.txt"), "ignored")

	env := newTestEnv()
	code := runMain([]string{"md2docx", "convert", src, "-o", out, "-w", "2", "--author", "Jane", "--date", "auto"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
	}

	for _, rel := range []string{"ch1.docx", filepath.Join("part", "ch2.docx")} {
		data, err := os.ReadFile(filepath.Join(out, rel))
		if err != nil {
			t.Fatalf("missing output %s: %v", rel, err)
		}
		if !bytes.HasPrefix(data, []byte("PK")) {
			t.Errorf("%s is not a package", rel)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "notes.docx")); !os.IsNotExist(err) {
		t.Error("non-markdown file was converted")
	}
	if !strings.Contains(env.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	if !strings.Contains(env.stdout.String(), "table of contents") {
		t.Error("TOC update hint missing")
	}
}

func TestRunConvert_SingleFileWithConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "report.md")
	outFile := filepath.Join(dir, "final", "Report.docx")
	cfgPath := filepath.Join(dir, "md2docx.yaml")
	writeFile(t, in, "# Report\n\nBody.")
	writeFile(t, cfgPath, "cover:\n  enabled: false\ntoc:\n  enabled: false\npackage:\n  fixZip: true\nlogging:\n  level: none\n")

	env := newTestEnv()
	code := runMain([]string{"md2docx", in, "-c", cfgPath, "-o", outFile}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if strings.Contains(env.stdout.String(), "table of contents") {
		t.Error("TOC hint printed with TOC disabled")
	}
}

func TestRunConvert_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.md")
	writeFile(t, in, "# Doc")
	writeFile(t, filepath.Join(dir, "doc.txt"), "text")
	badCfg := filepath.Join(dir, "bad.yaml")
	writeFile(t, badCfg, "unknownKey: true\n")
	empty := filepath.Join(dir, "empty")
	if err := os.MkdirAll(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{name: "too many workers", args: []string{in, "-w", "99"}, wantCode: ExitUsage},
		{name: "negative workers", args: []string{in, "-w", "-1"}, wantCode: ExitUsage},
		{name: "wrong extension", args: []string{filepath.Join(dir, "doc.txt")}, wantCode: ExitUsage},
		{name: "invalid TOC range", args: []string{in, "--toc-min-depth", "4", "--toc-max-depth", "2"}, wantCode: ExitUsage},
		{name: "invalid date", args: []string{in, "--date", "auto:[YYYY"}, wantCode: ExitUsage},
		{name: "unknown config key", args: []string{in, "-c", badCfg}, wantCode: ExitUsage},
		{name: "unknown template", args: []string{in, "--template", "nosuchset"}, wantCode: ExitUsage, wantStderr: "hint: available: default"},
		{name: "missing theme file", args: []string{in, "--theme", filepath.Join(dir, "nope.docx")}, wantCode: ExitIO},
		{name: "empty directory", args: []string{empty}, wantCode: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			args := append([]string{"md2docx", "convert", "-q"}, tt.args...)
			if code := runMain(args, env.Environment); code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, env.stderr.String())
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, env.stderr.String())
			}
		})
	}
}
