package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/yamlutil"
)

type testConfig struct {
	Name    string   `yaml:"name"`
	Count   int      `yaml:"count"`
	Enabled bool     `yaml:"enabled"`
	Tags    []string `yaml:"tags,omitempty"`
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		strict  bool
		data    string
		dest    any
		wantErr error
		want    testConfig
	}{
		{name: "valid", data: "name: test\ncount: 42\nenabled: true", dest: &testConfig{}, want: testConfig{Name: "test", Count: 42, Enabled: true}},
		{name: "unicode", data: "name: 日本語テスト", dest: &testConfig{}, want: testConfig{Name: "日本語テスト"}},
		{name: "unknown field tolerated", data: "name: x\nother: 1", dest: &testConfig{}, want: testConfig{Name: "x"}},
		{name: "unknown field rejected when strict", strict: true, data: "name: x\nother: 1", dest: &testConfig{}, wantErr: yamlutil.ErrInvalidYAML},
		{name: "syntax error", data: "name: [unclosed", dest: &testConfig{}, wantErr: yamlutil.ErrInvalidYAML},
		{name: "empty data", data: "", dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: "name: x", dest: nil, wantErr: yamlutil.ErrNilDestination},
		{name: "strict empty data", strict: true, data: "", dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decode := yamlutil.Unmarshal
			if tt.strict {
				decode = yamlutil.UnmarshalStrict
			}
			err := decode([]byte(tt.data), tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := *tt.dest.(*testConfig)
			if got.Name != tt.want.Name || got.Count != tt.want.Count || got.Enabled != tt.want.Enabled {
				t.Errorf("decoded = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalStrict_KeepsPresetFields(t *testing.T) {
	t.Parallel()

	cfg := testConfig{Name: "preset", Count: 7}
	if err := yamlutil.UnmarshalStrict([]byte("count: 9"), &cfg); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if cfg.Name != "preset" || cfg.Count != 9 {
		t.Errorf("cfg = %+v, want name kept and count overridden", cfg)
	}
}

func TestError_Source(t *testing.T) {
	t.Parallel()

	err := yamlutil.UnmarshalStrict([]byte("name: x\ncount: 1\ncolour: red\n"), &testConfig{})
	var yerr *yamlutil.Error
	if !errors.As(err, &yerr) {
		t.Fatalf("error = %T %v, want *yamlutil.Error", err, err)
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want yamlutil prefix", err)
	}
	if src := yerr.Source(); !strings.Contains(src, "colour") {
		t.Errorf("Source() = %q, want the offending line", src)
	}
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&testConfig{Name: "marshal", Count: 5, Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{"name: marshal", "count: 5", "enabled: false", "  - a"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}

	var back testConfig
	if err := yamlutil.UnmarshalStrict(data, &back); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if back.Name != "marshal" || back.Count != 5 || len(back.Tags) != 1 {
		t.Errorf("decoded = %+v", back)
	}
}

// ---------------------------------------------------------------------------
// Size limit
// ---------------------------------------------------------------------------

// Modifies MaxInputSize, so it does not run in parallel.
func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = original })
	yamlutil.MaxInputSize = 100

	atLimit := make([]byte, 100)
	copy(atLimit, "name: x")
	if err := yamlutil.Unmarshal(atLimit, &testConfig{}); err != nil {
		t.Errorf("input at limit: %v", err)
	}

	over := make([]byte, 101)
	copy(over, "name: x")
	for name, decode := range map[string]func([]byte, any) error{
		"Unmarshal":       yamlutil.Unmarshal,
		"UnmarshalStrict": yamlutil.UnmarshalStrict,
	} {
		err := decode(over, &testConfig{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("%s: error = %v, want ErrInputTooLarge", name, err)
			continue
		}
		if !strings.Contains(err.Error(), "101 bytes") || !strings.Contains(err.Error(), "max 100") {
			t.Errorf("%s: error = %q, want sizes", name, err)
		}
	}
}
