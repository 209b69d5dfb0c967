package dateutil

import (
	"errors"
	"testing"
	"time"
)

// 2024-03-15, a Friday.
var fixed = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "iso", format: "YYYY-MM-DD", want: "2024-03-15"},
		{name: "short year", format: "YY", want: "24"},
		{name: "month names", format: "MMMM / MMM", want: "March / Mar"},
		{name: "unpadded", format: "D.M.YYYY", want: "15.3.2024"},
		{name: "ordinal day", format: "Do MMMM", want: "15th March"},
		{name: "bracket literal", format: "[Day] D", want: "Day 15"},
		{name: "bracket protects tokens", format: "[YYYY]", want: "YYYY"},
		{name: "plain literal kept", format: "Q1 YYYY", want: "Q1 2024"},
		{name: "empty", format: "", wantErr: true},
		{name: "blank", format: "   ", wantErr: true},
		{name: "unclosed bracket", format: "[YYYY", wantErr: true},
		{name: "too long", format: "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := ParseFormat(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidDateFormat", tt.format, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.format, err)
			}
			if got := f.Render(fixed); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if f.String() != tt.format {
				t.Errorf("String() = %q, want %q", f.String(), tt.format)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "empty passthrough", value: "", want: ""},
		{name: "literal passthrough", value: "2024-01-01", want: "2024-01-01"},
		{name: "text passthrough", value: "Q1 2024", want: "Q1 2024"},
		{name: "auto", value: "auto", want: "2024-03-15"},
		{name: "auto is case insensitive", value: "AUTO", want: "2024-03-15"},
		{name: "custom format", value: "auto:DD/MM/YYYY", want: "15/03/2024"},
		{name: "format keeps case", value: "AUTO:MMM YYYY", want: "Mar 2024"},
		{name: "preset", value: "auto:long", want: "March 15, 2024"},
		{name: "preset is case insensitive", value: "auto:US", want: "03/15/2024"},
		{name: "full preset", value: "auto:full", want: "March 15th, 2024"},
		{name: "empty format", value: "auto:", wantErr: true},
		{name: "missing colon", value: "autoYYYY", wantErr: true},
		{name: "unclosed bracket", value: "auto:[x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.value, fixed)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("Resolve(%q) error = %v, want ErrInvalidDateFormat", tt.value, err)
				}
				if verr := Validate(tt.value); !errors.Is(verr, ErrInvalidDateFormat) {
					t.Errorf("Validate(%q) = %v, want ErrInvalidDateFormat", tt.value, verr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsAuto(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]bool{
		"auto":      true,
		"Auto:long": true,
		"":          false,
		"automatic": false,
		"2024":      false,
	} {
		if got := IsAuto(value); got != want {
			t.Errorf("IsAuto(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestOrdinal(t *testing.T) {
	t.Parallel()

	for n, want := range map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 31: "31st",
	} {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
