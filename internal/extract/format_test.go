package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	if got, want := Allowed(), []string{".docx", ".pdf"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Allowed() = %v, want %v", got, want)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	docxData := buildDOCX(t, "x")
	pdfData := buildPDF(t, []string{"x"})

	tests := []struct {
		name     string
		filename string
		data     []byte
		want     Format
		wantErr  bool
	}{
		{name: "docx", filename: "a.docx", data: docxData, want: FormatDOCX},
		{name: "uppercase extension", filename: "A.PDF", data: pdfData, want: FormatPDF},
		{name: "legacy doc", filename: "a.doc", data: docxData, wantErr: true},
		{name: "mismatch", filename: "a.pdf", data: docxData, wantErr: true},
		{name: "garbage", filename: "a.docx", data: []byte{0, 1, 2, 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectFormat(tt.filename, tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("DetectFormat() error = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}
