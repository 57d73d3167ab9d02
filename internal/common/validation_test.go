package common

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"json accepted", "json", false},
		{"text accepted", "text", false},
		{"markdown accepted", "markdown", false},
		{"xml rejected", "xml", true},
		{"empty format rejected", "", true},
		{"matching is case sensitive", "JSON", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, supported)
			if tt.wantErr && err == nil {
				t.Error("expected error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateOutputFormatErrorNamesSupportedSet(t *testing.T) {
	err := ValidateOutputFormat("csv", []string{"json"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	want := "unsupported output format 'csv'. Supported formats: [json]"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestValidateOutputFormatNoRestrictions(t *testing.T) {
	// An empty supported list means the deployment accepts anything
	if err := ValidateOutputFormat("xml", nil); err != nil {
		t.Errorf("unexpected error with no restrictions: %v", err)
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := []string{"json", "text"}
	got := GetSupportedFormats(formats)
	if len(got) != 2 || got[0] != "json" || got[1] != "text" {
		t.Errorf("GetSupportedFormats = %v, want %v", got, formats)
	}
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supported := []string{"json", "text", "markdown"}
	for b.Loop() {
		_ = ValidateOutputFormat("markdown", supported)
	}
}
