package errors

import (
	"testing"
)

func TestValidateHandle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "golang", false},
		{"valid with underscore", "go_lang", false},
		{"valid with at sign", "@golang", false},
		{"valid padded", "  golang ", false},
		{"valid max length", "abcdefghijklmno", false},

		{"empty", "", true},
		{"only at sign", "@", true},
		{"too long", "abcdefghijklmnop", true},
		{"dash", "go-lang", true},
		{"space inside", "go lang", true},
		{"control char", "go\x01lang", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHandle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHandle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateHandle(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"golang", "golang"},
		{"@golang", "golang"},
		{"  @golang  ", "golang"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeHandle(tt.input); got != tt.want {
				t.Errorf("NormalizeHandle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "community.csv", false},
		{"valid nested", "data/community.csv", false},
		{"valid absolute", "/tmp/community.csv", false},

		{"empty", "", true},
		{"directory", "data/", true},
		{"null byte", "foo\x00.csv", true},
		{"newline", "foo\n.csv", true},
		{"too long", string(make([]byte, 2000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://api.twitter.com", false},
		{"http", "http://localhost:8080", false},
		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"no scheme", "api.twitter.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
