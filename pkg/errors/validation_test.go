package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/scene.png", false},
		{"absolute", "/tmp/scene.gif", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"default", 960, 540, false},
		{"minimum", MinDimension, MinDimension, false},
		{"maximum", MaxDimension, MaxDimension, false},
		{"zero width", 0, 540, true},
		{"negative height", 960, -1, true},
		{"too wide", MaxDimension + 1, 540, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("unexpected code %v", GetCode(err))
			}
		})
	}
}

func TestValidateFPS(t *testing.T) {
	for _, fps := range []int{1, 15, 60, 120} {
		if err := ValidateFPS(fps); err != nil {
			t.Errorf("ValidateFPS(%d) = %v", fps, err)
		}
	}
	for _, fps := range []int{0, -5, 121} {
		if err := ValidateFPS(fps); err == nil {
			t.Errorf("ValidateFPS(%d) should fail", fps)
		}
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#58C4DD", false},
		{"58c4dd", false},
		{"#fff", false},
		{"#83C16780", false},
		{"", true},
		{"#12345", true},
		{"#GGGGGG", true},
		{"blue", true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
