package errors

import (
	"strings"
	"testing"
)

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "zero is auto", value: 0, wantErr: false},
		{name: "positive", value: 80, wantErr: false},
		{name: "negative", value: -1, wantErr: true},
		{name: "huge", value: 1 << 21, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("width", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateThreshold(t *testing.T) {
	for _, v := range []int{0, 1, 128, 255} {
		if err := ValidateThreshold(v); err != nil {
			t.Errorf("ValidateThreshold(%d) = %v, want nil", v, err)
		}
	}
	for _, v := range []int{-1, 256, 1000} {
		if err := ValidateThreshold(v); err == nil {
			t.Errorf("ValidateThreshold(%d) = nil, want error", v)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "simple", path: "out.c", wantErr: false},
		{name: "nested", path: "dir/out.c", wantErr: false},
		{name: "absolute", path: "/tmp/out.c", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "null byte", path: "out\x00.c", wantErr: true},
		{name: "newline", path: "out\n.c", wantErr: true},
		{name: "too long", path: strings.Repeat("a", 5000), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSeedSpec(t *testing.T) {
	for _, s := range []string{"", "0", "42", "-7", "123456789"} {
		if err := ValidateSeedSpec(s); err != nil {
			t.Errorf("ValidateSeedSpec(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"-", "abc", "1.5", "0x10", "1e3"} {
		if err := ValidateSeedSpec(s); err == nil {
			t.Errorf("ValidateSeedSpec(%q) = nil, want error", s)
		}
	}
}
