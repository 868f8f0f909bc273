package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"absolute", "/workspace/a.txt", false},
		{"relative", "notes/today.md", false},
		{"unicode", "/workspace/日本語.txt", false},
		{"empty", "", true},
		{"null byte", "/workspace/a\x00b", true},
		{"too long", "/" + strings.Repeat("a", MaxPathLength), true},
		{"invalid utf-8", "/workspace/\xff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePattern(t *testing.T) {
	assert.NoError(t, ValidatePattern("**/*.go"))
	assert.Error(t, ValidatePattern(""))
	assert.Error(t, ValidatePattern(strings.Repeat("*", MaxPatternLength+1)))
}

func TestValidateEncoding(t *testing.T) {
	for _, ok := range []string{"", "utf-8", "ISO-8859-1", "shift_jis", "auto"} {
		assert.NoError(t, ValidateEncoding(ok), ok)
	}
	for _, bad := range []string{"utf 8", "latin1;drop", strings.Repeat("x", MaxEncodingLength+1)} {
		assert.Error(t, ValidateEncoding(bad), bad)
	}
}
