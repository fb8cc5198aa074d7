package validator_test

import (
	"strings"
	"testing"

	"LinkGate-Backend/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"https", "https://example.com", true},
		{"http with path and query", "http://example.com/a/b?c=d#e", true},
		{"non-http scheme with host", "ftp://files.example.com/x", true},
		{"host with port", "http://localhost:8080", true},
		{"empty", "", false},
		{"bare string", "example", false},
		{"relative path", "/just/a/path", false},
		{"scheme only", "https://", false},
		{"missing scheme", "//example.com", false},
		{"mailto has no host", "mailto:someone@example.com", false},
		{"unparseable", "http://[::1", false},
		{"too long", "https://example.com/" + strings.Repeat("a", validator.MaxURLLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.IsValidURL(tt.in))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"letters", "promo", true},
		{"mixed", "Summer_Sale-2024", true},
		{"single char", "a", true},
		{"max length", strings.Repeat("x", validator.MaxSlugLength), true},
		{"empty", "", false},
		{"too long", strings.Repeat("x", validator.MaxSlugLength+1), false},
		{"space", "my promo", false},
		{"slash", "a/b", false},
		{"dot", "a.b", false},
		{"unicode", "привет", false},
		{"query chars", "a?b=c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.IsValidSlug(tt.in))
		})
	}
}

func TestValidate_ReturnsDistinctErrors(t *testing.T) {
	assert.ErrorIs(t, validator.ValidateURL("nope"), validator.ErrInvalidURL)
	assert.ErrorIs(t, validator.ValidateSlug("no pe"), validator.ErrInvalidSlug)
	assert.NoError(t, validator.ValidateURL("https://example.com"))
	assert.NoError(t, validator.ValidateSlug("ok"))
	assert.NotEqual(t, validator.ErrInvalidURL, validator.ErrInvalidSlug)
}
