package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anadolusms/smspanel/internal/phone"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no whitespace", "905321234567", "905321234567"},
		{"spaces", "90 532 123 45 67", "905321234567"},
		{"tabs and newlines", "90\t532\n1234567\r", "905321234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, phone.Normalize(tt.input))
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid number", "905321234567", true},
		{"too short", "90532123456", false},
		{"too long", "9053212345678", false},
		{"wrong prefix", "915321234567", false},
		{"letters", "90532abc4567", false},
		{"empty", "", false},
		{"prefix only", "90", false},
		{"plus prefix", "+905321234567", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, phone.Valid(tt.input))
		})
	}
}
