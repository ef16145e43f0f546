package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		max      int
		newlines bool
		want     string
	}{
		{"trims", "  hello  ", 0, false, "hello"},
		{"collapses whitespace", "a \t\n  b", 0, false, "a b"},
		{"strips markup chars", "<b>bold</b> `x`", 0, false, "bbold/b x"},
		{"drops controls", "a\x00b\x7fc", 0, false, "abc"},
		{"keeps newlines when allowed", "line1\r\nline2", 0, true, "line1\nline2"},
		{"truncates runes", "héllo wörld", 5, false, "héllo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Text(tc.in, tc.max, tc.newlines))
		})
	}
}

func TestText_DefaultMax(t *testing.T) {
	got := Text(strings.Repeat("x", 400), 0, false)
	assert.Len(t, got, DefaultMaxLen)
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", Email("  User@Example.COM "))
	assert.True(t, LooksLikeEmail("user@example.com"))
	assert.False(t, LooksLikeEmail("user@example"))
	assert.False(t, LooksLikeEmail("@example.com"))
	assert.False(t, LooksLikeEmail("a@b@c.com"))
	assert.False(t, LooksLikeEmail("userexample.com"))
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate(""))
	assert.True(t, IsISODate("2024-02-29"))
	assert.False(t, IsISODate("2023-02-29"))
	assert.False(t, IsISODate("2024-2-1"))
	assert.False(t, IsISODate("tomorrow"))
}
