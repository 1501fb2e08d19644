package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const canonical = "246494da-eda8-80af-9603-c6a0e1e1213d"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"canonical", canonical, true},
		{"compact", "246494daeda880af9603c6a0e1e1213d", true},
		{"upper case", strings.ToUpper(canonical), true},
		{"odd dash placement", "2464-94daeda880af9603c6a0e1e12-13d", true},
		{"too short", "abc123", false},
		{"33 digits", "246494daeda880af9603c6a0e1e1213d0", false},
		{"non hex", "246494daeda880af9603c6a0e1e1213g", false},
		{"empty", "", false},
		{"placeholder", "oops-page-001", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.in))
		})
	}
}

func TestCanonicalizeRecoversIdentifiers(t *testing.T) {
	inputs := []string{
		canonical,
		"246494daeda880af9603c6a0e1e1213d",
		"246494DAEDA880AF9603C6A0E1E1213D",
		"2464-94da-eda880af9603c6a0e1e1213d",
		"-246494daeda880af9603c6a0e1e1213d-",
		"{246494da-eda8-80af-9603-c6a0e1e1213d}",
		"https://www.notion.so/My-Page-246494daeda880af9603c6a0e1e1213d",
		"https://www.notion.so/workspace/Reading-List-246494da-eda8-80af-9603-c6a0e1e1213d?v=1",
		"page id: 246494daeda880af9603c6a0e1e1213d (draft)",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, ok := Canonicalize(in)
			assert.True(t, ok)
			assert.Equal(t, canonical, got)
		})
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	first, ok := Canonicalize("246494daeda880af9603c6a0e1e1213d")
	assert.True(t, ok)
	second, ok := Canonicalize(first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestCanonicalizeRejects(t *testing.T) {
	inputs := []string{
		"",
		"abc123",
		"oops-page-001",
		"https://www.notion.so/My-Page",
		"246494daeda880af9603c6a0e1e121",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, ok := Canonicalize(in)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestEqualIgnoresDashesAndCase(t *testing.T) {
	assert.True(t, Equal(canonical, "246494DAEDA880AF9603C6A0E1E1213D"))
	assert.False(t, Equal(canonical, "146494daeda880af9603c6a0e1e1213d"))
}
