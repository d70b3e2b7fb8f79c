package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the caseless form of s used for every case-insensitive
// comparison of tag names and titles. It folds full Unicode, so "Ёлка" and
// "ёлка" compare equal.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// TagKey is the uniqueness key of a tag name: trimmed and folded.
func TagKey(name string) string {
	return Fold(strings.TrimSpace(name))
}
