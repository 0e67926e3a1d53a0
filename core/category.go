package core

import (
	"strings"
	"unicode/utf8"
)

// MaxCategoryNameLength is the longest accepted category name, in characters.
const MaxCategoryNameLength = 50

// ValidateCategoryName trims and lowercases name.
func ValidateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError("category name required")
	}
	name = strings.ToLower(name)
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", NewValidationError("category name too long")
	}
	return name, nil
}
