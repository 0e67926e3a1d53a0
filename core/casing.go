package core

import (
	"strings"
	"unicode"

	"launcher/models"
)

// SnakeToCamel converts a snake_case key to camelCase.
func SnakeToCamel(key string) string {
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// CamelToSnake converts a camelCase key to snake_case. A leading uppercase
// letter is lowercased without a separator.
func CamelToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel returns a copy of rec with every top-level key converted to camelCase.
func ToCamel(rec models.Record) models.Record {
	return convertKeys(rec, SnakeToCamel)
}

// ToSnake returns a copy of rec with every top-level key converted to snake_case.
func ToSnake(rec models.Record) models.Record {
	return convertKeys(rec, CamelToSnake)
}

func convertKeys(rec models.Record, conv func(string) string) models.Record {
	out := make(models.Record, len(rec))
	for k, v := range rec {
		out[conv(k)] = v
	}
	return out
}
