// Package casing provides the pluggable field-name casing functions the
// cloud codec is parameterized with. Logical field names throughout
// this codebase are camelCase, the Microsoft Graph convention, so Camel
// is the identity and the other functions transform from camelCase.
package casing

import (
	"strings"
	"unicode"
)

// Func maps a logical field name to its wire-format spelling.
type Func func(string) string

// Camel returns the field name unchanged.
func Camel(field string) string {
	return field
}

// Pascal upper-cases the first rune, the older Office 365 REST
// convention ("emailAddress" -> "EmailAddress").
func Pascal(field string) string {
	if field == "" {
		return ""
	}
	runes := []rune(field)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Snake converts camelCase to snake_case
// ("emailAddress" -> "email_address"). Consecutive upper-case runes are
// treated as one word boundary.
func Snake(field string) string {
	var b strings.Builder
	b.Grow(len(field) + 4)
	prevLower := false
	for _, r := range field {
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
			continue
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return b.String()
}
