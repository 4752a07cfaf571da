package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanUTF8 drops invalid UTF8 sequences and NUL bytes from a string.
// The boolean reports whether anything was removed.
func CleanUTF8(input string) (string, bool) {
	needsCleaning := strings.Contains(input, "\x00") || !utf8.ValidString(input)

	if !needsCleaning {
		return input, false
	}

	cleaned := strings.ToValidUTF8(input, "")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	return cleaned, true
}

// CleanFormValue trims a submitted value and strips bytes the database would reject
func CleanFormValue(input string) string {
	cleaned, _ := CleanUTF8(input)
	return strings.TrimSpace(cleaned)
}
