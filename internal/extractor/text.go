package extractor

import (
	"unicode/utf8"

	"github.com/fakenewsverificaton/verificaton-api/internal/sanitize"
)

// Limites de tamanho do texto extraído, em caracteres
const (
	DefaultMinChars = 200
	DefaultMaxChars = 10_000
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// capText trunca o texto e informa se houve corte
func capText(text string, max int) (string, bool) {
	if runeLen(text) <= max {
		return text, false
	}
	return sanitize.Truncate(text, max), true
}

func shorten(s string, n int) string {
	return sanitize.Truncate(s, n)
}
