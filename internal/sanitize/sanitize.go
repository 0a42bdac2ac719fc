// Package sanitize limpa texto antes de enviá-lo ao modelo.
//
// Todo texto analisado passa por aqui, inclusive o que já veio "limpo" dos extratores:
// remove tags e restos de script, decodifica entidades, neutraliza javascript: e
// handlers on*=, normaliza espaços e limita o tamanho em caracteres.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultMaxLength é o limite padrão em caracteres
const DefaultMaxLength = 10_000

var (
	stripPolicy = bluemonday.StripTagsPolicy()

	scriptBlocks   = regexp.MustCompile(`(?is)<\s*(script|style)[^>]*>.*?<\s*/\s*(script|style)\s*>`)
	residualTags   = regexp.MustCompile(`<[^>]*>`)
	scriptOpeners  = regexp.MustCompile(`(?i)<\s*/?\s*script`)
	residualEntity = regexp.MustCompile(`&#?\w+;`)
	jsScheme       = regexp.MustCompile(`(?i)javascript\s*:`)
	eventHandlers  = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	multiSpaces    = regexp.MustCompile(`[\t\f\v\r ]+`)
	spaceNewline   = regexp.MustCompile(` *\n *`)
	multiNewlines  = regexp.MustCompile(`\n{3,}`)
)

// Sanitize aplica a limpeza completa e trunca em maxLength caracteres (runes).
// maxLength <= 0 usa DefaultMaxLength.
func Sanitize(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if text == "" {
		return ""
	}

	cleaned := stripPolicy.Sanitize(text)
	cleaned = html.UnescapeString(cleaned)

	// Entidades decodificadas podem formar novas tags (&lt;script&gt;)
	cleaned = scriptBlocks.ReplaceAllString(cleaned, "")
	cleaned = residualTags.ReplaceAllString(cleaned, "")
	cleaned = scriptOpeners.ReplaceAllString(cleaned, "")
	cleaned = residualEntity.ReplaceAllString(cleaned, " ")

	cleaned = jsScheme.ReplaceAllString(cleaned, "")
	cleaned = eventHandlers.ReplaceAllString(cleaned, "")

	cleaned = strings.ReplaceAll(cleaned, "\u00a0", " ")
	cleaned = multiSpaces.ReplaceAllString(cleaned, " ")
	cleaned = spaceNewline.ReplaceAllString(cleaned, "\n")
	cleaned = multiNewlines.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)

	return Truncate(cleaned, maxLength)
}

// Truncate corta s em no máximo n caracteres sem quebrar UTF-8
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// CollapseWhitespace reduz qualquer sequência de espaços (inclusive quebras de linha) a um espaço
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
