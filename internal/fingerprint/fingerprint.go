// Package fingerprint calcula o hash determinístico usado para deduplicar análises
// e agrupar tendências.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize remove acentos, converte para minúsculas e colapsa espaços
// Exemplo: "  Vacina  CAUSA\nautismo " -> "vacina causa autismo"
func Normalize(text string) string {
	if text == "" {
		return text
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, text)
	if err != nil {
		normalized = norm.NFC.String(text)
	}

	normalized = strings.ToLower(normalized)
	return strings.Join(strings.Fields(normalized), " ")
}

// Of retorna o SHA-256 hexadecimal do texto normalizado
func Of(text string) string {
	sum := sha256.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// OfBytes retorna o SHA-256 hexadecimal de um conteúdo binário (imagem, áudio)
func OfBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
