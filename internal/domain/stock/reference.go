package stock

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	referencePrefixLen = 3
	defaultPrefix      = "GER"
)

// ReferencePrefix deriva el prefijo del código de referencia a partir de la categoría:
// sin acentos, en mayúsculas, solo letras y dígitos ("Calçados" -> "CAL").
func ReferencePrefix(category string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, category)
	if err != nil {
		folded = category
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(r)
		if b.Len() == referencePrefixLen {
			break
		}
	}
	if b.Len() == 0 {
		return defaultPrefix
	}
	return b.String()
}

// ReferenceCode compone prefijo y sufijo: "CAL-1A2B3C".
func ReferenceCode(category, suffix string) string {
	return ReferencePrefix(category) + "-" + strings.ToUpper(suffix)
}
