// Package normalize pliega texto para búsquedas insensibles a mayúsculas y
// acentos ("Cajón" -> "cajon"). Se usa para mantener la columna de búsqueda
// de productos y para normalizar los términos que envía el caller.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el texto en minúsculas y sin marcas diacríticas.
// Si la transformación falla devuelve el texto en minúsculas tal cual.
func Fold(s string) string {
	folded, _, err := transform.String(folder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
