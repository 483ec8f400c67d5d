// Package sizing normaliza etiquetas de talle de texto libre (numéricas,
// por letra, europeas, de niños y de bebé) a un token canónico, para que la
// búsqueda y el agrupado de stock funcionen aunque la carga de datos sea
// inconsistente ("m", " M ", "2/M" son el mismo talle).
package sizing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// equivalences mapea cada token canónico a sus alias aceptados. La tabla es
// estática e inmutable; se consulta con el input ya plegado (mayúsculas, sin
// tildes). Los alias se comparan también plegados.
var equivalences = map[string][]string{
	"1":      {"1", "S", "1/S", "TALLE 1"},
	"2":      {"2", "M", "2/M", "TALLE 2"},
	"3":      {"3", "L", "3/L", "TALLE 3"},
	"4":      {"4", "XL", "4/XL", "TALLE 4"},
	"5":      {"5", "XXL", "5/XXL", "TALLE 5"},
	"ÚNICO":  {"UNICO", "UNICA", "U", "TU", "T/U", "TALLE UNICO"},
	"36":     {"36", "EU36"},
	"38":     {"38", "EU38"},
	"40":     {"40", "EU40"},
	"42":     {"42", "EU42"},
	"44":     {"44", "EU44"},
	"46":     {"46", "EU46"},
	"48":     {"48", "EU48"},
	"RN":     {"RN", "RECIEN NACIDO", "0M"},
	"3M":     {"3M", "3 MESES"},
	"6M":     {"6M", "6 MESES"},
	"9M":     {"9M", "9 MESES"},
	"12M":    {"12M", "12 MESES"},
	"18M":    {"18M", "18 MESES"},
	"KIDS 2": {"KIDS 2", "K2", "2 ANOS"},
	"KIDS 4": {"KIDS 4", "K4", "4 ANOS"},
	"KIDS 6": {"KIDS 6", "K6", "6 ANOS"},
	"KIDS 8": {"KIDS 8", "K8", "8 ANOS"},
}

// numericLetter es el atajo numérico↔letra del filtro de búsqueda:
// buscar "2" también matchea variantes cargadas como "M" y viceversa.
// Es independiente de la tabla canónica.
var numericLetter = map[string]string{
	"1": "S", "2": "M", "3": "L", "4": "XL", "5": "XXL",
	"S": "1", "M": "2", "L": "3", "XL": "4", "XXL": "5",
}

// aliasIndex se construye una vez a partir de equivalences: alias plegado -> canónico.
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range equivalences {
		for _, alias := range aliases {
			idx[fold(alias)] = canonical
		}
	}
	return idx
}

// fold recorta, pasa a mayúsculas y quita tildes ("único" -> "UNICO").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(s))
	}
	return folded
}

// Normalize mapea una etiqueta de talle de texto libre a su token canónico.
// Si ningún alias matchea, devuelve el input recortado en mayúsculas sin
// error: las etiquetas desconocidas pasan de largo, no rompen nada.
// Es total sobre cualquier string (el vacío devuelve vacío) y pura.
func Normalize(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if canonical, ok := aliasIndex[fold(raw)]; ok {
		return canonical
	}
	return trimmed
}

// SameGroup indica si dos etiquetas refieren al mismo talle, considerando la
// tabla canónica y el atajo numérico↔letra (p. ej. "2" matchea "M").
func SameGroup(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	if alt, ok := numericLetter[na]; ok && Normalize(alt) == nb {
		return true
	}
	if alt, ok := numericLetter[nb]; ok && Normalize(alt) == na {
		return true
	}
	return false
}
