package pdf

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliteración oficial búlgara (sistema simplificado, 2009).
var bulgarian = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ж': "zh", 'з': "z",
	'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p",
	'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sht", 'ъ': "a", 'ь': "y", 'ю': "yu", 'я': "ya",
}

// Símbolos frecuentes fuera de Windows-1252.
var symbols = map[rune]string{
	'№': "No", '²': "2", '³': "3", '−': "-", '‑': "-", ' ': " ",
}

// stripMarks construye la cadena por llamada: los transformers guardan estado.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Transliterate reduce un texto UTF-8 al repertorio de Windows-1252, el único
// que cubren las fuentes base del PDF. El cirílico búlgaro se transcribe, las
// letras con diacríticos fuera del repertorio pierden la marca y lo que sigue
// sin representación se sustituye por '?'.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteRune(r)
			continue
		}
		if t, ok := bulgarian[unicode.ToLower(r)]; ok {
			if unicode.IsUpper(r) {
				t = strings.ToUpper(t[:1]) + t[1:]
			}
			b.WriteString(t)
			continue
		}
		if t, ok := symbols[r]; ok {
			b.WriteString(t)
			continue
		}
		if folded := foldRune(r); folded != "" {
			b.WriteString(folded)
			continue
		}
		b.WriteByte('?')
	}
	return upperRuns(b.String(), s)
}

// foldRune quita diacríticos y devuelve el resultado solo si ya es representable.
func foldRune(r rune) string {
	out, _, err := transform.String(stripMarks(), string(r))
	if err != nil || out == "" {
		return ""
	}
	for _, c := range out {
		if _, ok := charmap.Windows1252.EncodeRune(c); !ok {
			return ""
		}
	}
	return out
}

// upperRuns mantiene en mayúsculas los textos que lo estaban por completo
// ("ФАКТУРА" -> "FAKTURA" y no "FaKTURA").
func upperRuns(out, in string) string {
	hasLetter := false
	for _, r := range in {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return out
			}
		}
	}
	if !hasLetter {
		return out
	}
	return strings.ToUpper(out)
}
