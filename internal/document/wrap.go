package document

import (
	"strings"
	"unicode/utf8"
)

// Wrap parte el texto en líneas de como máximo width runas, cortando por
// palabras. Las palabras más largas que width se cortan en seco. Los saltos de
// línea explícitos se respetan. Un texto vacío produce cero líneas.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		var cur strings.Builder
		curLen := 0
		flush := func() {
			if curLen > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curLen = 0
			}
		}
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				flush()
				head, tail := splitRunes(w, width)
				lines = append(lines, head)
				w = tail
			}
			n := utf8.RuneCountInString(w)
			if curLen > 0 && curLen+1+n > width {
				flush()
			}
			if curLen > 0 {
				cur.WriteByte(' ')
				curLen++
			}
			cur.WriteString(w)
			curLen += n
		}
		flush()
	}
	return lines
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
