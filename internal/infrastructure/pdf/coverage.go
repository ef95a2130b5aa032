package pdf

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/image/font/sfnt"

	"github.com/jhoicas/facturador/internal/document"
)

// checkCoverage comprueba que la fuente TrueType tenga glifo para cada carácter
// imprimible del contenido. Sin cobertura el texto saldría como cajas vacías.
func checkCoverage(font []byte, c *document.Content) error {
	f, err := sfnt.Parse(font)
	if err != nil {
		return fmt.Errorf("fuente ilegible: %w", err)
	}
	var buf sfnt.Buffer
	missing := map[rune]bool{}
	for _, s := range contentStrings(c) {
		for _, r := range s {
			if unicode.IsSpace(r) || !unicode.IsPrint(r) || missing[r] {
				continue
			}
			idx, err := f.GlyphIndex(&buf, r)
			if err != nil {
				return fmt.Errorf("fuente ilegible: %w", err)
			}
			if idx == 0 {
				missing[r] = true
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	list := make([]string, 0, len(missing))
	for r := range missing {
		list = append(list, fmt.Sprintf("%q", r))
	}
	sort.Strings(list)
	return fmt.Errorf("la fuente no cubre %s", strings.Join(list, " "))
}

// contentStrings todos los textos visibles del documento.
func contentStrings(c *document.Content) []string {
	out := []string{c.Title, c.Number, c.CompanyName, c.ExchangeNote, c.PageLabel(1, 1)}
	for _, m := range c.Meta {
		out = append(out, m.Label, m.Value)
	}
	for _, p := range []document.Party{c.Issuer, c.Recipient} {
		out = append(out, p.Title, p.Name)
		out = append(out, p.Lines...)
	}
	out = append(out, c.Columns[:]...)
	for _, r := range c.Rows {
		out = append(out, r.Cells[:]...)
		out = append(out, r.Detail)
	}
	for _, t := range c.Totals {
		out = append(out, t.Label, t.Value)
	}
	f := c.Footer
	out = append(out, f.NotesTitle, f.Notes, f.BankTitle, f.TermsTitle, f.Terms)
	return append(out, f.Bank...)
}
