package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturador/internal/infrastructure/pdf"
)

func TestTransliterate(t *testing.T) {
	cases := map[string]string{
		"Иван Петров":          "Ivan Petrov",
		"ФАКТУРА":              "FAKTURA",
		"ЩАСТИЕ":               "SHTASTIE",
		"Щастие":               "Shtastie",
		"Пловдив, България":    "Plovdiv, Balgariya",
		"Сума за плащане":      "Suma za plashtane",
		"61,20 лв.":            "61,20 lv.",
		"31,29 €":              "31,29 €",
		"Čech":                 "Cech",
		"Señor Müller":         "Señor Müller",
		"№ 5":                  "No 5",
		"中":                    "?",
		"Страница 1 от 2":      "Stranitsa 1 ot 2",
		"ул. Витоша 15":        "ul. Vitosha 15",
		"Гранитогрес плочка 1": "Granitogres plochka 1",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.Transliterate(in), in)
	}
}
