package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu no debe crear su directorio de configuración en el host.
	model.ConfigPath = "disable"
}

// Verify valida la estructura del PDF y comprueba que tenga el número de
// páginas del plan.
func Verify(doc []byte, wantPages int) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(doc), conf); err != nil {
		return fmt.Errorf("pdf inválido: %w", err)
	}
	n, err := api.PageCount(bytes.NewReader(doc), conf)
	if err != nil {
		return fmt.Errorf("contar páginas: %w", err)
	}
	if n != wantPages {
		return fmt.Errorf("el documento tiene %d páginas, el plan %d", n, wantPages)
	}
	return nil
}
