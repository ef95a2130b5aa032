package document

import "fmt"

// Estrategias de renderizado intercambiables.
const (
	StrategyStructured = "structured" // árbol de páginas con fuentes embebidas
	StrategyRaster     = "raster"     // HTML rasterizado y embebido como imagen
	StrategyVector     = "vector"     // dibujo directo con fuentes base
)

// FallbackOrder orden por defecto en que se prueban las estrategias.
var FallbackOrder = []string{StrategyStructured, StrategyRaster, StrategyVector}

// ParseStrategy valida el nombre de una estrategia.
func ParseStrategy(s string) (string, error) {
	switch s {
	case StrategyStructured, StrategyRaster, StrategyVector:
		return s, nil
	}
	return "", fmt.Errorf("document: estrategia desconocida %q", s)
}

// Order valida la configuración de estrategias: la preferida (si hay) primero y
// luego el respaldo, sin repetir.
func Order(preferred string, fallback []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, s := range append([]string{preferred}, fallback...) {
		if s == "" || seen[s] {
			continue
		}
		if _, err := ParseStrategy(s); err != nil {
			return nil, err
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return FallbackOrder, nil
	}
	return out, nil
}
