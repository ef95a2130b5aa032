package entity

// Product entrada del catálogo usada para resolver nombre, descripción y unidad de una línea.
type Product struct {
	Ref         string
	Name        string
	Description string
	Unit        string
}
