package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrInvalidPaymentTerms: código de condiciones de pago desconocido. Nunca se
	// sustituye por un plazo por defecto.
	ErrInvalidPaymentTerms = errors.New("invalid payment terms")
	// ErrCalculation agrupa los CalculationError.
	ErrCalculation = errors.New("calculation error")
	// ErrRender agrupa los RenderError.
	ErrRender = errors.New("render error")
	// ErrSequenceExhausted: el contador diario superó el formato de 3 dígitos.
	ErrSequenceExhausted = errors.New("daily invoice sequence exhausted")
)

// Violation es un problema concreto de un campo.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrega todas las violaciones encontradas (no se detiene en la primera).
type ValidationError struct {
	Violations []Violation
}

// Error implementa error.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Field == "" {
			parts = append(parts, v.Message)
			continue
		}
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add registra una violación.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Message: message})
}

// Has informa si alguna violación menciona el mensaje dado.
func (e *ValidationError) Has(message string) bool {
	for _, v := range e.Violations {
		if v.Message == message {
			return true
		}
	}
	return false
}

// OrNil devuelve nil si no hay violaciones.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

// CalculationError: entrada monetaria negativa o no finita.
type CalculationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation error for field '%s': %s (value: %s)", e.Field, e.Reason, e.Value)
}

func (e *CalculationError) Is(target error) bool {
	return target == ErrCalculation
}

// RenderError: un backend no pudo producir el documento. Nunca acompaña bytes parciales.
type RenderError struct {
	Strategy string
	Op       string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("render %s: %v", e.Strategy, e.Err)
	}
	return fmt.Sprintf("render %s: %s: %v", e.Strategy, e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// NewRenderError construye un RenderError.
func NewRenderError(strategy, op string, err error) *RenderError {
	return &RenderError{Strategy: strategy, Op: op, Err: err}
}
