package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Los errores de los
// colaboradores externos (PDF, correo, scheduler) se propagan tal cual.
var (
	ErrMalformedBody     = errors.New("invalid JSON in request body")
	ErrMissingSchedule   = errors.New("please provide a schedule_expression for this recurring invoice")
	ErrDuplicateSchedule = errors.New("there is already a recurring invoice scheduled for this client, please unschedule the existing invoice before creating a new one")
	ErrRouteNotFound     = errors.New("no handler for route")
)

// Violation una violación puntual del formato de la factura: ruta del campo
// (ej. "client_info.client_id") y la razón.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string {
	return v.Path + ": " + v.Reason
}

// SchemaError agrupa todas las violaciones encontradas al validar una
// configuración de factura, ordenadas por ruta de campo para que el mensaje
// sea determinista.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("invalid invoice format: %s", strings.Join(parts, "; "))
}
