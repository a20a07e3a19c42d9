package dto

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Reglas de validación para decimal.Decimal: ozzo no sabe comparar structs,
// así que los montos y cantidades usan estas reglas en validation.By.
func decimalNonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("valor numérico inválido")
	}
	if d.IsNegative() {
		return errors.New("debe ser mayor o igual a cero")
	}
	return nil
}

func decimalPositive(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("valor numérico inválido")
	}
	if !d.GreaterThan(decimal.Zero) {
		return errors.New("debe ser mayor a cero")
	}
	return nil
}

// Envelope es el sobre uniforme de todas las respuestas HTTP:
// {success, message, content?, error?}. El status code lo decide el handler.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// OK construye un sobre de éxito.
func OK(message string, content any) Envelope {
	return Envelope{Success: true, Message: message, Content: content}
}

// Fail construye un sobre de error.
func Fail(message string, detail any) Envelope {
	return Envelope{Success: false, Message: message, Error: detail}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y topes si Limit/Offset son inválidos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
