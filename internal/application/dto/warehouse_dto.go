package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Capacity  int    `json:"capacity"`
}

// Validate valida la creación de bodega.
func (r CreateWarehouseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("el nombre es requerido"), validation.Length(1, 200).Error("el nombre debe tener entre 1 y 200 caracteres")),
		validation.Field(&r.Capacity, validation.Min(0).Error("la capacidad debe ser mayor o igual a cero")),
	)
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name      *string `json:"name"`
	IsDefault *bool   `json:"is_default"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Capacity  *int    `json:"capacity"`
	Active    *bool   `json:"active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Capacity  int       `json:"capacity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
