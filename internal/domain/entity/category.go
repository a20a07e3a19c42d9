package entity

import "time"

// Category representa una categoría del catálogo (frutas, lácteos, despensa...).
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
