package entity

import "time"

// Supplier representa un proveedor de productos del mercado.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación fiscal
	Email     string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
