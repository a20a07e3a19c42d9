package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
// Exactamente una bodega debe estar marcada como predeterminada (IsDefault).
type Warehouse struct {
	ID        string
	Name      string
	IsDefault bool
	Address   string
	City      string
	Capacity  int // capacidad en unidades; 0 = sin límite declarado
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
