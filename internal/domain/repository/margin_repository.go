package repository

import "github.com/mercafresh/backoffice-api/internal/domain/entity"

// MarginRepository define el puerto de persistencia para reglas de margen.
type MarginRepository interface {
	Create(rule *entity.MarginRule) error
	GetByID(id string) (*entity.MarginRule, error)
	Update(rule *entity.MarginRule) error
	List(limit, offset int) ([]*entity.MarginRule, error)
	Delete(id string) error
	// FindForProduct devuelve las reglas activas aplicables a un producto:
	// las de producto exacto y las de su categoría.
	FindForProduct(productID, categoryID string) ([]*entity.MarginRule, error)
}
