package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. La primera bodega creada queda
// como predeterminada; marcar otra como predeterminada desmarca la anterior.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega. Si no existe ninguna predeterminada, esta lo será.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetDefault()
	if err != nil {
		return nil, err
	}
	isDefault := in.IsDefault || current == nil
	if isDefault && current != nil {
		current.IsDefault = false
		current.UpdatedAt = time.Now()
		if err := uc.repo.Update(current); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		IsDefault: isDefault,
		Address:   in.Address,
		City:      in.City,
		Capacity:  in.Capacity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega. Desmarcar IsDefault directamente no está permitido:
// siempre debe existir una predeterminada, se cambia marcando otra.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.IsDefault != nil {
		if !*in.IsDefault && warehouse.IsDefault {
			return nil, domain.NewValidationError("isDefault", "debe existir una bodega predeterminada; marque otra como predeterminada")
		}
		if *in.IsDefault && !warehouse.IsDefault {
			current, err := uc.repo.GetDefault()
			if err != nil {
				return nil, err
			}
			if current != nil && current.ID != id {
				current.IsDefault = false
				current.UpdatedAt = time.Now()
				if err := uc.repo.Update(current); err != nil {
					return nil, err
				}
			}
			warehouse.IsDefault = true
		}
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.City != nil {
		warehouse.City = *in.City
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return nil, domain.NewValidationError("capacity", "debe ser mayor o igual a cero")
		}
		warehouse.Capacity = *in.Capacity
	}
	if in.Active != nil {
		if !*in.Active && warehouse.IsDefault {
			return nil, domain.NewValidationError("active", "la bodega predeterminada no puede desactivarse")
		}
		warehouse.Active = *in.Active
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		IsDefault: w.IsDefault,
		Address:   w.Address,
		City:      w.City,
		Capacity:  w.Capacity,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
