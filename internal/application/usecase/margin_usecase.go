package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

// MarginUseCase administra reglas de margen y calcula el margen efectivo de un producto.
type MarginUseCase struct {
	repo        repository.MarginRepository
	productRepo repository.ProductRepository
}

// NewMarginUseCase construye el caso de uso.
func NewMarginUseCase(repo repository.MarginRepository, productRepo repository.ProductRepository) *MarginUseCase {
	return &MarginUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una regla de margen: aplica a un producto o a una categoría, nunca ambos.
func (uc *MarginUseCase) Create(in dto.CreateMarginRequest) (*dto.MarginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	rule := &entity.MarginRule{
		ID:         uuid.New().String(),
		Name:       in.Name,
		ProductID:  in.ProductID,
		CategoryID: in.CategoryID,
		Percent:    in.Percent,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(rule); err != nil {
		return nil, err
	}
	return toMarginResponse(rule), nil
}

// GetByID obtiene una regla por ID.
func (uc *MarginUseCase) GetByID(id string) (*dto.MarginResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	return toMarginResponse(rule), nil
}

// Update actualiza nombre, porcentaje o estado de una regla. El alcance no cambia.
func (uc *MarginUseCase) Update(id string, in dto.UpdateMarginRequest) (*dto.MarginResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		rule.Name = *in.Name
	}
	if in.Percent != nil {
		if in.Percent.IsNegative() {
			return nil, domain.NewValidationError("percent", "debe ser mayor o igual a cero")
		}
		rule.Percent = *in.Percent
	}
	if in.Active != nil {
		rule.Active = *in.Active
	}
	rule.UpdatedAt = time.Now()
	if err := uc.repo.Update(rule); err != nil {
		return nil, err
	}
	return toMarginResponse(rule), nil
}

// List lista reglas con paginación.
func (uc *MarginUseCase) List(page dto.PageRequest) (*dto.MarginListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MarginResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toMarginResponse(r))
	}
	return &dto.MarginListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Delete elimina una regla.
func (uc *MarginUseCase) Delete(id string) error {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// EffectiveMarginForProduct resuelve el margen aplicable a un producto: la regla de
// producto tiene prioridad sobre la de su categoría. Si el producto tiene costo
// registrado, sugiere precio = costo * (1 + percent/100).
func (uc *MarginUseCase) EffectiveMarginForProduct(productID string) (*dto.EffectiveMarginResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rules, err := uc.repo.FindForProduct(product.ID, product.CategoryID)
	if err != nil {
		return nil, err
	}

	out := &dto.EffectiveMarginResponse{ProductID: product.ID, Percent: decimal.Zero}
	for _, r := range rules {
		if !r.Active {
			continue
		}
		if r.ProductID == product.ID {
			out.Percent = r.Percent
			out.RuleID = r.ID
			break
		}
		if out.RuleID == "" && r.CategoryID != "" && r.CategoryID == product.CategoryID {
			out.Percent = r.Percent
			out.RuleID = r.ID
		}
	}

	if product.Cost.GreaterThan(decimal.Zero) {
		hundred := decimal.NewFromInt(100)
		suggested := product.Cost.Mul(decimal.NewFromInt(1).Add(out.Percent.Div(hundred)))
		out.SuggestedPrice = &suggested
	}
	return out, nil
}

func toMarginResponse(r *entity.MarginRule) *dto.MarginResponse {
	if r == nil {
		return nil
	}
	return &dto.MarginResponse{
		ID:         r.ID,
		Name:       r.Name,
		ProductID:  r.ProductID,
		CategoryID: r.CategoryID,
		Percent:    r.Percent,
		Active:     r.Active,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
