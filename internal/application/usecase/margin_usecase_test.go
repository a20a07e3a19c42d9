package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/application/usecase"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

const (
	marginProductID  = "33333333-3333-3333-3333-333333333333"
	marginCategoryID = "44444444-4444-4444-4444-444444444444"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeMarginRepo struct {
	byID map[string]*entity.MarginRule
}

func newFakeMarginRepo(rules ...*entity.MarginRule) *fakeMarginRepo {
	r := &fakeMarginRepo{byID: make(map[string]*entity.MarginRule)}
	for _, rule := range rules {
		cp := *rule
		r.byID[rule.ID] = &cp
	}
	return r
}

func (r *fakeMarginRepo) Create(rule *entity.MarginRule) error {
	cp := *rule
	r.byID[rule.ID] = &cp
	return nil
}

func (r *fakeMarginRepo) GetByID(id string) (*entity.MarginRule, error) {
	rule, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *rule
	return &cp, nil
}

func (r *fakeMarginRepo) Update(rule *entity.MarginRule) error {
	cp := *rule
	r.byID[rule.ID] = &cp
	return nil
}

func (r *fakeMarginRepo) List(limit, _ int) ([]*entity.MarginRule, error) {
	var out []*entity.MarginRule
	for _, rule := range r.byID {
		if len(out) == limit {
			break
		}
		cp := *rule
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMarginRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeMarginRepo) FindForProduct(productID, categoryID string) ([]*entity.MarginRule, error) {
	var out []*entity.MarginRule
	// Primero las de producto, luego las de categoría (orden del repositorio real)
	for _, rule := range r.byID {
		if rule.ProductID == productID {
			cp := *rule
			out = append(out, &cp)
		}
	}
	for _, rule := range r.byID {
		if rule.ProductID == "" && categoryID != "" && rule.CategoryID == categoryID {
			cp := *rule
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.byID[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	if p, ok := r.byID[id]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *fakeProductRepo) List(_, _ int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListByCategory(_ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.byID[id]; ok {
		p.Active = false
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — alcance mutuamente excluyente
// ──────────────────────────────────────────────────────────────────────────────

func TestMarginCreate_AlcanceExclusivo(t *testing.T) {
	uc := usecase.NewMarginUseCase(newFakeMarginRepo(), newFakeProductRepo())

	// Producto y categoría a la vez → inválido
	_, err := uc.Create(dto.CreateMarginRequest{
		Name:       "doble alcance",
		ProductID:  marginProductID,
		CategoryID: marginCategoryID,
		Percent:    dec("30"),
	})
	require.Error(t, err)

	// Ninguno de los dos → inválido
	_, err = uc.Create(dto.CreateMarginRequest{Name: "sin alcance", Percent: dec("30")})
	require.Error(t, err)

	// Solo categoría → válido y activa por defecto
	out, err := uc.Create(dto.CreateMarginRequest{
		Name:       "margen frutas",
		CategoryID: marginCategoryID,
		Percent:    dec("25"),
	})
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.True(t, out.Percent.Equal(dec("25")))
}

func TestMarginCreate_PorcentajeNegativo(t *testing.T) {
	uc := usecase.NewMarginUseCase(newFakeMarginRepo(), newFakeProductRepo())
	_, err := uc.Create(dto.CreateMarginRequest{
		Name:      "negativa",
		ProductID: marginProductID,
		Percent:   dec("-5"),
	})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// EffectiveMarginForProduct — prioridad producto > categoría
// ──────────────────────────────────────────────────────────────────────────────

func marginProduct() *entity.Product {
	return &entity.Product{
		ID:         marginProductID,
		SKU:        "SKU-M01",
		CategoryID: marginCategoryID,
		Cost:       dec("10"),
		Active:     true,
	}
}

func TestEffectiveMargin_ReglaDeProductoGana(t *testing.T) {
	repo := newFakeMarginRepo(
		&entity.MarginRule{ID: "r-cat", CategoryID: marginCategoryID, Percent: dec("20"), Active: true},
		&entity.MarginRule{ID: "r-prod", ProductID: marginProductID, Percent: dec("35"), Active: true},
	)
	uc := usecase.NewMarginUseCase(repo, newFakeProductRepo(marginProduct()))

	out, err := uc.EffectiveMarginForProduct(marginProductID)
	require.NoError(t, err)

	assert.Equal(t, "r-prod", out.RuleID)
	assert.True(t, out.Percent.Equal(dec("35")))
	require.NotNil(t, out.SuggestedPrice)
	assert.True(t, out.SuggestedPrice.Equal(dec("13.5")), "10 * 1.35, obtenido %s", out.SuggestedPrice)
}

func TestEffectiveMargin_CaeEnReglaDeCategoria(t *testing.T) {
	repo := newFakeMarginRepo(
		&entity.MarginRule{ID: "r-cat", CategoryID: marginCategoryID, Percent: dec("20"), Active: true},
	)
	uc := usecase.NewMarginUseCase(repo, newFakeProductRepo(marginProduct()))

	out, err := uc.EffectiveMarginForProduct(marginProductID)
	require.NoError(t, err)
	assert.Equal(t, "r-cat", out.RuleID)
	assert.True(t, out.Percent.Equal(dec("20")))
}

// Sin reglas aplicables: porcentaje cero, precio sugerido = costo.
func TestEffectiveMargin_SinReglas(t *testing.T) {
	uc := usecase.NewMarginUseCase(newFakeMarginRepo(), newFakeProductRepo(marginProduct()))

	out, err := uc.EffectiveMarginForProduct(marginProductID)
	require.NoError(t, err)
	assert.Empty(t, out.RuleID)
	assert.True(t, out.Percent.IsZero())
	require.NotNil(t, out.SuggestedPrice)
	assert.True(t, out.SuggestedPrice.Equal(dec("10")))
}

// Las reglas inactivas no participan de la resolución.
func TestEffectiveMargin_IgnoraReglasInactivas(t *testing.T) {
	repo := newFakeMarginRepo(
		&entity.MarginRule{ID: "r-prod", ProductID: marginProductID, Percent: dec("35"), Active: false},
		&entity.MarginRule{ID: "r-cat", CategoryID: marginCategoryID, Percent: dec("20"), Active: true},
	)
	uc := usecase.NewMarginUseCase(repo, newFakeProductRepo(marginProduct()))

	out, err := uc.EffectiveMarginForProduct(marginProductID)
	require.NoError(t, err)
	assert.Equal(t, "r-cat", out.RuleID)
}

func TestEffectiveMargin_ProductoInexistente(t *testing.T) {
	uc := usecase.NewMarginUseCase(newFakeMarginRepo(), newFakeProductRepo())
	_, err := uc.EffectiveMarginForProduct("no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
