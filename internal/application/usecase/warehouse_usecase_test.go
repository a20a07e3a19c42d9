package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/application/usecase"
	"github.com/mercafresh/backoffice-api/internal/domain"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
)

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func newFakeWarehouseRepo(whs ...*entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{byID: make(map[string]*entity.Warehouse)}
	for _, w := range whs {
		cp := *w
		r.byID[w.ID] = &cp
	}
	return r
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) GetDefault() (*entity.Warehouse, error) {
	for _, w := range r.byID {
		if w.IsDefault {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) List(limit, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.byID {
		if len(out) == limit {
			break
		}
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla de bodega predeterminada
// ──────────────────────────────────────────────────────────────────────────────

// La primera bodega creada es predeterminada aunque no se pida.
func TestWarehouseCreate_PrimeraEsPredeterminada(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())

	out, err := uc.Create(dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	assert.True(t, out.IsDefault)
	assert.True(t, out.Active)
}

// Marcar una nueva bodega como predeterminada desmarca la anterior.
func TestWarehouseCreate_NuevaPredeterminadaDesmarcaAnterior(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)

	first, err := uc.Create(dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	second, err := uc.Create(dto.CreateWarehouseRequest{Name: "Norte", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	got, err := repo.GetByID(first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault, "la anterior predeterminada debe desmarcarse")
}

// Una segunda bodega sin pedir predeterminada no roba la marca.
func TestWarehouseCreate_SegundaNoEsPredeterminada(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())

	_, err := uc.Create(dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	second, err := uc.Create(dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestWarehouseUpdate_NoPermiteDesmarcarPredeterminada(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	out, err := uc.Create(dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	no := false
	_, err = uc.Update(out.ID, dto.UpdateWarehouseRequest{IsDefault: &no})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput),
		"siempre debe existir una bodega predeterminada")
}

func TestWarehouseUpdate_NoPermiteDesactivarPredeterminada(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	out, err := uc.Create(dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	inactive := false
	_, err = uc.Update(out.ID, dto.UpdateWarehouseRequest{Active: &inactive})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWarehouseUpdate_CambiaPredeterminada(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)

	first, err := uc.Create(dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	second, err := uc.Create(dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)

	yes := true
	out, err := uc.Update(second.ID, dto.UpdateWarehouseRequest{IsDefault: &yes})
	require.NoError(t, err)
	assert.True(t, out.IsDefault)

	got, _ := repo.GetByID(first.ID)
	assert.False(t, got.IsDefault)
}

func TestWarehouseUpdate_NoEncontrada(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	name := "X"
	_, err := uc.Update("no-existe", dto.UpdateWarehouseRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestWarehouseCreate_NombreRequerido(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	_, err := uc.Create(dto.CreateWarehouseRequest{})
	assert.Error(t, err)
}
