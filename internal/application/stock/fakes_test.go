package stock_test

// Dobles en memoria de los puertos de persistencia del subsistema de inventario.
// El TxRunner falso no simula aislamiento: pasa los mismos repositorios al callback,
// suficiente para verificar la orquestación de los casos de uso.

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mercafresh/backoffice-api/internal/application/dto"
	"github.com/mercafresh/backoffice-api/internal/domain/entity"
	"github.com/mercafresh/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeInventoryRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	byID        map[string]*entity.Inventory
	summaryRows []repository.InventorySummaryRow
	belowRows   []repository.ReplenishmentItem
}

func newFakeInventoryRepo(invs ...*entity.Inventory) *fakeInventoryRepo {
	r := &fakeInventoryRepo{byID: make(map[string]*entity.Inventory)}
	for _, inv := range invs {
		cp := *inv
		r.byID[inv.ID] = &cp
	}
	return r
}

func (r *fakeInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeInventoryRepo) GetByProductAndWarehouse(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	for _, inv := range r.byID {
		if inv.ProductID == productID && inv.WarehouseID == warehouseID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) GetByProductAndWarehouseForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return r.GetByProductAndWarehouse(ctx, productID, warehouseID)
}

func (r *fakeInventoryRepo) Update(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) ListByWarehouse(_ context.Context, warehouseID string, _, _ int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.byID {
		if inv.WarehouseID == warehouseID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) Summary(_ context.Context) ([]repository.InventorySummaryRow, error) {
	return r.summaryRows, nil
}

func (r *fakeInventoryRepo) BelowReorder(_ context.Context, warehouseID string) ([]repository.ReplenishmentItem, error) {
	if warehouseID == "" {
		return r.belowRows, nil
	}
	var out []repository.ReplenishmentItem
	for _, it := range r.belowRows {
		if it.WarehouseID == warehouseID {
			out = append(out, it)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeMovementRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	byID        map[string]*entity.StockMovement
	byReference map[string]string // reference -> id, para simular unicidad
	created     []*entity.StockMovement
	createErrs  []error // errores a devolver en las próximas llamadas a Create
}

func newFakeMovementRepo(movs ...*entity.StockMovement) *fakeMovementRepo {
	r := &fakeMovementRepo{
		byID:        make(map[string]*entity.StockMovement),
		byReference: make(map[string]string),
	}
	for _, m := range movs {
		cp := *m
		r.byID[m.ID] = &cp
		r.byReference[m.Reference] = m.ID
	}
	return r
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *m
	r.byID[m.ID] = &cp
	r.byReference[m.Reference] = m.ID
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovementRepo) Update(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.byID[m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.byID {
		if len(out) == limit {
			break
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByInventory(_ context.Context, inventoryID string, limit, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.byID {
		if m.InventoryID == inventoryID && len(out) < limit {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) LatestReferenceByPrefix(_ context.Context, prefix string) (string, error) {
	latest := ""
	for ref := range r.byReference {
		if len(ref) >= len(prefix) && ref[:len(prefix)] == prefix && ref > latest {
			latest = ref
		}
	}
	return latest, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeProductRepo / fakeWarehouseRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID        map[string]*entity.Product
	costUpdates map[string]decimal.Decimal
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		byID:        make(map[string]*entity.Product),
		costUpdates: make(map[string]decimal.Decimal),
	}
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
	r.costUpdates[id] = cost
	if p, ok := r.byID[id]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *fakeProductRepo) List(_, _ int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListByCategory(_ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Deactivate(_ string) error { return nil }

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

func (r *fakeWarehouseRepo) List(_, _ int) ([]*entity.Warehouse, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// fakeTxRunner / fakePDFGenerator
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	invRepo     *fakeInventoryRepo
	productRepo *fakeProductRepo
	runs        int
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx.runs++
	return fn(tx.movRepo, tx.invRepo, tx.productRepo)
}

type fakePDFGenerator struct {
	calls int
}

func (g *fakePDFGenerator) GenerateSummaryPDF(_ context.Context, _ []dto.InventorySummaryRow, _ time.Time) ([]byte, error) {
	g.calls++
	return []byte("%PDF-1.4 fake"), nil
}
