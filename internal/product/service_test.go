package product

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vincula/internal/domain"
	apperrors "vincula/internal/errors"
	"vincula/internal/infrastructure/mysql"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	panic("not used")
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	panic("not used")
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	panic("not used")
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeTxManager struct {
	txs []*fakeTx
}

func (m *fakeTxManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error) {
	tx := &fakeTx{}
	m.txs = append(m.txs, tx)
	return tx, nil
}

type mockRepository struct {
	InsertFunc        func(ctx context.Context, p domain.Product) error
	FindByIDFunc      func(ctx context.Context, id, tenantID uuid.UUID) (*domain.Product, error)
	ListByTenantFunc  func(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error)
	UpdateDetailsFunc func(ctx context.Context, tx mysql.Tx, p domain.Product) error
	DeleteFunc        func(ctx context.Context, id, tenantID uuid.UUID) error
}

func (m *mockRepository) Insert(ctx context.Context, p domain.Product) error {
	return m.InsertFunc(ctx, p)
}

func (m *mockRepository) FindByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id, tenantID)
}

func (m *mockRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error) {
	return m.ListByTenantFunc(ctx, tenantID)
}

func (m *mockRepository) UpdateDetails(ctx context.Context, tx mysql.Tx, p domain.Product) error {
	return m.UpdateDetailsFunc(ctx, tx, p)
}

func (m *mockRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	return m.DeleteFunc(ctx, id, tenantID)
}

type mockStockWriter struct {
	LockFunc     func(ctx context.Context, tx mysql.Tx, productID, tenantID uuid.UUID) (*domain.Product, error)
	SetStockFunc func(ctx context.Context, tx mysql.Tx, p *domain.Product, quantity int) error
}

func (m *mockStockWriter) Lock(ctx context.Context, tx mysql.Tx, productID, tenantID uuid.UUID) (*domain.Product, error) {
	return m.LockFunc(ctx, tx, productID, tenantID)
}

func (m *mockStockWriter) SetStock(ctx context.Context, tx mysql.Tx, p *domain.Product, quantity int) error {
	return m.SetStockFunc(ctx, tx, p, quantity)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreate_FillsIdentityAndTimestamps(t *testing.T) {
	tenantID := uuid.New()
	var inserted domain.Product
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, p domain.Product) error {
			inserted = p
			return nil
		},
	}
	svc := NewService(&fakeTxManager{}, repo, &mockStockWriter{}, zap.NewNop())

	p, err := svc.Create(context.Background(), tenantID, "Widget", "a widget", decimal.RequireFromString("9.99"), 25)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("product id is nil")
	}
	if inserted.TenantID != tenantID {
		t.Errorf("tenant id = %s, want %s", inserted.TenantID, tenantID)
	}
	if inserted.StockQuantity != 25 {
		t.Errorf("stock = %d, want 25", inserted.StockQuantity)
	}
	if inserted.CreatedAt.IsZero() || inserted.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestUpdate_EditsFieldsUnderRowLock(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	stock := &mockStockWriter{
		LockFunc: func(ctx context.Context, tx mysql.Tx, id, tid uuid.UUID) (*domain.Product, error) {
			return &domain.Product{
				ID: id, TenantID: tid,
				Name:          "Old",
				Price:         decimal.RequireFromString("5"),
				StockQuantity: 3,
			}, nil
		},
	}
	var updated domain.Product
	repo := &mockRepository{
		UpdateDetailsFunc: func(ctx context.Context, tx mysql.Tx, p domain.Product) error {
			updated = p
			return nil
		},
	}
	txm := &fakeTxManager{}
	svc := NewService(txm, repo, stock, zap.NewNop())

	newPrice := decimal.RequireFromString("7.50")
	p, err := svc.Update(context.Background(), tenantID, productID, strPtr("New"), nil, &newPrice, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if p.Name != "New" {
		t.Errorf("name = %q, want New", p.Name)
	}
	if !updated.Price.Equal(newPrice) {
		t.Errorf("price = %s, want 7.50", updated.Price)
	}
	if updated.StockQuantity != 3 {
		t.Errorf("stock changed to %d without a stock edit", updated.StockQuantity)
	}
	if len(txm.txs) != 1 || !txm.txs[0].committed {
		t.Error("transaction not committed")
	}
}

func TestUpdate_StockEditGoesThroughLedger(t *testing.T) {
	tenantID := uuid.New()
	setCalls := 0
	stock := &mockStockWriter{
		LockFunc: func(ctx context.Context, tx mysql.Tx, id, tid uuid.UUID) (*domain.Product, error) {
			return &domain.Product{ID: id, TenantID: tid, StockQuantity: 3}, nil
		},
		SetStockFunc: func(ctx context.Context, tx mysql.Tx, p *domain.Product, quantity int) error {
			setCalls++
			if quantity != 12 {
				t.Errorf("quantity = %d, want 12", quantity)
			}
			p.StockQuantity = quantity
			return nil
		},
	}
	repo := &mockRepository{
		UpdateDetailsFunc: func(ctx context.Context, tx mysql.Tx, p domain.Product) error { return nil },
	}
	svc := NewService(&fakeTxManager{}, repo, stock, zap.NewNop())

	p, err := svc.Update(context.Background(), tenantID, uuid.New(), nil, nil, nil, intPtr(12))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if setCalls != 1 {
		t.Errorf("SetStock called %d times, want 1", setCalls)
	}
	if p.StockQuantity != 12 {
		t.Errorf("stock = %d, want 12", p.StockQuantity)
	}
}

func TestUpdate_UnknownProductRollsBack(t *testing.T) {
	stock := &mockStockWriter{
		LockFunc: func(ctx context.Context, tx mysql.Tx, id, tid uuid.UUID) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product not found")
		},
	}
	txm := &fakeTxManager{}
	svc := NewService(txm, &mockRepository{}, stock, zap.NewNop())

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), strPtr("x"), nil, nil, nil)
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(txm.txs) != 1 || !txm.txs[0].rolledBack {
		t.Error("transaction not rolled back")
	}
}
