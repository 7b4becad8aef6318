package inventory

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/domain"
	apperrors "vincula/internal/errors"
)

// fakeTx satisfies mysql.Tx for the Exec-only paths; Reserve/Release never
// query rows once the product is in hand.
type fakeTx struct {
	ExecFunc func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return f.ExecFunc(ctx, query, args...)
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	panic("not used")
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	panic("not used")
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

type fakeResult struct {
	affected int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, nil }

func testProduct(stock int) *domain.Product {
	return &domain.Product{
		ID:            uuid.New(),
		TenantID:      uuid.New(),
		StockQuantity: stock,
	}
}

func TestReserve_DecrementsStock(t *testing.T) {
	executed := false
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			executed = true
			return fakeResult{affected: 1}, nil
		},
	}

	p := testProduct(10)
	ledger := NewLedger(zap.NewNop())

	if err := ledger.Reserve(context.Background(), tx, p, 3); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if !executed {
		t.Fatal("expected an UPDATE to be issued")
	}
	if p.StockQuantity != 7 {
		t.Errorf("stock = %d, want 7", p.StockQuantity)
	}
}

func TestReserve_InsufficientStock(t *testing.T) {
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			t.Fatal("no UPDATE may be issued when the precondition fails")
			return nil, nil
		},
	}

	p := testProduct(2)
	ledger := NewLedger(zap.NewNop())

	err := ledger.Reserve(context.Background(), tx, p, 3)
	ise, ok := apperrors.IsInsufficientStockError(err)
	if !ok {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if ise.Requested != 3 || ise.Available != 2 {
		t.Errorf("requested=%d available=%d, want 3/2", ise.Requested, ise.Available)
	}
	if p.StockQuantity != 2 {
		t.Errorf("stock changed to %d on failed reserve", p.StockQuantity)
	}
}

func TestReserve_NonPositiveAmount(t *testing.T) {
	ledger := NewLedger(zap.NewNop())
	for _, amount := range []int{0, -5} {
		err := ledger.Reserve(context.Background(), &fakeTx{}, testProduct(10), amount)
		if _, ok := apperrors.IsValidationError(err); !ok {
			t.Errorf("Reserve(%d): expected validation error, got %v", amount, err)
		}
	}
}

func TestReserve_StaleSnapshotCaughtBySQLGuard(t *testing.T) {
	// The row's real stock dropped after the in-memory snapshot was taken;
	// the WHERE guard makes the UPDATE touch zero rows.
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return fakeResult{affected: 0}, nil
		},
	}

	p := testProduct(5)
	ledger := NewLedger(zap.NewNop())

	err := ledger.Reserve(context.Background(), tx, p, 5)
	if _, ok := apperrors.IsInsufficientStockError(err); !ok {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if p.StockQuantity != 5 {
		t.Errorf("stock changed to %d on failed reserve", p.StockQuantity)
	}
}

func TestRelease_IncrementsStock(t *testing.T) {
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return fakeResult{affected: 1}, nil
		},
	}

	p := testProduct(5)
	ledger := NewLedger(zap.NewNop())

	if err := ledger.Release(context.Background(), tx, p, 4); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if p.StockQuantity != 9 {
		t.Errorf("stock = %d, want 9", p.StockQuantity)
	}
}

func TestRelease_ZeroIsNoOp(t *testing.T) {
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			t.Fatal("zero release must not touch the database")
			return nil, nil
		},
	}

	p := testProduct(5)
	if err := NewLedger(zap.NewNop()).Release(context.Background(), tx, p, 0); err != nil {
		t.Fatalf("Release(0): %v", err)
	}
	if p.StockQuantity != 5 {
		t.Errorf("stock = %d, want 5", p.StockQuantity)
	}
}

func TestRelease_NegativeAmount(t *testing.T) {
	err := NewLedger(zap.NewNop()).Release(context.Background(), &fakeTx{}, testProduct(5), -1)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdjust(t *testing.T) {
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return fakeResult{affected: 1}, nil
		},
	}
	ledger := NewLedger(zap.NewNop())

	p := testProduct(10)
	if err := ledger.Adjust(context.Background(), tx, p, 4); err != nil {
		t.Fatalf("Adjust(+4): %v", err)
	}
	if p.StockQuantity != 6 {
		t.Errorf("stock after +4 = %d, want 6", p.StockQuantity)
	}

	if err := ledger.Adjust(context.Background(), tx, p, -2); err != nil {
		t.Fatalf("Adjust(-2): %v", err)
	}
	if p.StockQuantity != 8 {
		t.Errorf("stock after -2 = %d, want 8", p.StockQuantity)
	}

	if err := ledger.Adjust(context.Background(), tx, p, 0); err != nil {
		t.Fatalf("Adjust(0): %v", err)
	}
	if p.StockQuantity != 8 {
		t.Errorf("stock after 0 = %d, want 8", p.StockQuantity)
	}
}

func TestSetStock(t *testing.T) {
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return fakeResult{affected: 1}, nil
		},
	}

	p := testProduct(5)
	ledger := NewLedger(zap.NewNop())

	if err := ledger.SetStock(context.Background(), tx, p, 40); err != nil {
		t.Fatalf("SetStock: %v", err)
	}
	if p.StockQuantity != 40 {
		t.Errorf("stock = %d, want 40", p.StockQuantity)
	}

	err := ledger.SetStock(context.Background(), tx, p, -1)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected validation error for negative stock, got %v", err)
	}
}

func TestSetStock_SameValueIsNotAMiss(t *testing.T) {
	// MySQL reports changed rows, so rewriting the current value touches
	// zero rows even though the row exists.
	tx := &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return fakeResult{affected: 0}, nil
		},
	}

	p := testProduct(5)
	if err := NewLedger(zap.NewNop()).SetStock(context.Background(), tx, p, 5); err != nil {
		t.Fatalf("SetStock with unchanged value: %v", err)
	}
	if p.StockQuantity != 5 {
		t.Errorf("stock = %d, want 5", p.StockQuantity)
	}
}

func TestAdjust_RejectsOverReservation(t *testing.T) {
	p := testProduct(3)
	err := NewLedger(zap.NewNop()).Adjust(context.Background(), &fakeTx{
		ExecFunc: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			t.Fatal("no UPDATE may be issued")
			return nil, nil
		},
	}, p, 4)

	if _, ok := apperrors.IsInsufficientStockError(err); !ok {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
}
