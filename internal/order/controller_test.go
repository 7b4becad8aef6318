package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/domain"
	"vincula/internal/httpjson"
	"vincula/internal/infrastructure/mysql"
	"vincula/internal/tenant"
)

func newTestRouter(svc *Service, tenantID uuid.UUID) http.Handler {
	ctrl := NewController(svc, zap.NewNop())

	r := chi.NewRouter()
	// Stands in for the auth middleware: the session was already resolved.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(tenant.NewContext(req.Context(), tenantID)))
		})
	})
	r.Post("/orders", ctrl.HandleCreate)
	r.Get("/orders/{id}", ctrl.HandleGet)
	r.Put("/orders/{id}", ctrl.HandleUpdate)
	r.Put("/orders/{id}/status", ctrl.HandleUpdateStatus)
	r.Delete("/orders/{id}", ctrl.HandleDelete)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, httpjson.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env httpjson.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return rec, env
}

func TestHandleCreate_Created(t *testing.T) {
	tenantID := uuid.New()
	ledger := &fakeLedger{product: &domain.Product{
		ID: uuid.New(), TenantID: tenantID, Price: price("50"), StockQuantity: 10,
	}}
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, tx mysql.Tx, o domain.Order) error { return nil },
	}
	svc := newTestService(&fakeTxManager{}, repo, nil, ledger, testConfig())

	body := `{"product_id":"` + ledger.product.ID.String() + `","customer_id":"` + uuid.New().String() + `","quantity":3}`
	rec, env := doJSON(t, newTestRouter(svc, tenantID), http.MethodPost, "/orders", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if !env.Success {
		t.Error("success = false")
	}

	data, _ := env.Data.(map[string]any)
	if data["total_price"] != "150.00" {
		t.Errorf("total_price = %v, want 150.00", data["total_price"])
	}
	if data["status"] != "pending" {
		t.Errorf("status = %v, want pending", data["status"])
	}
}

func TestHandleCreate_InsufficientStockIs422(t *testing.T) {
	tenantID := uuid.New()
	ledger := &fakeLedger{product: &domain.Product{
		ID: uuid.New(), TenantID: tenantID, Price: price("50"), StockQuantity: 1,
	}}
	svc := newTestService(&fakeTxManager{}, &mockRepository{}, nil, ledger, testConfig())

	body := `{"product_id":"` + ledger.product.ID.String() + `","customer_id":"` + uuid.New().String() + `","quantity":5}`
	rec, env := doJSON(t, newTestRouter(svc, tenantID), http.MethodPost, "/orders", body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if env.Success {
		t.Error("success = true on stock failure")
	}
}

func TestHandleCreate_MalformedBody(t *testing.T) {
	svc := newTestService(&fakeTxManager{}, &mockRepository{}, nil, &fakeLedger{}, testConfig())

	rec, _ := doJSON(t, newTestRouter(svc, uuid.New()), http.MethodPost, "/orders", `{"quantity": "three"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestHandleUpdate_ShippedOrderIs403(t *testing.T) {
	tenantID := uuid.New()
	repo := &mockRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx mysql.Tx, id, tid uuid.UUID) (*domain.Order, error) {
			return &domain.Order{ID: id, TenantID: tid, Status: domain.OrderStatusShipped, Quantity: 2}, nil
		},
	}
	svc := newTestService(&fakeTxManager{}, repo, nil, &fakeLedger{}, testConfig())

	rec, env := doJSON(t, newTestRouter(svc, tenantID), http.MethodPut, "/orders/"+uuid.New().String(), `{"quantity":4}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(env.Message, "no longer be modified") {
		t.Errorf("message = %q", env.Message)
	}
}

func TestHandleUpdateStatus_ReturnsIDAndStatus(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()
	repo := &mockRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx mysql.Tx, id, tid uuid.UUID) (*domain.Order, error) {
			return &domain.Order{ID: id, TenantID: tid, Status: domain.OrderStatusPending, Quantity: 1}, nil
		},
		UpdateFunc: func(ctx context.Context, tx mysql.Tx, o domain.Order) error { return nil },
	}
	svc := newTestService(&fakeTxManager{}, repo, nil, &fakeLedger{}, testConfig())

	rec, env := doJSON(t, newTestRouter(svc, tenantID), http.MethodPut, "/orders/"+orderID.String()+"/status", `{"status":"processed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, _ := env.Data.(map[string]any)
	if data["id"] != orderID.String() || data["status"] != "processed" {
		t.Errorf("data = %v", data)
	}
}

func TestHandleGet_BadIDIs404(t *testing.T) {
	svc := newTestService(&fakeTxManager{}, &mockRepository{}, nil, &fakeLedger{}, testConfig())

	rec, _ := doJSON(t, newTestRouter(svc, uuid.New()), http.MethodGet, "/orders/not-a-uuid", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
