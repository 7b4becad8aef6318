package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/customer"
	"vincula/internal/order"
	"vincula/internal/product"
	"vincula/internal/tenant"
)

func NewRouter(
	tenantModule *tenant.Module,
	productCtrl *product.Controller,
	customerCtrl *customer.Controller,
	orderCtrl *order.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/tenants/register", tenantModule.Controller.HandleRegister)
	r.Post("/tenants/login", tenantModule.Controller.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(tenantModule.Service, logger))

		r.Post("/tenants/logout", tenantModule.Controller.HandleLogout)

		r.Route("/products", func(r chi.Router) {
			r.Post("/", productCtrl.HandleCreate)
			r.Get("/", productCtrl.HandleList)
			r.Get("/{id}", productCtrl.HandleGet)
			r.Put("/{id}", productCtrl.HandleUpdate)
			r.Delete("/{id}", productCtrl.HandleDelete)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerCtrl.HandleCreate)
			r.Get("/", customerCtrl.HandleList)
			r.Get("/{id}", customerCtrl.HandleGet)
			r.Put("/{id}", customerCtrl.HandleUpdate)
			r.Delete("/{id}", customerCtrl.HandleDelete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.HandleCreate)
			r.Get("/", orderCtrl.HandleList)
			r.Get("/{id}", orderCtrl.HandleGet)
			r.Put("/{id}", orderCtrl.HandleUpdate)
			r.Put("/{id}/status", orderCtrl.HandleUpdateStatus)
			r.Delete("/{id}", orderCtrl.HandleDelete)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			traceID := uuid.New().String()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("traceId", traceID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
