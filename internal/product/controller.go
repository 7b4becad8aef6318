package product

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "vincula/internal/errors"
	"vincula/internal/httpjson"
	"vincula/internal/tenant"
)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, c.logger, apperrors.NewUnauthorizedError("missing tenant context"))
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if req.Price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must not be negative"})
	}
	if req.StockQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "stock_quantity", Message: "stock_quantity must not be negative"})
	}
	if len(details) > 0 {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("validation failed", details...))
		return
	}

	p, err := c.service.Create(r.Context(), tenantID, strings.TrimSpace(req.Name), req.Description, req.Price, req.StockQuantity)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusCreated, "product created", toDTO(*p))
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, c.logger, apperrors.NewUnauthorizedError("missing tenant context"))
		return
	}

	list, err := c.service.List(r.Context(), tenantID)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	dtos := make([]ProductDTO, 0, len(list))
	for _, p := range list {
		dtos = append(dtos, toDTO(p))
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "products retrieved", dtos)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, productID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	p, err := c.service.Get(r.Context(), tenantID, productID)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "product retrieved", toDTO(*p))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, productID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	var details []apperrors.ValidationDetail
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name must not be empty"})
	}
	if req.Price != nil && req.Price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must not be negative"})
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "stock_quantity", Message: "stock_quantity must not be negative"})
	}
	if len(details) > 0 {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("validation failed", details...))
		return
	}

	p, err := c.service.Update(r.Context(), tenantID, productID, req.Name, req.Description, req.Price, req.StockQuantity)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "product updated", toDTO(*p))
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, productID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), tenantID, productID); err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "product deleted", nil)
}

func (c *Controller) scopedID(w http.ResponseWriter, r *http.Request) (tenantID, productID uuid.UUID, ok bool) {
	tenantID, found := tenant.FromContext(r.Context())
	if !found {
		httpjson.WriteError(w, c.logger, apperrors.NewUnauthorizedError("missing tenant context"))
		return uuid.Nil, uuid.Nil, false
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewNotFoundError("product not found"))
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, productID, true
}
