package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/domain"
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

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	var details []apperrors.ValidationDetail
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "product_id", Message: "product_id must be a valid uuid"})
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "customer_id", Message: "customer_id must be a valid uuid"})
	}
	if req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if len(details) > 0 {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("validation failed", details...))
		return
	}

	o, err := c.service.Create(r.Context(), tenantID, productID, customerID, req.Quantity)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusCreated, "order created", toDTO(*o))
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

	dtos := make([]OrderDTO, 0, len(list))
	for _, o := range list {
		dtos = append(dtos, toDTO(o))
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "orders retrieved", dtos)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, orderID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	o, err := c.service.Get(r.Context(), tenantID, orderID)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "order retrieved", toDTO(*o))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, orderID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	var newStatus *domain.OrderStatus
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		newStatus = &s
	}

	o, err := c.service.Update(r.Context(), tenantID, orderID, req.Quantity, newStatus)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "order updated", toDTO(*o))
}

func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, orderID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	o, err := c.service.UpdateStatus(r.Context(), tenantID, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "order status updated", StatusDTO{
		ID:     o.ID.String(),
		Status: string(o.Status),
	})
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, orderID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), tenantID, orderID); err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "order deleted", nil)
}

// scopedID pulls the tenant id from the request context and the order id
// from the path, writing the error response itself on failure.
func (c *Controller) scopedID(w http.ResponseWriter, r *http.Request) (tenantID, orderID uuid.UUID, ok bool) {
	tenantID, found := tenant.FromContext(r.Context())
	if !found {
		httpjson.WriteError(w, c.logger, apperrors.NewUnauthorizedError("missing tenant context"))
		return uuid.Nil, uuid.Nil, false
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewNotFoundError("order not found"))
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, orderID, true
}
