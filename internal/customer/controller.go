package customer

import (
	"encoding/json"
	"net/http"
	"net/mail"
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

	var req CreateCustomerRequest
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
	if _, err := mail.ParseAddress(req.Email); err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
	}
	if len(details) > 0 {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("validation failed", details...))
		return
	}

	created, err := c.service.Create(r.Context(), tenantID, strings.TrimSpace(req.Name), strings.ToLower(strings.TrimSpace(req.Email)), req.Phone)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusCreated, "customer created", toDTO(*created))
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

	dtos := make([]CustomerDTO, 0, len(list))
	for _, cust := range list {
		dtos = append(dtos, toDTO(cust))
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "customers retrieved", dtos)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, customerID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	cust, err := c.service.Get(r.Context(), tenantID, customerID)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "customer retrieved", toDTO(*cust))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, customerID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
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
	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
		}
	}
	if len(details) > 0 {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("validation failed", details...))
		return
	}

	cust, err := c.service.Update(r.Context(), tenantID, customerID, req.Name, req.Email, req.Phone)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "customer updated", toDTO(*cust))
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, customerID, ok := c.scopedID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), tenantID, customerID); err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "customer deleted", nil)
}

func (c *Controller) scopedID(w http.ResponseWriter, r *http.Request) (tenantID, customerID uuid.UUID, ok bool) {
	tenantID, found := tenant.FromContext(r.Context())
	if !found {
		httpjson.WriteError(w, c.logger, apperrors.NewUnauthorizedError("missing tenant context"))
		return uuid.Nil, uuid.Nil, false
	}

	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewNotFoundError("customer not found"))
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, customerID, true
}
