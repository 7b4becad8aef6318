package tenant

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	apperrors "vincula/internal/errors"
	"vincula/internal/httpjson"
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

func (c *Controller) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if err := validateRegisterRequest(req); err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	t, err := c.service.Register(r.Context(), strings.TrimSpace(req.Name), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusCreated, "tenant registered", TenantDTO{
		ID:        t.ID.String(),
		Name:      t.Name,
		Email:     t.Email,
		CreatedAt: t.CreatedAt,
	})
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if req.Email == "" || req.Password == "" {
		httpjson.WriteError(w, c.logger, apperrors.NewValidationError("validation failed",
			apperrors.ValidationDetail{Field: "email", Message: "email is required"},
			apperrors.ValidationDetail{Field: "password", Message: "password is required"},
		))
		return
	}

	token, err := c.service.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "login successful", LoginResponse{Token: token})
}

func (c *Controller) HandleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")

	if err := c.service.Logout(r.Context(), token); err != nil {
		httpjson.WriteError(w, c.logger, err)
		return
	}

	httpjson.WriteSuccess(w, c.logger, http.StatusOK, "logged out", nil)
}

func validateRegisterRequest(req RegisterRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if len(req.Password) < 8 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
