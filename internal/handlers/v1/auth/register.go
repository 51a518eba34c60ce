package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

// RegisterBody is the request body for registration.
type RegisterBody struct {
	Email    string `json:"email" required:"true" doc:"Email address"`
	Password string `json:"password" required:"true" doc:"Password, at least 8 characters"`
	FullName string `json:"fullName" required:"true" doc:"Display name, at least 2 characters"`
}

// RegisterInput is the Huma input for registration.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterOutput is the Huma output for registration.
type RegisterOutput struct {
	Body AuthResponseBody
}

// registrar is the interface for registering users.
type registrar interface {
	Register(ctx context.Context, email, password, fullName string) (*service.AuthResult, error)
}

// RegisterHandler handles POST /auth/register.
type RegisterHandler struct {
	AuthService registrar
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc registrar) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

// Register registers the registration endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Register",
		Description:   "Creates a user account and returns a token pair.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	email := strings.TrimSpace(input.Body.Email)
	fullName := strings.TrimSpace(input.Body.FullName)
	if email == "" || input.Body.Password == "" || fullName == "" {
		return nil, huma.Error400BadRequest("Email, password, and full name are required")
	}

	result, err := h.AuthService.Register(ctx, strings.ToLower(email), input.Body.Password, fullName)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &RegisterOutput{Body: fromService(result)}, nil
}
