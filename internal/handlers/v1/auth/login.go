package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

// LoginBody is the request body for login.
type LoginBody struct {
	Email    string `json:"email" required:"true" doc:"Email address"`
	Password string `json:"password" required:"true" doc:"Password"`
}

// LoginInput is the Huma input for login.
type LoginInput struct {
	Body LoginBody
}

// LoginOutput is the Huma output for login.
type LoginOutput struct {
	Body AuthResponseBody
}

// authenticator is the interface for logging users in.
type authenticator interface {
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// LoginHandler handles POST /auth/login.
type LoginHandler struct {
	AuthService authenticator
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(svc authenticator) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

// Register registers the login endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and returns a token pair.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.TrimSpace(input.Body.Email)
	if email == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Email and password are required")
	}

	result, err := h.AuthService.Login(ctx, strings.ToLower(email), input.Body.Password)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &LoginOutput{Body: fromService(result)}, nil
}
