package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, email, password, fullName string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password, fullName)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockAuthService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewRegisterHandler(svc).Register(api)
	NewLoginHandler(svc).Register(api)
	NewRefreshHandler(svc).Register(api)
	return api
}

func makeAuthResult(email string) *service.AuthResult {
	return &service.AuthResult{
		Token:        "access-token",
		RefreshToken: "refresh-token",
		User: service.User{
			ID:        uuid.Must(uuid.NewV4()),
			Email:     email,
			FullName:  "Jamie Doe",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestHTTP_Register_Success(t *testing.T) {
	result := makeAuthResult("jamie@example.com")

	mockSvc := new(mockAuthService)
	mockSvc.On("Register", mock.Anything, "jamie@example.com", "hunter2secret", "Jamie Doe").
		Return(result, nil)

	// Email casing and padding are normalized before the service sees them.
	resp := newTestAPI(t, mockSvc).Post("/auth/register", RegisterBody{
		Email:    "  Jamie@Example.com ",
		Password: "hunter2secret",
		FullName: "Jamie Doe",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body AuthResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "access-token", body.Token)
	assert.Equal(t, "refresh-token", body.RefreshToken)
	assert.Equal(t, result.User.ID.String(), body.User.ID)
	assert.Equal(t, "2025-06-01T12:00:00", body.User.CreatedAt)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Register_BlankFields(t *testing.T) {
	mockSvc := new(mockAuthService)

	resp := newTestAPI(t, mockSvc).Post("/auth/register", RegisterBody{
		Email:    "   ",
		Password: "hunter2secret",
		FullName: "Jamie Doe",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email, password, and full name are required")
	mockSvc.AssertNotCalled(t, "Register")
}

func TestHTTP_Register_DuplicateEmail(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Register", mock.Anything, "jamie@example.com", "hunter2secret", "Jamie Doe").
		Return((*service.AuthResult)(nil), apperr.New(apperr.KindConflict, "Email already registered"))

	resp := newTestAPI(t, mockSvc).Post("/auth/register", RegisterBody{
		Email:    "jamie@example.com",
		Password: "hunter2secret",
		FullName: "Jamie Doe",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email already registered")
}

func TestHTTP_Login_Success(t *testing.T) {
	result := makeAuthResult("jamie@example.com")

	mockSvc := new(mockAuthService)
	mockSvc.On("Login", mock.Anything, "jamie@example.com", "hunter2secret").
		Return(result, nil)

	resp := newTestAPI(t, mockSvc).Post("/auth/login", LoginBody{
		Email:    "Jamie@example.com",
		Password: "hunter2secret",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body AuthResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "jamie@example.com", body.User.Email)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Login_BlankFields(t *testing.T) {
	mockSvc := new(mockAuthService)

	resp := newTestAPI(t, mockSvc).Post("/auth/login", LoginBody{
		Email:    "jamie@example.com",
		Password: "",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email and password are required")
	mockSvc.AssertNotCalled(t, "Login")
}

func TestHTTP_Login_BadCredentials(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Login", mock.Anything, "jamie@example.com", "wrong-password").
		Return((*service.AuthResult)(nil), apperr.New(apperr.KindUnauthenticated, "Invalid email or password"))

	resp := newTestAPI(t, mockSvc).Post("/auth/login", LoginBody{
		Email:    "jamie@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid email or password")
}

func TestHTTP_Refresh_Success(t *testing.T) {
	result := makeAuthResult("jamie@example.com")

	mockSvc := new(mockAuthService)
	mockSvc.On("Refresh", mock.Anything, "some-refresh-token").Return(result, nil)

	resp := newTestAPI(t, mockSvc).Post("/auth/refresh", RefreshBody{
		RefreshToken: "some-refresh-token",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body AuthResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "access-token", body.Token)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Refresh_BlankToken(t *testing.T) {
	mockSvc := new(mockAuthService)

	resp := newTestAPI(t, mockSvc).Post("/auth/refresh", map[string]any{"refreshToken": ""})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Refresh")
}

func TestHTTP_Refresh_InvalidToken(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Refresh", mock.Anything, "expired").
		Return((*service.AuthResult)(nil), apperr.New(apperr.KindUnauthenticated, "Invalid refresh token"))

	resp := newTestAPI(t, mockSvc).Post("/auth/refresh", RefreshBody{RefreshToken: "expired"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid refresh token")
}
