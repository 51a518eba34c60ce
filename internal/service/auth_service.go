package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// User represents a user in the service layer. The password hash never
// leaves the storage row.
type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	CreatedAt time.Time
}

// AuthResult is a fresh token pair plus the user it belongs to.
type AuthResult struct {
	Token        string
	RefreshToken string
	User         User
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	store     Store
	processor Processor
	tokens    *auth.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store Store, processor Processor, tokens *auth.Manager) *AuthService {
	return &AuthService{store: store, processor: processor, tokens: tokens}
}

// Register validates the input, creates the user, and returns a token
// pair. A duplicate email fails with a conflict.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, apperr.New(apperr.KindInvalidArgument, "Invalid email format")
	}
	if len(password) < 8 {
		return nil, apperr.New(apperr.KindInvalidArgument, "Password must be at least 8 characters")
	}
	if len(strings.TrimSpace(fullName)) < 2 {
		return nil, apperr.New(apperr.KindInvalidArgument, "Name must be at least 2 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	action := &actions.RegisterUser{
		Create: &user.UserCreate{
			Email:        email,
			PasswordHash: hash,
			FullName:     fullName,
		},
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	return s.issueTokens(action.Created)
}

// Login verifies the credentials and returns a token pair. Unknown
// email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	row, err := reader.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if row == nil || !auth.VerifyPassword(password, row.PasswordHash) {
		return nil, apperr.New(apperr.KindUnauthenticated, "Invalid email or password")
	}

	return s.issueTokens(row)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	row, err := reader.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "Invalid refresh token")
	}

	return s.issueTokens(row)
}

func (s *AuthService) issueTokens(row *user.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(row.ID, row.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(row.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:        token,
		RefreshToken: refreshToken,
		User: User{
			ID:        row.ID,
			Email:     row.Email,
			FullName:  row.FullName,
			CreatedAt: row.CreatedAt,
		},
	}, nil
}
