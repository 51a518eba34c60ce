package auth

import (
	"github.com/carson-networks/finance-server/internal/service"
)

const timestampLayout = "2006-01-02T15:04:05"

// User is the API response model for a user. The password hash is never
// serialized.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Email     string `json:"email" doc:"Email address"`
	FullName  string `json:"fullName" doc:"Display name"`
	CreatedAt string `json:"createdAt" doc:"Account creation timestamp"`
}

// AuthResponseBody is the token pair issued on register, login, and
// refresh.
type AuthResponseBody struct {
	Token        string `json:"token" doc:"Short-lived access token"`
	RefreshToken string `json:"refreshToken" doc:"Long-lived refresh token"`
	User         User   `json:"user" doc:"The authenticated user"`
}

func fromService(result *service.AuthResult) AuthResponseBody {
	return AuthResponseBody{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		User: User{
			ID:        result.User.ID.String(),
			Email:     result.User.Email,
			FullName:  result.User.FullName,
			CreatedAt: result.User.CreatedAt.Format(timestampLayout),
		},
	}
}
