package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a user record.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Email        string
	PasswordHash string
	FullName     string
}

// IReader defines read operations on the users table.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// IWriter defines write operations on the users table.
type IWriter interface {
	IReader
	Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error)
}
