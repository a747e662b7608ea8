package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Upsert inserts the user or refreshes email, role and activity on conflict
	Upsert(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}
