package repository

import (
	"context"

	"blog-api/internal/domain"
)

// UserRepository defines persistence operations for User entities.
//
// Create inserts the user and its role set in one transaction; the first user
// ever stored receives the admin role in addition to the default role. Username
// and email carry uniqueness constraints.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	SetRoles(ctx context.Context, userID int64, roles []domain.Role) error
}
