package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/user-lifecycle-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the given id or email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert or update violates the
	// email uniqueness constraint at the storage boundary.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the durable storage capability consumed by the
// lifecycle service. The store assigns the identifier on Create and must
// enforce email uniqueness across active and inactive records.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAllActive(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
