// Package repository defines the persistence interfaces the application layer
// depends on. List operations take a query.Spec and return projected rows plus
// the total match count for pagination.
package repository

import (
	"context"
	"time"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/query"
)

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken resolves a user by hashed reset token, rejecting
	// tokens that expired before now.
	GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec query.Spec) ([]map[string]any, int, error)
}

type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	// OwnerHasBootcamp backs the one-published-bootcamp-per-owner check.
	OwnerHasBootcamp(ctx context.Context, userID string) (bool, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	// Delete removes the bootcamp and all its courses in one transaction.
	Delete(ctx context.Context, id string) error
	// List returns one projected page; withCourses expands each row with its
	// courses.
	List(ctx context.Context, spec query.Spec, withCourses bool) ([]map[string]any, int, error)
	// WithinRadius returns bootcamps within miles of the given point.
	WithinRadius(ctx context.Context, lat, lng, miles float64) ([]*entity.Bootcamp, error)
	SetPhoto(ctx context.Context, id, filename string) error
}

type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	// GetByID populates the parent bootcamp reference.
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec query.Spec) ([]map[string]any, int, error)
	ListByBootcamp(ctx context.Context, bootcampID string, spec query.Spec) ([]map[string]any, int, error)
	// RecalcAverageCost refreshes the parent bootcamp's average_cost after a
	// course under it changes or is removed.
	RecalcAverageCost(ctx context.Context, bootcampID string) error
}
