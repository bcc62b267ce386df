package ports

import (
	"context"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// UserFilter carries all query parameters for listing users.
type UserFilter struct {
	Search string // optional: partial match on email or full_name
	Role   string // optional: exact role match
	Page   int    // 1-based
	Limit  int    // rows per page (capped at 100 by the service)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
}

// ListUsersResult is returned by the user list use case.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) (*ListUsersResult, error)
}
