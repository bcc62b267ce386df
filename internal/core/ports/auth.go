package ports

import (
	"context"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// AuthService implements account registration and credential login.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error)
	// Login returns a signed session token carrying the role claim.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
