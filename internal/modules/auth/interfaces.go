package auth

import (
	"context"
	"time"

	"photoshare/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type TokenRepository interface {
	Create(ctx context.Context, t *domain.Token) error
	Blacklist(ctx context.Context, value string) error
	IsBlacklisted(ctx context.Context, value string) (bool, error)
}

// PhotoCounter lets the profile endpoint report how many photos the user
// owns without the auth module depending on the photo module.
type PhotoCounter interface {
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
}
