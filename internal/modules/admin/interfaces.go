package admin

import (
	"context"

	"photoshare/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
}

type CommentRepository interface {
	ListAll(ctx context.Context, offset, limit int) ([]domain.Comment, error)
}

type RatingRepository interface {
	ListAll(ctx context.Context, offset, limit int) ([]domain.Rating, error)
}
