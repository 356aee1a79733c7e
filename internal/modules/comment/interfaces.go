package comment

import (
	"context"

	"photoshare/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
	ListByPhoto(ctx context.Context, photoID int64) ([]domain.Comment, error)
}

// PhotoOwnerReader verifies the target photo exists before a comment is
// attached to it.
type PhotoOwnerReader interface {
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
