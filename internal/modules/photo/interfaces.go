package photo

import (
	"context"

	"photoshare/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Photo) error
	GetByID(ctx context.Context, id int64) (*domain.Photo, error)
	UpdateDescription(ctx context.Context, id int64, description string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]domain.Photo, error)
	ListByTag(ctx context.Context, tag string, offset, limit int) ([]domain.Photo, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, error)
	ReplaceTags(ctx context.Context, photo *domain.Photo, tags []domain.Tag) error
	CreateTransformed(ctx context.Context, t *domain.TransformedImage) error
}
