package rating

import (
	"context"

	"photoshare/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, r *domain.Rating) error
	GetByID(ctx context.Context, id int64) (*domain.Rating, error)
	GetByUserAndPhoto(ctx context.Context, userID, photoID int64) (*domain.Rating, error)
	Delete(ctx context.Context, id int64) error
	AverageForPhoto(ctx context.Context, photoID int64) (float64, error)
}

type PhotoOwnerReader interface {
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
