package repository

import (
	"context"

	"gorm.io/gorm"

	"photoshare/internal/domain"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rt *domain.Rating) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RatingRepository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	var rt domain.Rating
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RatingRepository) GetByUserAndPhoto(ctx context.Context, userID, photoID int64) (*domain.Rating, error) {
	var rt domain.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Rating{}, id).Error
}

// AverageForPhoto returns 0 when the photo has no ratings.
func (r *RatingRepository) AverageForPhoto(ctx context.Context, photoID int64) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&domain.Rating{}).
		Select("AVG(rating)").
		Where("photo_id = ?", photoID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *RatingRepository) ListAll(ctx context.Context, offset, limit int) ([]domain.Rating, error) {
	var ratings []domain.Rating
	err := r.db.WithContext(ctx).
		Preload("Photo").
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error
	return ratings, err
}
