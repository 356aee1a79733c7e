package repository

import (
	"context"

	"gorm.io/gorm"

	"photoshare/internal/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	return r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, id).Error
}

func (r *CommentRepository) ListByPhoto(ctx context.Context, photoID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// ListAll returns every comment with its photo and author preloaded, for the
// moderation view.
func (r *CommentRepository) ListAll(ctx context.Context, offset, limit int) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Photo").
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}
