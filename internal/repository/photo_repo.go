package repository

import (
	"context"

	"gorm.io/gorm"

	"photoshare/internal/domain"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, p *domain.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (*domain.Photo, error) {
	var p domain.Photo
	if err := r.db.WithContext(ctx).Preload("Tags").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PhotoRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	return r.db.WithContext(ctx).Model(&domain.Photo{}).
		Where("id = ?", id).
		Update("description", description).Error
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(&domain.Photo{ID: id}).Error
}

func (r *PhotoRepository) List(ctx context.Context, offset, limit int) ([]domain.Photo, error) {
	var photos []domain.Photo
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) ListByTag(ctx context.Context, tag string, offset, limit int) ([]domain.Photo, error) {
	var photos []domain.Photo
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Joins("JOIN photo_tags pt ON pt.photo_id = photos.id").
		Joins("JOIN tags t ON t.id = pt.tag_id").
		Where("t.name = ?", tag).
		Order("photos.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Photo{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// FindOrCreateTag returns the tag with the given name, creating it on first
// use. Tag names are stored as-is; callers normalize before lookup.
func (r *PhotoRepository) FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&tag, domain.Tag{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *PhotoRepository) ReplaceTags(ctx context.Context, photo *domain.Photo, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Model(photo).Association("Tags").Replace(tags)
}

func (r *PhotoRepository) CreateTransformed(ctx context.Context, t *domain.TransformedImage) error {
	return r.db.WithContext(ctx).Create(t).Error
}
