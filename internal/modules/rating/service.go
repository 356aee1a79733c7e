package rating

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"photoshare/internal/domain"
)

type Service struct {
	repo   Repository
	photos PhotoOwnerReader
}

func NewService(repo Repository, photos PhotoOwnerReader) *Service {
	return &Service{repo: repo, photos: photos}
}

// Rate records a 1..5 vote. Owners cannot rate their own photo and a user
// gets exactly one vote per photo.
func (s *Service) Rate(ctx context.Context, userID, photoID int64, value int) (*domain.Rating, error) {
	if value < 1 || value > 5 {
		return nil, ErrValueOutOfRange
	}

	ownerID, err := s.photos.OwnerOf(ctx, photoID)
	if err != nil {
		return nil, ErrPhotoNotFound
	}
	if ownerID == userID {
		return nil, ErrOwnPhoto
	}

	if _, err := s.repo.GetByUserAndPhoto(ctx, userID, photoID); err == nil {
		return nil, ErrAlreadyRated
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	r := &domain.Rating{
		Value:   value,
		UserID:  userID,
		PhotoID: photoID,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Average returns 0 for a photo nobody has rated yet.
func (s *Service) Average(ctx context.Context, photoID int64) (float64, error) {
	if _, err := s.photos.OwnerOf(ctx, photoID); err != nil {
		return 0, ErrPhotoNotFound
	}
	return s.repo.AverageForPhoto(ctx, photoID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
