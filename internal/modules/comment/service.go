package comment

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

func (s *Service) Create(ctx context.Context, userID, photoID int64, content string) (*domain.Comment, error) {
	if _, err := s.photos.OwnerOf(ctx, photoID); err != nil {
		return nil, ErrPhotoNotFound
	}

	c := &domain.Comment{
		Content: content,
		PhotoID: photoID,
		UserID:  userID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPhoto(ctx context.Context, photoID int64) ([]domain.Comment, error) {
	if _, err := s.photos.OwnerOf(ctx, photoID); err != nil {
		return nil, ErrPhotoNotFound
	}
	return s.repo.ListByPhoto(ctx, photoID)
}

// OwnerOf is the ownership lookup used by the route gates. A comment is
// owned by its author.
func (s *Service) OwnerOf(ctx context.Context, id int64) (int64, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return c.UserID, nil
}
