package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"photoshare/internal/domain"
)

type Service struct {
	users    UserRepository
	comments CommentRepository
	ratings  RatingRepository
}

func NewService(users UserRepository, comments CommentRepository, ratings RatingRepository) *Service {
	return &Service{
		users:    users,
		comments: comments,
		ratings:  ratings,
	}
}

// BanUser disables the account. Tokens the user already holds stay valid
// until they expire or are blacklisted; only future logins are refused.
func (s *Service) BanUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, error) {
	return s.users.List(ctx, offset, limit)
}

func (s *Service) ListComments(ctx context.Context, offset, limit int) ([]domain.Comment, error) {
	return s.comments.ListAll(ctx, offset, limit)
}

func (s *Service) ListRatings(ctx context.Context, offset, limit int) ([]domain.Rating, error) {
	return s.ratings.ListAll(ctx, offset, limit)
}
