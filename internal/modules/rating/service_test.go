package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photoshare/internal/domain"
)

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) Create(ctx context.Context, r *domain.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRatingRepo) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *mockRatingRepo) GetByUserAndPhoto(ctx context.Context, userID, photoID int64) (*domain.Rating, error) {
	args := m.Called(ctx, userID, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *mockRatingRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRatingRepo) AverageForPhoto(ctx context.Context, photoID int64) (float64, error) {
	args := m.Called(ctx, photoID)
	return args.Get(0).(float64), args.Error(1)
}

type fakePhotoOwners struct {
	owners map[int64]int64
}

func (f *fakePhotoOwners) OwnerOf(_ context.Context, id int64) (int64, error) {
	owner, ok := f.owners[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return owner, nil
}

func TestService_Rate_Success(t *testing.T) {
	repo := new(mockRatingRepo)
	photos := &fakePhotoOwners{owners: map[int64]int64{5: 99}}
	service := NewService(repo, photos)

	repo.On("GetByUserAndPhoto", mock.Anything, int64(10), int64(5)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	rating, err := service.Rate(context.Background(), 10, 5, 4)

	require.NoError(t, err)
	assert.Equal(t, 4, rating.Value)
	repo.AssertExpectations(t)
}

func TestService_Rate_UnknownPhoto(t *testing.T) {
	repo := new(mockRatingRepo)
	service := NewService(repo, &fakePhotoOwners{owners: map[int64]int64{}})

	_, err := service.Rate(context.Background(), 10, 404, 4)

	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestService_Rate_OwnPhoto(t *testing.T) {
	repo := new(mockRatingRepo)
	service := NewService(repo, &fakePhotoOwners{owners: map[int64]int64{5: 10}})

	_, err := service.Rate(context.Background(), 10, 5, 4)

	assert.ErrorIs(t, err, ErrOwnPhoto)
}

func TestService_Rate_SecondVoteRejected(t *testing.T) {
	repo := new(mockRatingRepo)
	service := NewService(repo, &fakePhotoOwners{owners: map[int64]int64{5: 99}})

	repo.On("GetByUserAndPhoto", mock.Anything, int64(10), int64(5)).
		Return(&domain.Rating{ID: 1, UserID: 10, PhotoID: 5, Value: 3}, nil)

	_, err := service.Rate(context.Background(), 10, 5, 4)

	assert.ErrorIs(t, err, ErrAlreadyRated)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Rate_ValueOutOfRange(t *testing.T) {
	repo := new(mockRatingRepo)
	service := NewService(repo, &fakePhotoOwners{owners: map[int64]int64{5: 99}})

	_, err := service.Rate(context.Background(), 10, 5, 6)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = service.Rate(context.Background(), 10, 5, 0)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestService_Average_UnratedPhotoIsZero(t *testing.T) {
	repo := new(mockRatingRepo)
	service := NewService(repo, &fakePhotoOwners{owners: map[int64]int64{5: 99}})

	repo.On("AverageForPhoto", mock.Anything, int64(5)).Return(0.0, nil)

	avg, err := service.Average(context.Background(), 5)

	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(mockRatingRepo)
	service := NewService(repo, &fakePhotoOwners{owners: map[int64]int64{}})

	repo.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	err := service.Delete(context.Background(), 77)

	assert.ErrorIs(t, err, ErrRatingNotFound)
}
