package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"photoshare/internal/domain"
)

// TokenRepository provides DB access for issued tokens and the blacklist.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, t *domain.Token) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TokenRepository) GetByValue(ctx context.Context, value string) (*domain.Token, error) {
	var t domain.Token
	if err := r.db.WithContext(ctx).Where("value = ?", value).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) ActiveByOwner(ctx context.Context, ownerID int64, now time.Time) ([]domain.Token, error) {
	var tokens []domain.Token
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND expires_at > ?", ownerID, now).
		Find(&tokens).Error
	return tokens, err
}

// DeleteExpired removes every token whose expiry has passed. Safe to run
// concurrently with issuance: freshly issued tokens have a future expiry.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.Token{})
	return tx.RowsAffected, tx.Error
}

// Blacklist records a token value as revoked. Re-blacklisting an already
// revoked value is a no-op.
func (r *TokenRepository) Blacklist(ctx context.Context, value string) error {
	var existing domain.BlacklistedToken
	err := r.db.WithContext(ctx).Where("token = ?", value).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&domain.BlacklistedToken{Value: value}).Error
}

func (r *TokenRepository) IsBlacklisted(ctx context.Context, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BlacklistedToken{}).
		Where("token = ?", value).
		Count(&count).Error
	return count > 0, err
}

// PurgeBlacklisted drops blacklist entries recorded before the cutoff. The
// cutoff must be old enough that any token the entry could shadow has already
// passed its signed expiry.
func (r *TokenRepository) PurgeBlacklisted(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("blacklisted_on < ?", cutoff).
		Delete(&domain.BlacklistedToken{})
	return tx.RowsAffected, tx.Error
}
