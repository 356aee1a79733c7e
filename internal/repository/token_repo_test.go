package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photoshare/internal/database"
	"photoshare/internal/domain"
)

func setupTokenRepo(t *testing.T) (*TokenRepository, *UserRepository) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewTokenRepository(db), NewUserRepository(db)
}

func createOwner(t *testing.T, users *UserRepository) *domain.User {
	t.Helper()

	u := &domain.User{
		Email:        "owner@example.com",
		Username:     "owner",
		PasswordHash: "x",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestTokenRepository_CreateAndGetByValue(t *testing.T) {
	tokens, users := setupTokenRepo(t)
	owner := createOwner(t, users)
	ctx := context.Background()

	row := &domain.Token{
		Value:     "jwt-value-1",
		OwnerID:   owner.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tokens.Create(ctx, row))

	got, err := tokens.GetByValue(ctx, "jwt-value-1")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.OwnerID)

	_, err = tokens.GetByValue(ctx, "never-issued")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTokenRepository_BlacklistIsIdempotent(t *testing.T) {
	tokens, _ := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, tokens.Blacklist(ctx, "revoked-token"))
	require.NoError(t, tokens.Blacklist(ctx, "revoked-token"))

	revoked, err := tokens.IsBlacklisted(ctx, "revoked-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = tokens.IsBlacklisted(ctx, "other-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenRepository_DeleteExpiredKeepsLiveTokens(t *testing.T) {
	tokens, users := setupTokenRepo(t)
	owner := createOwner(t, users)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, tokens.Create(ctx, &domain.Token{
		Value: "expired", OwnerID: owner.ID, ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, tokens.Create(ctx, &domain.Token{
		Value: "live", OwnerID: owner.ID, ExpiresAt: now.Add(time.Hour),
	}))

	deleted, err := tokens.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = tokens.GetByValue(ctx, "expired")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = tokens.GetByValue(ctx, "live")
	assert.NoError(t, err)
}

func TestTokenRepository_PurgeBlacklistedHonorsCutoff(t *testing.T) {
	tokens, _ := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, tokens.Blacklist(ctx, "old-entry"))
	require.NoError(t, tokens.Blacklist(ctx, "fresh-entry"))

	// age the first entry past the retention window
	err := tokens.db.Model(&domain.BlacklistedToken{}).
		Where("token = ?", "old-entry").
		Update("blacklisted_on", time.Now().Add(-100*time.Hour)).Error
	require.NoError(t, err)

	purged, err := tokens.PurgeBlacklisted(ctx, time.Now().Add(-73*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// a freshly revoked token must stay shadowed
	revoked, err := tokens.IsBlacklisted(ctx, "fresh-entry")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = tokens.IsBlacklisted(ctx, "old-entry")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenRepository_ActiveByOwner(t *testing.T) {
	tokens, users := setupTokenRepo(t)
	owner := createOwner(t, users)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, tokens.Create(ctx, &domain.Token{
		Value: "a", OwnerID: owner.ID, ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, tokens.Create(ctx, &domain.Token{
		Value: "b", OwnerID: owner.ID, ExpiresAt: now.Add(-time.Hour),
	}))

	active, err := tokens.ActiveByOwner(ctx, owner.ID, now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].Value)
}
