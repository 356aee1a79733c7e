package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"photoshare/internal/config"
	"photoshare/internal/domain"
	"photoshare/internal/pkg/jwt"
)

// Service implements signup, login, logout and session resolution. Token
// issuance and validation share the single process-wide codec; TTLs and the
// username policy come from the injected config.
type Service struct {
	users  UserRepository
	tokens TokenRepository
	codec  *jwt.Codec
	cfg    *config.Config
}

func NewService(users UserRepository, tokens TokenRepository, codec *jwt.Codec, cfg *config.Config) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		codec:  codec,
		cfg:    cfg,
	}
}

// Signup creates the account and hands back a first access token. The very
// first account on the instance becomes the admin.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, string, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, "", err
	}
	role := domain.RoleUser
	if total == 0 {
		role = domain.RoleAdmin
	}

	username, err := s.uniqueUsername(ctx)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	access, err := s.IssueToken(ctx, user, s.cfg.AccessTTL)
	if err != nil {
		return nil, "", err
	}
	return user, access, nil
}

// Login verifies the password, refuses disabled accounts, and issues a
// fresh access/refresh pair.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	access, err := s.IssueToken(ctx, user, s.cfg.AccessTTL)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.IssueToken(ctx, user, s.cfg.RefreshTTL)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("auth last_login_update_failed user_id=%d err=%v", user.ID, err)
	}
	user.LastLogin = &now

	return user, &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Logout blacklists whichever credentials the client presented. Revoking an
// already blacklisted token is a no-op, so repeated logouts are harmless.
func (s *Service) Logout(ctx context.Context, access, refresh string) error {
	for _, raw := range []string{access, refresh} {
		token := stripBearer(raw)
		if token == "" {
			continue
		}
		if err := s.tokens.Blacklist(ctx, token); err != nil {
			return err
		}
	}
	return nil
}

// IssueToken signs {sub: email, exp: now+ttl} and persists the token by
// value. The string is handed out only after the insert succeeds, so every
// live token has a row backing it.
func (s *Service) IssueToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	signed, expiresAt, err := s.codec.Sign(user.Email, ttl)
	if err != nil {
		return "", err
	}
	row := &domain.Token{
		Value:     signed,
		OwnerID:   user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Create(ctx, row); err != nil {
		return "", err
	}
	return signed, nil
}

// Resolve turns the raw access and refresh credentials into a user.
//
// A blacklisted access token falls through to the refresh token; if that one
// is blacklisted too (or was the only credential and is blacklisted) the
// whole session is revoked. A token that fails signature or expiry checks is
// terminal: an expired access token does NOT fall back to the refresh token,
// the client is expected to come back through login.
//
// When the session is carried by the refresh token alone, a replacement
// access token is minted and returned alongside the user. Minting is
// best-effort: the request proceeds on the refresh token if it fails.
func (s *Service) Resolve(ctx context.Context, access, refresh string) (*domain.User, string, error) {
	access = stripBearer(access)
	refresh = stripBearer(refresh)

	if access != "" {
		revoked, err := s.tokens.IsBlacklisted(ctx, access)
		if err != nil {
			return nil, "", err
		}
		if !revoked {
			user, err := s.userFromToken(ctx, access)
			if err != nil {
				return nil, "", err
			}
			return user, "", nil
		}
	}

	if refresh != "" {
		revoked, err := s.tokens.IsBlacklisted(ctx, refresh)
		if err != nil {
			return nil, "", err
		}
		if revoked {
			return nil, "", ErrBothTokensRevoked
		}
		user, err := s.userFromToken(ctx, refresh)
		if err != nil {
			return nil, "", err
		}

		newAccess, err := s.IssueToken(ctx, user, s.cfg.AccessTTL)
		if err != nil {
			log.Printf("auth access_reissue_failed user_id=%d err=%v", user.ID, err)
			newAccess = ""
		}
		return user, newAccess, nil
	}

	return nil, "", ErrUnauthenticated
}

// CurrentUser loads the profile for an already-resolved user id.
func (s *Service) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) userFromToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) uniqueUsername(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		candidate, err := newUsername(s.cfg.UsernameLength)
		if err != nil {
			return "", err
		}
		taken, err := s.users.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a unique username")
}

func stripBearer(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(v, bearerPrefix))
	}
	return v
}
