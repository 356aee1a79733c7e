package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/domain"
	"photoshare/internal/middleware"
	"photoshare/internal/modules/admin"
	"photoshare/internal/modules/auth"
	"photoshare/internal/modules/comment"
	"photoshare/internal/modules/photo"
	"photoshare/internal/modules/rating"
	jwtsvc "photoshare/internal/pkg/jwt"
	"photoshare/internal/repository"
	"photoshare/internal/storage"
)

type testApp struct {
	router    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	tokenRepo *repository.TokenRepository
}

type apiResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *errorDetail           `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:          "test_secret_key_32_characters_min",
		JWTAlgorithm:       "HS256",
		AccessTTL:          30 * time.Minute,
		RefreshTTL:         72 * time.Hour,
		SweepInterval:      30 * time.Minute,
		BlacklistRetention: 96 * time.Hour,
		CookiePath:         "/",
		UsernameLength:     12,
		StaticBase:         "/static/uploads",
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	store := storage.NewLocalStore(t.TempDir(), cfg.StaticBase)
	codec := jwtsvc.New(cfg.JWTSecret, cfg.JWTAlgorithm)

	authService := auth.NewService(userRepo, tokenRepo, codec, cfg)
	photoService := photo.NewService(photoRepo, store)
	commentService := comment.NewService(commentRepo, photoService)
	ratingService := rating.NewService(ratingRepo, photoService)
	adminService := admin.NewService(userRepo, commentRepo, ratingRepo)

	authHandler := auth.NewHandler(authService, cfg, photoRepo)
	photoHandler := photo.NewHandler(photoService)
	commentHandler := comment.NewHandler(commentService)
	ratingHandler := rating.NewHandler(ratingService)
	adminHandler := admin.NewHandler(adminService)

	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	staffOnly := middleware.RequireRoles(domain.RoleModerator, domain.RoleAdmin)
	photoOwnerOrAdmin := middleware.RequireOwnerOrRoles(photoService.OwnerOf, "id", domain.RoleAdmin)
	commentOwnerOnly := middleware.RequireOwnerOrRoles(commentService.OwnerOf, "id")
	commentOwnerOrStaff := middleware.RequireOwnerOrRoles(commentService.OwnerOf, "id", domain.RoleModerator, domain.RoleAdmin)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		photoHandler.RegisterPublicRoutes(v1)
		commentHandler.RegisterPublicRoutes(v1)
		ratingHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Session(authService, cfg))
		{
			authHandler.RegisterProtectedRoutes(protected)
			photoHandler.RegisterProtectedRoutes(protected, photoOwnerOrAdmin)
			commentHandler.RegisterProtectedRoutes(protected, commentOwnerOnly, commentOwnerOrStaff)
			ratingHandler.RegisterProtectedRoutes(protected, staffOnly)
			adminHandler.RegisterRoutes(protected, adminOnly, staffOnly)
		}
	}

	return &testApp{router: router, db: db, cfg: cfg, tokenRepo: tokenRepo}
}

func (app *testApp) do(t *testing.T, method, path string, body io.Reader, contentType string, cookies []*http.Cookie) (*httptest.ResponseRecorder, *apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	var parsed apiResponse
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, &parsed
}

func (app *testApp) doJSON(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) (*httptest.ResponseRecorder, *apiResponse) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return app.do(t, method, path, bytes.NewReader(raw), "application/json", cookies)
}

func (app *testApp) signup(t *testing.T, email, password string) *apiResponse {
	t.Helper()
	w, resp := app.doJSON(t, "POST", "/api/v1/auth/signup", gin.H{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp
}

func (app *testApp) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()
	w, _ := app.doJSON(t, "POST", "/api/v1/auth/login", gin.H{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Result().Cookies()
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// cookieValue undoes the query escaping gin applies when setting cookies.
func cookieValue(c *http.Cookie) string {
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value
	}
	return v
}

func TestE2E_SignupAndRoles(t *testing.T) {
	app := setupApp(t)

	first := app.signup(t, "alice@example.com", "password123")
	firstUser := first.Data["user"].(map[string]interface{})
	assert.Equal(t, "admin", firstUser["role"])
	assert.NotEmpty(t, first.Data["access_token"])

	second := app.signup(t, "bob@example.com", "password123")
	secondUser := second.Data["user"].(map[string]interface{})
	assert.Equal(t, "user", secondUser["role"])

	w, resp := app.doJSON(t, "POST", "/api/v1/auth/signup", gin.H{"email": "bob@example.com", "password": "password123"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)

	// a malformed body reports what failed to bind
	w, resp = app.doJSON(t, "POST", "/api/v1/auth/signup", gin.H{"email": "not-an-email"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details)
}

func TestE2E_LoginSetsSessionCookies(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "alice@example.com", "password123")
	app.signup(t, "bob@example.com", "password123")

	bobCookies := app.login(t, "bob@example.com", "password123")

	access := cookieByName(bobCookies, auth.CookieAccessToken)
	require.NotNil(t, access)
	assert.True(t, strings.HasPrefix(cookieValue(access), "Bearer "))

	refresh := cookieByName(bobCookies, auth.CookieRefreshToken)
	require.NotNil(t, refresh)
	assert.True(t, strings.HasPrefix(cookieValue(refresh), "Bearer "))

	loggedIn := cookieByName(bobCookies, auth.CookieLoggedIn)
	require.NotNil(t, loggedIn)
	assert.NotEmpty(t, loggedIn.Value)

	// a plain user gets no admin hint cookie
	assert.Nil(t, cookieByName(bobCookies, auth.CookieAdminAccess))

	adminCookies := app.login(t, "alice@example.com", "password123")
	adminHint := cookieByName(adminCookies, auth.CookieAdminAccess)
	require.NotNil(t, adminHint)
	assert.Equal(t, "true", adminHint.Value)
}

func TestE2E_MeAndLogout(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "alice@example.com", "password123")
	cookies := app.login(t, "alice@example.com", "password123")

	w, resp := app.do(t, "GET", "/api/v1/users/me", nil, "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	me := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", me["email"])

	w, _ = app.do(t, "POST", "/api/v1/auth/logout", nil, "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// every session cookie is cleared in the logout response
	for _, name := range []string{auth.CookieAccessToken, auth.CookieRefreshToken, auth.CookieLoggedIn, auth.CookieAdminAccess} {
		cleared := cookieByName(w.Result().Cookies(), name)
		require.NotNil(t, cleared, name)
		assert.Empty(t, cleared.Value)
	}

	// replaying the old cookies finds both tokens blacklisted
	w, resp = app.do(t, "GET", "/api/v1/users/me", nil, "", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKENS_REVOKED", resp.Error.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	// logging out twice is harmless
	w, _ = app.do(t, "POST", "/api/v1/auth/logout", nil, "", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestE2E_LogoutNeedsNoLiveSession(t *testing.T) {
	app := setupApp(t)

	// even with no credentials at all the route answers and clears the
	// session markers, so clients with expired or revoked tokens can
	// always tear their state down
	w, _ := app.do(t, "POST", "/api/v1/auth/logout", nil, "", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, name := range []string{auth.CookieAccessToken, auth.CookieRefreshToken, auth.CookieLoggedIn, auth.CookieAdminAccess} {
		cleared := cookieByName(w.Result().Cookies(), name)
		require.NotNil(t, cleared, name)
		assert.Empty(t, cleared.Value)
	}
}

func TestE2E_NoCredentials(t *testing.T) {
	app := setupApp(t)

	w, resp := app.do(t, "GET", "/api/v1/users/me", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", resp.Error.Code)
}

func TestE2E_RefreshFallbackReissuesAccess(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "alice@example.com", "password123")
	cookies := app.login(t, "alice@example.com", "password123")

	// revoke just the access token, as if it leaked
	access := cookieByName(cookies, auth.CookieAccessToken)
	require.NotNil(t, access)
	ctx := t.Context()
	require.NoError(t, app.tokenRepo.Blacklist(ctx, strings.TrimPrefix(cookieValue(access), "Bearer ")))

	w, _ := app.do(t, "GET", "/api/v1/users/me", nil, "", cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the request was carried by the refresh token and a replacement
	// access cookie was minted
	reissued := cookieByName(w.Result().Cookies(), auth.CookieAccessToken)
	require.NotNil(t, reissued)
	assert.True(t, strings.HasPrefix(cookieValue(reissued), "Bearer "))
	assert.NotEqual(t, access.Value, reissued.Value)
}

func uploadPhoto(t *testing.T, app *testApp, cookies []*http.Cookie, description string, tags string) float64 {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "shot.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("description", description))
	if tags != "" {
		require.NoError(t, mw.WriteField("tags", tags))
	}
	require.NoError(t, mw.Close())

	w, resp := app.do(t, "POST", "/api/v1/photos", &buf, mw.FormDataContentType(), cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp.Data["photo"].(map[string]interface{})["id"].(float64)
}

func TestE2E_PhotoLifecycle(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "alice@example.com", "password123")
	app.signup(t, "bob@example.com", "password123")
	bobCookies := app.login(t, "bob@example.com", "password123")
	adminCookies := app.login(t, "alice@example.com", "password123")

	photoID := uploadPhoto(t, app, bobCookies, "street scene", "city,night")
	path := fmt.Sprintf("/api/v1/photos/%d", int64(photoID))

	// public read, no session needed
	w, resp := app.do(t, "GET", path, nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := resp.Data["photo"].(map[string]interface{})
	assert.Equal(t, "street scene", got["description"])
	assert.Len(t, got["tags"], 2)

	// owner edits the description
	w, _ = app.doJSON(t, "PUT", path, gin.H{"description": "night street scene"}, bobCookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// a stranger cannot
	app.signup(t, "carol@example.com", "password123")
	carolCookies := app.login(t, "carol@example.com", "password123")
	w, resp = app.doJSON(t, "PUT", path, gin.H{"description": "mine now"}, carolCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	// QR code is served as a PNG
	w, _ = app.do(t, "GET", path+"/qr", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	// admin can delete someone else's photo
	w, _ = app.do(t, "DELETE", path, nil, "", adminCookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = app.do(t, "GET", path, nil, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestE2E_CommentsAndRatings(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "alice@example.com", "password123")
	app.signup(t, "bob@example.com", "password123")
	app.signup(t, "carol@example.com", "password123")
	bobCookies := app.login(t, "bob@example.com", "password123")
	carolCookies := app.login(t, "carol@example.com", "password123")

	photoID := int64(uploadPhoto(t, app, bobCookies, "portrait", ""))

	commentPath := fmt.Sprintf("/api/v1/photos/%d/comments", photoID)
	w, _ := app.doJSON(t, "POST", commentPath, gin.H{"content": "great portrait"}, carolCookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp := app.do(t, "GET", commentPath, nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data["comments"], 1)

	ratePath := fmt.Sprintf("/api/v1/photos/%d/rate", photoID)

	// the owner cannot vote for themselves
	w, resp = app.doJSON(t, "POST", ratePath, gin.H{"value": 5}, bobCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "OWN_PHOTO", resp.Error.Code)

	w, _ = app.doJSON(t, "POST", ratePath, gin.H{"value": 4}, carolCookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// one vote per user
	w, resp = app.doJSON(t, "POST", ratePath, gin.H{"value": 5}, carolCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ALREADY_RATED", resp.Error.Code)

	w, resp = app.do(t, "GET", fmt.Sprintf("/api/v1/photos/%d/rating", photoID), nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.0, resp.Data["average_rating"])
}

func TestE2E_BanDisablesLoginButNotLiveTokens(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "alice@example.com", "password123")
	bob := app.signup(t, "bob@example.com", "password123")
	bobID := int64(bob.Data["user"].(map[string]interface{})["id"].(float64))

	bobCookies := app.login(t, "bob@example.com", "password123")
	adminCookies := app.login(t, "alice@example.com", "password123")

	// a plain user cannot reach the admin surface
	w, _ := app.do(t, "PUT", fmt.Sprintf("/api/v1/admin/users/%d/ban", bobID), nil, "", bobCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := app.do(t, "PUT", fmt.Sprintf("/api/v1/admin/users/%d/ban", bobID), nil, "", adminCookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, resp.Data["user"].(map[string]interface{})["is_active"])

	// the live session keeps working: banning does not revoke tokens
	w, _ = app.do(t, "GET", "/api/v1/users/me", nil, "", bobCookies)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// but a fresh login is refused
	w, resp = app.doJSON(t, "POST", "/api/v1/auth/login", gin.H{"email": "bob@example.com", "password": "password123"}, nil)
	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Equal(t, "ACCOUNT_DISABLED", resp.Error.Code)
}
