package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

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
	"photoshare/internal/sweeper"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	store, localDir, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

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

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg))

	if localDir != "" {
		r.Static(cfg.StaticBase, localDir)
	}

	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	staffOnly := middleware.RequireRoles(domain.RoleModerator, domain.RoleAdmin)
	photoOwnerOrAdmin := middleware.RequireOwnerOrRoles(photoService.OwnerOf, "id", domain.RoleAdmin)
	commentOwnerOnly := middleware.RequireOwnerOrRoles(commentService.OwnerOf, "id")
	commentOwnerOrStaff := middleware.RequireOwnerOrRoles(commentService.OwnerOf, "id", domain.RoleModerator, domain.RoleAdmin)

	v1 := r.Group("/api/v1")
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

	sw := sweeper.New(tokenRepo, cfg.SweepInterval, cfg.BlacklistRetention)
	go sw.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("api listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildStore returns the configured blob store and, for the local backend,
// the directory to expose as static files.
func buildStore(ctx context.Context, cfg *config.Config) (storage.Store, string, error) {
	if cfg.StorageBackend == "s3" {
		s3Store, err := storage.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	}
	return storage.NewLocalStore(cfg.UploadDir, cfg.StaticBase), cfg.UploadDir, nil
}
