package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-api/internal/auth"
	"blog-api/internal/config"
	apphttp "blog-api/internal/http"
	"blog-api/internal/repository/sqlite"
	"blog-api/internal/service"
	"blog-api/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	tagRepo := sqlite.NewTagRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)
	albumRepo := sqlite.NewAlbumRepository(db)
	photoRepo := sqlite.NewPhotoRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)

	repos := []interface {
		Init(ctx context.Context) error
	}{userRepo, categoryRepo, tagRepo, postRepo, commentRepo, albumRepo, photoRepo, todoRepo}
	for _, repo := range repos {
		if err := repo.Init(ctx); err != nil {
			logger.Fatalf("init repository: %v", err)
		}
	}

	userService := service.NewUserService(userRepo, postRepo)
	postService := service.NewPostService(postRepo, userRepo, categoryRepo, tagRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	albumService := service.NewAlbumService(albumRepo, userRepo)
	photoService := service.NewPhotoService(photoRepo, albumRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	tagService := service.NewTagService(tagRepo)
	todoService := service.NewTodoService(todoRepo)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Warnf("media storage disabled: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Deps{
		Users:      userService,
		Posts:      postService,
		Comments:   commentService,
		Albums:     albumService,
		Photos:     photoService,
		Categories: categoryService,
		Tags:       tagService,
		Todos:      todoService,
		Tokens:     tokens,
		Media:      storageSvc,
		Bucket:     cfg.Media.Bucket,
		KeyPrefix:  cfg.Media.KeyPrefix,
		Logger:     logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildStorage is optional: the API serves everything except photo uploads
// without a bucket configured.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Media.Bucket == "" {
		return nil, fmt.Errorf("media bucket is not configured")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Media.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Media.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Media.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Media.Bucket, cfg.Media.Region)
	return storage.NewS3Service(client), nil
}
