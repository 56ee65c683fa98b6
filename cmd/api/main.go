package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/learnhub-app/lms-api/internal/handler"
	"github.com/learnhub-app/lms-api/internal/repository"
	"github.com/learnhub-app/lms-api/internal/router"
	"github.com/learnhub-app/lms-api/internal/service"
	"github.com/learnhub-app/lms-api/pkg/cache"
	"github.com/learnhub-app/lms-api/pkg/config"
	"github.com/learnhub-app/lms-api/pkg/database"
	"github.com/learnhub-app/lms-api/pkg/logger"
	"github.com/learnhub-app/lms-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Chat.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, chat cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Chat.CacheTTL, logr, true)
		}
	}

	var (
		uploader storage.Uploader
		files    *handler.FilesHandler
	)
	switch cfg.Upload.Provider {
	case config.UploadProviderCloudinary:
		uploader = storage.NewCloudinaryClient(cfg.Upload.CloudName, cfg.Upload.APIKey, cfg.Upload.APISecret, cfg.Upload.Folder)
	default:
		signer := storage.NewDownloadTokenSigner(cfg.Upload.SignedURLSecret, cfg.Upload.SignedURLTTL)
		local, err := storage.NewLocalStorage(cfg.Upload.LocalDir, cfg.APIPrefix+"/uploads", signer)
		if err != nil {
			logr.Sugar().Fatalw("local storage init failed", "error", err)
		}
		uploader = local
		files = handler.NewFilesHandler(local)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lectureRepo := repository.NewLectureRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(courseRepo, enrollmentRepo, validate, logr)
	lectureSvc := service.NewLectureService(lectureRepo, courseRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, submissionRepo, courseRepo, validate, logr)
	messageSvc := service.NewMessageService(messageRepo, courseRepo, cacheSvc, validate, logr)
	userSvc := service.NewUserService(userRepo, metrics, logr)
	uploadSvc := service.NewUploadService(uploader, logr)

	engine := router.New(router.Deps{
		Config:      cfg,
		Logger:      logr,
		AuthService: authSvc,
		Metrics:     metrics,
		Auth:        handler.NewAuthHandler(authSvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Lectures:    handler.NewLectureHandler(lectureSvc),
		Assignments: handler.NewAssignmentHandler(assignmentSvc),
		Messages:    handler.NewMessageHandler(messageSvc),
		Admin:       handler.NewAdminHandler(userSvc),
		Upload:      handler.NewUploadHandler(uploadSvc, cfg.Upload.MaxFileSize),
		Files:       files,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
