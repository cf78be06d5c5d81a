package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/modules/booking"
	"skillswap/internal/modules/notification"
	"skillswap/internal/modules/review"
	"skillswap/internal/modules/swap"
	jwtsvc "skillswap/internal/pkg/jwt"
	"skillswap/internal/pkg/logger"
	"skillswap/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env)
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	}

	bookingRepo := repository.NewBookingRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	swapService := swap.NewService(swapRepo, skillRepo)
	notificationService := notification.NewService(notificationRepo)
	bookingService := booking.NewService(bookingRepo, slotRepo, swapService, notificationService, log)
	bookingHandler := booking.NewHandler(bookingService)
	notificationHandler := notification.NewHandler(notificationService)
	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(tokens))
		{
			bookingHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
		}
	}

	log.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
