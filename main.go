package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "bookstore-service/common/errors"
	"bookstore-service/common/logger"
	commonmw "bookstore-service/common/middleware"
	"bookstore-service/controllers"
	"bookstore-service/database"
	"bookstore-service/middleware"
	"bookstore-service/models"
	aws_pkg "bookstore-service/pkg/aws"
	"bookstore-service/repository"
	"bookstore-service/routes"
	"bookstore-service/services"
	"bookstore-service/session"
	"bookstore-service/templates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	zapLogger := logger.Initialize(cfg.Env)
	defer zapLogger.Sync()

	// --- Database ---
	if err := database.Connect(cfg.Postgres(), zapLogger,
		&models.Book{}, &models.User{}, &models.CourseList{}, &models.CourseListBook{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		zapLogger.Fatal("DB connection failed", zap.Error(err))
	}

	bookRepo := repository.NewGormBookRepository(database.DB)
	userRepo := repository.NewGormUserRepository(database.DB)
	courseListRepo := repository.NewGormCourseListRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)

	if cfg.SeedData {
		if err := database.Seed(context.Background(), bookRepo, userRepo, courseListRepo, zapLogger); err != nil {
			zapLogger.Fatal("Seeding failed", zap.Error(err))
		}
	}

	// --- Sessions ---
	store := sessionStore(cfg, zapLogger)
	sessions := middleware.NewSessionManager(
		store,
		session.NewCodec(cfg.SessionSecret, cfg.SessionTTL),
		cfg.SessionTTL,
		cfg.Env == "production",
		zapLogger,
	)

	// --- AWS setup (optional) ---
	var snsClient aws_pkg.SNSPublisher
	if cfg.OrderEventsTopicARN != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			zapLogger.Fatal("Failed to load AWS config", zap.Error(err))
		}
		snsClient = aws_pkg.NewSNSClient(awsCfg)
	}

	// --- Dependency injection ---
	payment := services.NewSimulatedGateway(rand.NewSource(time.Now().UnixNano()))
	catalogService := services.NewCatalogService(bookRepo, courseListRepo, zapLogger)
	cartService := services.NewCartService(bookRepo, zapLogger)
	checkoutService := services.NewCheckoutService(bookRepo, orderRepo, payment, snsClient, cfg.OrderEventsTopicARN, time.Now, zapLogger)
	orderService := services.NewOrderService(orderRepo, bookRepo, snsClient, cfg.OrderEventsTopicARN, time.Now, zapLogger)
	accountService := services.NewAccountService(userRepo, zapLogger)
	courseListService := services.NewCourseListService(courseListRepo, bookRepo, cfg.EnforceCourseListOwnership, zapLogger)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	controllers.RegisterValidators()

	tmpl, err := templates.Load()
	if err != nil {
		zapLogger.Fatal("Failed to parse templates", zap.Error(err))
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(commonmw.RequestLogger(zapLogger))
	r.Use(commonmw.RequestTimeout(30 * time.Second))
	r.Use(commonmw.SecurityHeaders())

	r.StaticFS("/static", http.FS(templates.Static()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "bookstore-service"})
	})

	pages := r.Group("")
	pages.Use(apperrors.ErrorMiddleware())
	pages.Use(sessions.Middleware())

	limiter := commonmw.NewRateLimiter(rate.Every(time.Second), 10, 10*time.Minute)
	defer limiter.Stop()

	routes.RegisterRoutes(pages, routes.Controllers{
		Books:       controllers.NewBookController(catalogService),
		Cart:        controllers.NewCartController(cartService),
		Checkout:    controllers.NewCheckoutController(cartService, checkoutService),
		Orders:      controllers.NewOrderController(orderService),
		Accounts:    controllers.NewAccountController(accountService),
		CourseLists: controllers.NewCourseListController(courseListService, catalogService),
	}, limiter)
	r.NoRoute(apperrors.ErrorMiddleware(), sessions.Middleware(), func(c *gin.Context) {
		_ = c.Error(apperrors.New(http.StatusNotFound, "Page not found.", nil))
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zapLogger.Info("Bookstore started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown error", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		zapLogger.Error("Database close error", zap.Error(err))
	}

	zapLogger.Info("Bookstore stopped gracefully")
}

// sessionStore connects to Redis. Outside production an unreachable Redis
// falls back to an in-process store.
func sessionStore(cfg *Config, zapLogger *zap.Logger) session.Store {
	client, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
	if err == nil {
		zapLogger.Info("Connected to Redis")
		return session.NewRedisStore(client, cfg.SessionTTL)
	}
	if cfg.Env == "production" {
		zapLogger.Fatal("Redis connection failed", zap.Error(err))
	}
	zapLogger.Warn("Redis unavailable, keeping sessions in memory", zap.Error(err))
	return session.NewMemoryStore()
}
