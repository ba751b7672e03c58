package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rtdacademy/gradebook-api/api/swagger"
	"github.com/rtdacademy/gradebook-api/internal/gradebook"
	"github.com/rtdacademy/gradebook-api/internal/handler"
	"github.com/rtdacademy/gradebook-api/internal/middleware"
	"github.com/rtdacademy/gradebook-api/internal/repository"
	"github.com/rtdacademy/gradebook-api/internal/service"
	"github.com/rtdacademy/gradebook-api/pkg/cache"
	"github.com/rtdacademy/gradebook-api/pkg/config"
	"github.com/rtdacademy/gradebook-api/pkg/database"
	"github.com/rtdacademy/gradebook-api/pkg/logger"
	corsmiddleware "github.com/rtdacademy/gradebook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rtdacademy/gradebook-api/pkg/middleware/requestid"
)

// @title Gradebook API
// @version 0.1.0
// @description Score computation and gradebook service for course documents
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Scores recompute on every request without a cache; degraded
		// but functional.
		logr.Sugar().Warnw("redis unavailable, score caching disabled", "error", err)
		redisClient = nil
	}

	courseRepo := repository.NewCourseRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Gradebook.CacheTTL, logr, cfg.Gradebook.CacheEnabled && redisClient != nil)
	engine := gradebook.NewEngine(logr)
	scoreSvc := service.NewScoreService(courseRepo, cacheSvc, metricsSvc, engine, logr)
	overrideSvc := service.NewOverrideService(courseRepo, scoreSvc, engine, nil, logr)
	exportSvc := service.NewExportService(courseRepo, scoreSvc, logr, nil, nil)
	authSvc := service.NewAuthService(service.AuthConfig{Secret: cfg.JWT.Secret}, logr)

	scoreHandler := handler.NewScoreHandler(scoreSvc)
	overrideHandler := handler.NewOverrideHandler(overrideSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		api.GET("/metrics/snapshot", middleware.RequireStaff(), metricsHandler.Snapshot)

		course := api.Group("/courses/:courseId")
		{
			if cfg.Reports.Enabled {
				course.GET("/report", middleware.RequireStaff(), exportHandler.CourseReport)
			}

			student := course.Group("/students/:email", middleware.SelfOrStaff())
			{
				student.GET("/summary", scoreHandler.Summary)
				student.GET("/items/:itemId/score", scoreHandler.ItemScore)
				student.GET("/items/:itemId/completion", scoreHandler.ItemCompletion)
				student.PUT("/items/:itemId/override", middleware.RequireStaff(), overrideHandler.Apply)
				student.DELETE("/items/:itemId/override", middleware.RequireStaff(), overrideHandler.Remove)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
