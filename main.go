package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/handlers"
	"github.com/fundvault/fundvault/backend/go-services/internal/admins"
	"github.com/fundvault/fundvault/backend/go-services/internal/config"
	"github.com/fundvault/fundvault/backend/go-services/internal/database"
	"github.com/fundvault/fundvault/backend/go-services/internal/pool/handler"
	"github.com/fundvault/fundvault/backend/go-services/internal/pool/repository"
	"github.com/fundvault/fundvault/backend/go-services/internal/pool/service"
	"github.com/fundvault/fundvault/backend/go-services/internal/reports"
	"github.com/fundvault/fundvault/backend/go-services/internal/sessions"
	"github.com/fundvault/fundvault/backend/go-services/internal/storage"
	"github.com/fundvault/fundvault/backend/go-services/pkg/logger"
	"github.com/fundvault/fundvault/backend/go-services/pkg/metrics"
	"github.com/fundvault/fundvault/backend/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// shared runtime vars used by handlers/readiness
	var sessionsSvc *sessions.Service
	var poolSvc *service.Service
	var mongoReady bool

	// Connect to Redis early so the rate-limiter and token blacklist can use it
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := importedRedis.Ping(context.Background()).Err(); err == nil {
			sessions.SetBlacklistClient(importedRedis)
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			importedRedis = nil
		}
	}

	// Optional global rate limiter (per-admin when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongodb"] = mongoReady
		if !mongoReady {
			ready = false
		}
		deps["sessions"] = sessionsSvc != nil
		if sessionsSvc == nil {
			ready = false
		}

		// Redis readiness only matters when it backs the rate limiter
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = importedRedis != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := gin.H{"deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["status"] = "ready"
		c.JSON(http.StatusOK, status)
	})

	ctx := context.Background()

	// Prefer Redis-based sessions when available (fast, in-memory)
	if importedRedis != nil {
		srepo := sessions.NewRedisRepository(importedRedis, "session:")
		sessionsSvc = sessions.NewService(srepo)
		logger.Infof("Using Redis for session storage")
	}

	// MongoDB-backed services. Retry with backoff to tolerate startup races.
	var adminSvc *admins.Service
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			mongoReady = true
			db := client.Database(cfg.MongoDB.Database)

			poolSvc = service.New(repository.NewMongoRepo(db))
			adminSvc = admins.NewService(admins.NewMongoRepository(db.Collection("admins")))

			// only create a Mongo-backed session repo when Redis didn't provide one
			if sessionsSvc == nil {
				sessionsSvc = sessions.NewService(sessions.NewMongoRepository(db.Collection("sessions")))
			}
		}
	}

	// Optional statement export to object storage
	var exporter *reports.Exporter
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			logger.Warnf("statement export disabled: %v", err)
		} else {
			exporter = reports.NewExporter(store)
			logger.Infof("Statement export enabled (bucket %s)", cfg.MinIO.Bucket)
		}
	}

	// HTML templates for the investor lookup page
	r.LoadHTMLGlob("templates/*.html")

	// Register handlers
	if adminSvc != nil && sessionsSvc != nil {
		handlers.NewAuthHandler(cfg, adminSvc, sessionsSvc).Register(r)
	} else {
		logger.Warnf("auth handlers not registered because admin/session services are unavailable")
	}
	if poolSvc != nil {
		requireAdmin := middleware.RequireAdmin(cfg, sessionsSvc)
		handler.New(poolSvc, exporter).Register(r, requireAdmin)
		handlers.NewLookupHandler(poolSvc).Register(r)
	} else {
		logger.Warnf("ledger handlers not registered because MongoDB is unavailable")
	}
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Config summary: mongo=%v redis=%v minio=%v jwt_secret_set=%v", mongoReady, importedRedis != nil, exporter != nil, cfg.JWT.Secret != "")
	logger.Infof("Starting ledger service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
