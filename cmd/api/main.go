package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"maple-blog/internal/config"
	"maple-blog/internal/handler"
	"maple-blog/internal/middleware"
	"maple-blog/internal/pkg/i18n"
	"maple-blog/internal/repository"
	"maple-blog/internal/service"
	"maple-blog/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is not set")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := config.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (caching disabled)", err)
		redis = nil
	} else {
		defer redis.Close()
	}

	var minioClient *minio.Client
	if cfg.MinIOEndpoint != "" {
		minioClient, err = config.NewMinIOClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to connect to MinIO: %v (reading posts from %s)", err, cfg.ContentDir)
			minioClient = nil
		}
	}

	if err := i18n.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	if cfg.LocalePath != "" {
		if err := i18n.LoadTranslations(cfg.LocalePath); err != nil {
			log.Printf("Warning: Failed to load translations from %s: %v", cfg.LocalePath, err)
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/rss.xml", h.Feed.RSS)
	app.Get("/robots.txt", h.Feed.Robots)

	api := app.Group("/api", middleware.OptionalAdmin(authService))

	comments := api.Group("/comments")
	comments.Get("/", h.Comment.List)
	comments.Post("/", h.Comment.Create)
	comments.Post("/like", h.Comment.ToggleLike)

	api.Get("/like", h.Like.Status)
	api.Post("/like", h.Like.Toggle)

	api.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return middleware.NewError(fiber.StatusTooManyRequests, "Too many login attempts")
		},
	}), h.Auth.Login)
	api.Post("/logout", h.Auth.Logout)
	api.Get("/me", h.Auth.Me)

	api.Post("/search", h.Search.Search)

	telegram := api.Group("/telegram")
	telegram.Get("/channel", h.Telegram.Channel)
	telegram.Get("/posts/:id", h.Telegram.Post)

	admin := api.Group("/admin", middleware.AdminRequired(authService))
	admin.Get("/stats", h.Dashboard.Stats)
	admin.Get("/sink-details", h.Dashboard.SinkDetails)
	admin.Get("/comments", h.Dashboard.ListComments)
	admin.Delete("/comments/:id", h.Dashboard.DeleteComment)
}
