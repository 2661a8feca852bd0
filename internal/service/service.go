package service

import (
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"maple-blog/internal/config"
	"maple-blog/internal/content"
	"maple-blog/internal/repository"
	"maple-blog/internal/service/auth"
	"maple-blog/internal/service/comment"
	"maple-blog/internal/service/dashboard"
	"maple-blog/internal/service/email"
	"maple-blog/internal/service/feed"
	"maple-blog/internal/service/like"
	"maple-blog/internal/service/search"
	"maple-blog/internal/service/shortlink"
	"maple-blog/internal/service/telegram"
)

type Services struct {
	Auth      auth.Service
	Comment   comment.Service
	Like      like.Service
	Email     email.Service
	ShortLink shortlink.Service
	Dashboard dashboard.Service
	Telegram  telegram.Service
	Search    search.Service
	Feed      feed.Service
	Catalog   *content.Catalog
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(cfg)
	shortLinkService := shortlink.NewService(cfg, nil, redis)

	commentService := comment.NewService(repos.Comment, repos.Like, redis, cfg)
	if cfg.ResendAPIKey != "" {
		commentService.SetNotificationService(emailService, cfg.AdminEmail)
	}

	likeService := like.NewService(repos.Like, repos.Comment)
	dashboardService := dashboard.NewService(repos.Comment, repos.Like, shortLinkService, redis)
	telegramService := telegram.NewService(cfg, nil)

	catalog := content.NewCatalog(contentSource(minioClient, cfg), shortLinkService, content.Options{
		SiteURL:       cfg.SiteURL,
		IncludeDrafts: !cfg.IsProduction(),
	})

	return &Services{
		Auth:      authService,
		Comment:   commentService,
		Like:      likeService,
		Email:     emailService,
		ShortLink: shortLinkService,
		Dashboard: dashboardService,
		Telegram:  telegramService,
		Search:    search.NewService(catalog),
		Feed:      feed.NewService(catalog, cfg),
		Catalog:   catalog,
	}
}

func contentSource(minioClient *minio.Client, cfg *config.Config) content.Source {
	if minioClient != nil {
		log.Printf("Loading posts from bucket %s/%s", cfg.MinIOBucket, cfg.MinIOPrefix)
		return content.NewBucketSource(minioClient, cfg.MinIOBucket, cfg.MinIOPrefix)
	}
	log.Printf("Loading posts from %s", cfg.ContentDir)
	return content.NewDirSource(cfg.ContentDir)
}
