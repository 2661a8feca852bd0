package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"maple-blog/internal/domain"
	"maple-blog/internal/repository"
	"maple-blog/internal/service/shortlink"
)

const cacheKey = "dashboard:stats"

type Service interface {
	GetStats(ctx context.Context) (*domain.AdminStats, error)
}

type service struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	links       shortlink.Service
	redis       *redis.Client
}

func NewService(commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, links shortlink.Service, redis *redis.Client) Service {
	return &service{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		links:       links,
		redis:       redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats domain.AdminStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	var (
		blogComments, telegramComments int64
		postLikes                      int64
		blogLikes, telegramLikes       int64
		views                          int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		blogComments, err = s.commentRepo.CountByType(gctx, domain.CommentTypeBlog)
		return err
	})
	g.Go(func() (err error) {
		telegramComments, err = s.commentRepo.CountByType(gctx, domain.CommentTypeTelegram)
		return err
	})
	g.Go(func() (err error) {
		postLikes, err = s.likeRepo.SumPostLikes(gctx)
		return err
	})
	g.Go(func() (err error) {
		blogLikes, err = s.likeRepo.CountCommentLikes(gctx, domain.CommentTypeBlog)
		return err
	})
	g.Go(func() (err error) {
		telegramLikes, err = s.likeRepo.CountCommentLikes(gctx, domain.CommentTypeTelegram)
		return err
	})
	g.Go(func() error {
		if s.links == nil {
			return nil
		}
		v, err := s.links.TotalViews(gctx)
		if err != nil && !errors.Is(err, domain.ErrNotConfigured) {
			log.Printf("Warning: Sink counters unavailable: %v", err)
		}
		views = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &domain.AdminStats{
		Comments: domain.CommentCounts{
			Blog:     blogComments,
			Telegram: telegramComments,
			Total:    blogComments + telegramComments,
		},
		Likes: domain.LikeCounts{
			Posts:    postLikes,
			Comments: blogLikes + telegramLikes,
			Total:    postLikes + blogLikes + telegramLikes,
		},
		Sink: domain.SinkCounts{TotalViews: views},
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, statsJSON, 5*time.Minute).Err()
		}
	}

	return stats, nil
}
