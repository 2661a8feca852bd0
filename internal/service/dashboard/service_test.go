package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"maple-blog/internal/domain"
	"maple-blog/internal/mocks"
	"maple-blog/internal/service/dashboard"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRepos(commentRepo *mocks.CommentRepository, likeRepo *mocks.LikeRepository) {
	commentRepo.On("CountByType", mock.Anything, domain.CommentTypeBlog).Return(int64(10), nil)
	commentRepo.On("CountByType", mock.Anything, domain.CommentTypeTelegram).Return(int64(4), nil)
	likeRepo.On("SumPostLikes", mock.Anything).Return(int64(20), nil)
	likeRepo.On("CountCommentLikes", mock.Anything, domain.CommentTypeBlog).Return(int64(3), nil)
	likeRepo.On("CountCommentLikes", mock.Anything, domain.CommentTypeTelegram).Return(int64(2), nil)
}

func TestGetStats(t *testing.T) {
	commentRepo := new(mocks.CommentRepository)
	likeRepo := new(mocks.LikeRepository)
	links := new(mocks.ShortLinkService)
	setupRepos(commentRepo, likeRepo)
	links.On("TotalViews", mock.Anything).Return(int64(999), nil)

	svc := dashboard.NewService(commentRepo, likeRepo, links, nil)
	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.CommentCounts{Blog: 10, Telegram: 4, Total: 14}, stats.Comments)
	assert.Equal(t, domain.LikeCounts{Posts: 20, Comments: 5, Total: 25}, stats.Likes)
	assert.Equal(t, int64(999), stats.Sink.TotalViews)
}

func TestGetStatsSinkFailureYieldsZero(t *testing.T) {
	commentRepo := new(mocks.CommentRepository)
	likeRepo := new(mocks.LikeRepository)
	links := new(mocks.ShortLinkService)
	setupRepos(commentRepo, likeRepo)
	links.On("TotalViews", mock.Anything).Return(int64(0), errors.New("timeout"))

	svc := dashboard.NewService(commentRepo, likeRepo, links, nil)
	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.Sink.TotalViews)
	assert.Equal(t, int64(14), stats.Comments.Total)
}

func TestGetStatsRepositoryFailure(t *testing.T) {
	commentRepo := new(mocks.CommentRepository)
	likeRepo := new(mocks.LikeRepository)
	commentRepo.On("CountByType", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
	likeRepo.On("SumPostLikes", mock.Anything).Return(int64(0), nil)
	likeRepo.On("CountCommentLikes", mock.Anything, mock.Anything).Return(int64(0), nil)

	svc := dashboard.NewService(commentRepo, likeRepo, nil, nil)
	_, err := svc.GetStats(context.Background())

	assert.ErrorContains(t, err, "db down")
}

func TestGetStatsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	commentRepo := new(mocks.CommentRepository)
	likeRepo := new(mocks.LikeRepository)
	setupRepos(commentRepo, likeRepo)

	svc := dashboard.NewService(commentRepo, likeRepo, nil, rdb)
	first, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	second, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	commentRepo.AssertNumberOfCalls(t, "CountByType", 2)
	assert.True(t, mr.Exists("dashboard:stats"))
}
