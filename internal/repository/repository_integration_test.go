//go:build integration
// +build integration

package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
	"maple-blog/internal/repository"
)

// openDB connects to DATABASE_URL and applies migrations. Every test works in
// its own scope (random identifier, post and device ids) so runs can share a
// database.
func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := config.NewPostgresDB(&config.Config{DatabaseURL: dsn})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newComment(identifier string, parent *uuid.UUID) *domain.Comment {
	return &domain.Comment{
		ID:         uuid.New(),
		Type:       domain.CommentTypeBlog,
		Identifier: identifier,
		ParentID:   parent,
		Nickname:   "tester",
		Email:      "tester@example.com",
		Avatar:     "https://cravatar.cn/avatar/x",
		Content:    "<p>hi</p>",
	}
}

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(openDB(t))
	identifier := "it-" + uuid.NewString()

	root := newComment(identifier, nil)
	require.NoError(t, repos.Comment.Create(ctx, root))
	assert.False(t, root.CreatedAt.IsZero())

	reply := newComment(identifier, &root.ID)
	require.NoError(t, repos.Comment.Create(ctx, reply))

	listed, err := repos.Comment.ListByScope(ctx, domain.CommentTypeBlog, identifier)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, root.ID, listed[0].ID)

	count, liked, err := repos.Like.ToggleComment(ctx, reply.ID, "dev-a")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, liked)

	likes, err := repos.Like.ListByComments(ctx, []uuid.UUID{root.ID, reply.ID})
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "dev-a", likes[0].DeviceID)

	count, liked, err = repos.Like.ToggleComment(ctx, reply.ID, "dev-a")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, liked)

	removed, err := repos.Comment.Delete(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	gone, err := repos.Comment.GetByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPostLikeToggle(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(openDB(t))
	postID := "it-" + uuid.NewString()

	count, liked, err := repos.Like.PostStatus(ctx, postID, "dev-a")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, liked)

	count, liked, err = repos.Like.TogglePost(ctx, postID, "dev-a")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, liked)

	count, _, err = repos.Like.TogglePost(ctx, postID, "dev-b")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, liked, err = repos.Like.TogglePost(ctx, postID, "dev-a")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, liked)

	count, liked, err = repos.Like.PostStatus(ctx, postID, "dev-b")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, liked)
}
