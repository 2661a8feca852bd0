package mocks

import (
	"context"

	"maple-blog/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type LikeRepository struct {
	mock.Mock
}

func (m *LikeRepository) ListByComments(ctx context.Context, commentIDs []uuid.UUID) ([]domain.CommentLike, error) {
	args := m.Called(ctx, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommentLike), args.Error(1)
}

func (m *LikeRepository) ToggleComment(ctx context.Context, commentID uuid.UUID, deviceID string) (int, bool, error) {
	args := m.Called(ctx, commentID, deviceID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *LikeRepository) CountCommentLikes(ctx context.Context, commentType domain.CommentType) (int64, error) {
	args := m.Called(ctx, commentType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LikeRepository) PostStatus(ctx context.Context, postID, deviceID string) (int, bool, error) {
	args := m.Called(ctx, postID, deviceID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *LikeRepository) TogglePost(ctx context.Context, postID, deviceID string) (int, bool, error) {
	args := m.Called(ctx, postID, deviceID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *LikeRepository) SumPostLikes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
