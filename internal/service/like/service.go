package like

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"maple-blog/internal/domain"
	"maple-blog/internal/metrics"
	"maple-blog/internal/repository"
)

type Service interface {
	PostStatus(ctx context.Context, postID, deviceID string) (*domain.LikeStatus, error)
	TogglePost(ctx context.Context, postID, deviceID string) (*domain.LikeResult, error)
	ToggleComment(ctx context.Context, commentID uuid.UUID, commentType domain.CommentType, deviceID string) (*domain.LikeResult, error)
}

type service struct {
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

func NewService(likeRepo repository.LikeRepository, commentRepo repository.CommentRepository) Service {
	return &service{
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

func (s *service) PostStatus(ctx context.Context, postID, deviceID string) (*domain.LikeStatus, error) {
	count, liked, err := s.likeRepo.PostStatus(ctx, postID, deviceID)
	if err != nil {
		return nil, err
	}
	return &domain.LikeStatus{LikeCount: count, HasLiked: liked}, nil
}

func (s *service) TogglePost(ctx context.Context, postID, deviceID string) (*domain.LikeResult, error) {
	count, liked, err := s.likeRepo.TogglePost(ctx, postID, deviceID)
	record("post", liked, err)
	if err != nil {
		return nil, err
	}
	return &domain.LikeResult{Success: true, LikeCount: count, IsLiked: liked}, nil
}

func (s *service) ToggleComment(ctx context.Context, commentID uuid.UUID, commentType domain.CommentType, deviceID string) (*domain.LikeResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.Type != commentType {
		return nil, domain.ErrCommentTypeMatch
	}

	count, liked, err := s.likeRepo.ToggleComment(ctx, commentID, deviceID)
	record("comment", liked, err)
	if err != nil {
		return nil, err
	}
	return &domain.LikeResult{Success: true, LikeCount: count, IsLiked: liked}, nil
}

func record(entity string, liked bool, err error) {
	metrics.LikeToggles.WithLabelValues(entity, strconv.FormatBool(liked), metrics.Outcome(err)).Inc()
}
