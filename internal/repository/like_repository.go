package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"maple-blog/internal/domain"
)

type LikeRepository interface {
	ListByComments(ctx context.Context, commentIDs []uuid.UUID) ([]domain.CommentLike, error)
	ToggleComment(ctx context.Context, commentID uuid.UUID, deviceID string) (count int, liked bool, err error)
	CountCommentLikes(ctx context.Context, commentType domain.CommentType) (int64, error)

	PostStatus(ctx context.Context, postID, deviceID string) (count int, liked bool, err error)
	TogglePost(ctx context.Context, postID, deviceID string) (count int, liked bool, err error)
	SumPostLikes(ctx context.Context) (int64, error)
}

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) ListByComments(ctx context.Context, commentIDs []uuid.UUID) ([]domain.CommentLike, error) {
	if len(commentIDs) == 0 {
		return []domain.CommentLike{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT comment_id, device_id, created_at
		FROM comment_likes
		WHERE comment_id IN (?)`, commentIDs)
	if err != nil {
		return nil, err
	}

	query = r.db.Rebind(query)
	likes := []domain.CommentLike{}
	err = r.db.SelectContext(ctx, &likes, query, args...)
	return likes, err
}

// ToggleComment removes the device's like if present, otherwise records one,
// and returns the recounted total.
func (r *likeRepository) ToggleComment(ctx context.Context, commentID uuid.UUID, deviceID string) (int, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE comment_id = $1 AND device_id = $2`, commentID, deviceID)
	if err != nil {
		return 0, false, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, false, err
	}

	liked := removed == 0
	if liked {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO comment_likes (comment_id, device_id)
			VALUES ($1, $2)
			ON CONFLICT (comment_id, device_id) DO NOTHING`, commentID, deviceID)
		if err != nil {
			return 0, false, err
		}
	}

	var count int
	if err := tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID); err != nil {
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return count, liked, nil
}

func (r *likeRepository) CountCommentLikes(ctx context.Context, commentType domain.CommentType) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM comment_likes l
		INNER JOIN comments c ON c.comment_id = l.comment_id
		WHERE c.comment_type = $1`
	err := r.db.GetContext(ctx, &count, query, commentType)
	return count, err
}

func (r *likeRepository) PostStatus(ctx context.Context, postID, deviceID string) (int, bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT likes FROM post_likes WHERE post_id = $1`, postID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	if deviceID == "" {
		return count, false, nil
	}

	var liked bool
	err = r.db.GetContext(ctx, &liked,
		`SELECT EXISTS(SELECT 1 FROM post_like_logs WHERE post_id = $1 AND device_id = $2)`, postID, deviceID)
	if err != nil {
		return 0, false, err
	}
	return count, liked, nil
}

// TogglePost flips the device's like log row and moves the counter with it.
// The counter row is created on the first like and never drops below zero.
func (r *likeRepository) TogglePost(ctx context.Context, postID, deviceID string) (int, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM post_like_logs WHERE post_id = $1 AND device_id = $2`, postID, deviceID)
	if err != nil {
		return 0, false, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, false, err
	}

	var count int
	if removed > 0 {
		err = tx.GetContext(ctx, &count, `
			UPDATE post_likes
			SET likes = GREATEST(likes - 1, 0), updated_at = NOW()
			WHERE post_id = $1
			RETURNING likes`, postID)
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
		}
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_like_logs (post_id, device_id) VALUES ($1, $2)`, postID, deviceID)
		if err != nil {
			return 0, false, err
		}
		err = tx.GetContext(ctx, &count, `
			INSERT INTO post_likes (post_id, likes)
			VALUES ($1, 1)
			ON CONFLICT (post_id) DO UPDATE SET likes = post_likes.likes + 1, updated_at = NOW()
			RETURNING likes`, postID)
	}
	if err != nil {
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return count, removed == 0, nil
}

func (r *likeRepository) SumPostLikes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(likes), 0) FROM post_likes`)
	return total, err
}
