package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"maple-blog/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListByScope(ctx context.Context, commentType domain.CommentType, identifier string) ([]domain.Comment, error)
	ListAll(ctx context.Context, commentType domain.CommentType, params domain.PaginationParams) ([]domain.Comment, int64, error)
	CountByType(ctx context.Context, commentType domain.CommentType) (int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `comment_id, comment_type, identifier, parent_id, nickname, email, website, avatar, content, is_admin, created_at`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, comment_type, identifier, parent_id, nickname, email, website, avatar, content, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.Type, comment.Identifier, comment.ParentID,
		comment.Nickname, comment.Email, comment.Website, comment.Avatar,
		comment.Content, comment.IsAdmin,
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes the comment; replies and likes go with it through the
// ON DELETE CASCADE foreign keys. It reports how many rows were removed in
// total, including descendants.
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		WITH RECURSIVE thread AS (
			SELECT comment_id FROM comments WHERE comment_id = $1
			UNION ALL
			SELECT c.comment_id FROM comments c INNER JOIN thread t ON c.parent_id = t.comment_id
		)
		DELETE FROM comments WHERE comment_id IN (SELECT comment_id FROM thread)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *commentRepository) ListByScope(ctx context.Context, commentType domain.CommentType, identifier string) ([]domain.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE comment_type = $1 AND identifier = $2
		ORDER BY created_at ASC`

	comments := []domain.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, commentType, identifier)
	return comments, err
}

// ListAll pages through every comment newest first. An empty type lists both kinds.
func (r *commentRepository) ListAll(ctx context.Context, commentType domain.CommentType, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM comments WHERE ($1 = '' OR comment_type = $1)`
	if err := r.db.GetContext(ctx, &total, countQuery, string(commentType)); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE ($1 = '' OR comment_type = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	comments := []domain.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, string(commentType), params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) CountByType(ctx context.Context, commentType domain.CommentType) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM comments WHERE comment_type = $1`
	err := r.db.GetContext(ctx, &count, query, commentType)
	return count, err
}
