package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Comment CommentRepository
	Like    LikeRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Comment: NewCommentRepository(db),
		Like:    NewLikeRepository(db),
	}
}
