package domain

import (
	"time"

	"github.com/google/uuid"
)

type CommentLike struct {
	CommentID uuid.UUID `db:"comment_id"`
	DeviceID  string    `db:"device_id"`
	CreatedAt time.Time `db:"created_at"`
}

// LikeResult is the server-authoritative state returned by a toggle.
type LikeResult struct {
	Success   bool `json:"success"`
	LikeCount int  `json:"likeCount"`
	IsLiked   bool `json:"isLiked"`
}

type LikeStatus struct {
	LikeCount int  `json:"likeCount"`
	HasLiked  bool `json:"hasLiked"`
}

type TogglePostLikeInput struct {
	PostID   string `json:"postId" validate:"required,max=512"`
	DeviceID string `json:"deviceId" validate:"required,max=128"`
}

type ToggleCommentLikeInput struct {
	CommentID   uuid.UUID `json:"commentId" validate:"required"`
	CommentType string    `json:"commentType" validate:"required,oneof=blog telegram"`
	DeviceID    string    `json:"deviceId" validate:"required,max=128"`
}
