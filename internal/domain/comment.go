package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CommentType string

const (
	CommentTypeBlog     CommentType = "blog"
	CommentTypeTelegram CommentType = "telegram"
)

// ParseCommentType maps the query value to a type; empty means blog.
func ParseCommentType(s string) (CommentType, bool) {
	switch CommentType(s) {
	case "", CommentTypeBlog:
		return CommentTypeBlog, true
	case CommentTypeTelegram:
		return CommentTypeTelegram, true
	}
	return "", false
}

// DisplayMode selects how a comment list is shaped for the client.
type DisplayMode string

const (
	DisplayFull      DisplayMode = "full"
	DisplayCompact   DisplayMode = "compact"
	DisplayGuestbook DisplayMode = "guestbook"
)

func ParseDisplayMode(s string) (DisplayMode, bool) {
	switch DisplayMode(s) {
	case "", DisplayFull:
		return DisplayFull, true
	case DisplayCompact:
		return DisplayCompact, true
	case DisplayGuestbook:
		return DisplayGuestbook, true
	}
	return "", false
}

type Comment struct {
	ID         uuid.UUID   `json:"id" db:"comment_id"`
	Type       CommentType `json:"commentType" db:"comment_type"`
	Identifier string      `json:"identifier" db:"identifier"`
	ParentID   *uuid.UUID  `json:"parentId,omitempty" db:"parent_id"`
	Nickname   string      `json:"nickname" db:"nickname"`
	Email      string      `json:"email,omitempty" db:"email"`
	Website    *string     `json:"website,omitempty" db:"website"`
	Avatar     string      `json:"avatar" db:"avatar"`
	Content    string      `json:"content" db:"content"`
	IsAdmin    bool        `json:"isAdmin" db:"is_admin"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`

	Likes   int  `json:"likes" db:"-"`
	IsLiked bool `json:"isLiked" db:"-"`
}

// CommentNode is a comment placed in a reply tree. Level is 0 for roots.
type CommentNode struct {
	Comment
	Level    int            `json:"level"`
	Children []*CommentNode `json:"children"`
}

// FlatComment is a tree node emitted in depth-first order without its children.
type FlatComment struct {
	Comment
	Level int `json:"level"`
}

type CommentAuthor struct {
	Nickname string  `json:"nickname" validate:"required,max=64"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Website  *string `json:"website" validate:"omitempty,url,max=512"`
	Avatar   string  `json:"avatar" validate:"omitempty,url,max=1024"`
}

type CreateCommentInput struct {
	Identifier  string         `json:"identifier" validate:"required,max=512"`
	CommentType string         `json:"commentType" validate:"omitempty,oneof=blog telegram"`
	Content     string         `json:"content" validate:"required,max=5000"`
	ParentID    *uuid.UUID     `json:"parentId"`
	UserInfo    *CommentAuthor `json:"userInfo"`
}

type ListCommentsQuery struct {
	Identifier string
	Type       CommentType
	DeviceID   string
	Mode       DisplayMode
}

// CommentList carries either the flattened or the tree shape, depending on Mode.
type CommentList struct {
	Mode DisplayMode
	Flat []FlatComment
	Tree []*CommentNode
}

// AdminIdentity is the profile attached to comments written by the site owner.
type AdminIdentity struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	Avatar   string `json:"avatar"`
}

// ReservedIdentities are nicknames and emails only the admin may use.
type ReservedIdentities []string

func (r ReservedIdentities) Matches(nickname, email string) bool {
	nickname = strings.ToLower(strings.TrimSpace(nickname))
	email = strings.ToLower(strings.TrimSpace(email))
	for _, name := range r {
		name = strings.ToLower(name)
		if name == nickname || name == email {
			return true
		}
	}
	return false
}
