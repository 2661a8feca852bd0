package domain

import "errors"

var (
	ErrCommentNotFound   = errors.New("comment not found")
	ErrParentNotFound    = errors.New("parent comment not found")
	ErrGuestInfoRequired = errors.New("nickname and email are required")
	ErrReservedIdentity  = errors.New("this nickname or email is reserved")
	ErrCommentTypeMatch  = errors.New("comment type does not match")
	ErrEmptyComment      = errors.New("comment content is empty")
	ErrNotConfigured     = errors.New("service not configured")
	ErrPostNotFound      = errors.New("post not found")
)
