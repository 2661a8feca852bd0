package handler

import (
	"maple-blog/internal/config"
	"maple-blog/internal/service"
)

type Handlers struct {
	Auth      *AuthHandler
	Comment   *CommentHandler
	Like      *LikeHandler
	Dashboard *DashboardHandler
	Search    *SearchHandler
	Telegram  *TelegramHandler
	Feed      *FeedHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(services.Auth, cfg),
		Comment:   NewCommentHandler(services.Comment, services.Like),
		Like:      NewLikeHandler(services.Like),
		Dashboard: NewDashboardHandler(services.Dashboard, services.ShortLink, services.Comment),
		Search:    NewSearchHandler(services.Search),
		Telegram:  NewTelegramHandler(services.Telegram),
		Feed:      NewFeedHandler(services.Feed),
	}
}
