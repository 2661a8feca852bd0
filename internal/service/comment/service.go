package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
	"maple-blog/internal/metrics"
	"maple-blog/internal/pkg/markup"
	"maple-blog/internal/repository"
	"maple-blog/internal/service/email"
)

const cacheTTL = 5 * time.Minute

type Service interface {
	List(ctx context.Context, query domain.ListCommentsQuery) (*domain.CommentList, error)
	Create(ctx context.Context, input domain.CreateCommentInput, asAdmin bool) (*domain.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, commentType domain.CommentType, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	SetNotificationService(emailSvc email.Service, recipient string)
}

type service struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	redis       *redis.Client

	admin    domain.AdminIdentity
	reserved domain.ReservedIdentities
	siteURL  string

	emailSvc  email.Service
	recipient string
}

func NewService(commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, redis *redis.Client, cfg *config.Config) Service {
	return &service{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		redis:       redis,
		admin: domain.AdminIdentity{
			Nickname: cfg.AdminNickname,
			Email:    cfg.AdminEmail,
			Website:  cfg.AdminWebsite,
			Avatar:   cfg.AdminAvatar,
		},
		reserved: append(domain.ReservedIdentities{cfg.AdminNickname, cfg.AdminEmail}, cfg.AdminAliases...),
		siteURL:  strings.TrimRight(cfg.SiteURL, "/"),
	}
}

func (s *service) SetNotificationService(emailSvc email.Service, recipient string) {
	s.emailSvc = emailSvc
	s.recipient = recipient
}

func cacheKey(commentType domain.CommentType, identifier string) string {
	return fmt.Sprintf("comments:%s:%s", commentType, identifier)
}

// scope returns the raw comments of one identifier, oldest first. The batch
// is cached without like data, which is always read fresh.
func (s *service) scope(ctx context.Context, commentType domain.CommentType, identifier string) ([]domain.Comment, error) {
	key := cacheKey(commentType, identifier)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			var comments []domain.Comment
			if json.Unmarshal([]byte(cached), &comments) == nil {
				metrics.CommentListCache.WithLabelValues("hit").Inc()
				return comments, nil
			}
		}
		metrics.CommentListCache.WithLabelValues("miss").Inc()
	}

	comments, err := s.commentRepo.ListByScope(ctx, commentType, identifier)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(comments); err == nil {
			if err := s.redis.Set(ctx, key, data, cacheTTL).Err(); err != nil {
				log.Printf("Warning: failed to cache comments %s: %v", key, err)
			}
		}
	}

	return comments, nil
}

func (s *service) invalidate(ctx context.Context, commentType domain.CommentType, identifier string) {
	if s.redis != nil {
		key := cacheKey(commentType, identifier)
		if err := s.redis.Del(ctx, key).Err(); err != nil {
			log.Printf("Warning: failed to invalidate comment cache %s: %v", key, err)
		}
	}
}

func (s *service) List(ctx context.Context, query domain.ListCommentsQuery) (*domain.CommentList, error) {
	comments, err := s.scope(ctx, query.Type, query.Identifier)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	list := &domain.CommentList{Mode: query.Mode}
	if len(comments) == 0 {
		list.Flat = []domain.FlatComment{}
		list.Tree = []*domain.CommentNode{}
		return list, nil
	}

	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	likes, err := s.likeRepo.ListByComments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load comment likes: %w", err)
	}

	counts := make(map[uuid.UUID]int, len(comments))
	liked := make(map[uuid.UUID]bool)
	for _, like := range likes {
		counts[like.CommentID]++
		if query.DeviceID != "" && like.DeviceID == query.DeviceID {
			liked[like.CommentID] = true
		}
	}

	for i := range comments {
		c := &comments[i]
		c.Likes = counts[c.ID]
		c.IsLiked = liked[c.ID]
		c.Avatar = ProxyAvatar(c.Avatar)
		c.Email = ""
	}

	if query.Mode == domain.DisplayGuestbook {
		list.Tree = BuildTree(comments, RootsDescending)
	} else {
		list.Flat = Flatten(comments)
	}
	return list, nil
}

func (s *service) Create(ctx context.Context, input domain.CreateCommentInput, asAdmin bool) (*domain.Comment, error) {
	commentType, ok := domain.ParseCommentType(input.CommentType)
	if !ok {
		return nil, fmt.Errorf("unknown comment type %q", input.CommentType)
	}

	comment := &domain.Comment{
		ID:         uuid.New(),
		Type:       commentType,
		Identifier: strings.TrimSpace(input.Identifier),
		ParentID:   input.ParentID,
	}

	if asAdmin {
		comment.Nickname = s.admin.Nickname
		comment.Email = s.admin.Email
		comment.Avatar = s.admin.Avatar
		comment.IsAdmin = true
		if s.admin.Website != "" {
			website := s.admin.Website
			comment.Website = &website
		}
	} else {
		user := input.UserInfo
		if user == nil || strings.TrimSpace(user.Nickname) == "" || strings.TrimSpace(user.Email) == "" {
			return nil, domain.ErrGuestInfoRequired
		}
		if s.reserved.Matches(user.Nickname, user.Email) {
			return nil, domain.ErrReservedIdentity
		}
		comment.Nickname = strings.TrimSpace(user.Nickname)
		comment.Email = strings.TrimSpace(user.Email)
		comment.Avatar = user.Avatar
		if comment.Avatar == "" {
			comment.Avatar = DefaultAvatar(comment.Email)
		}
		if user.Website != nil && strings.TrimSpace(*user.Website) != "" {
			website := strings.TrimSpace(*user.Website)
			comment.Website = &website
		}
	}

	if input.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.Type != comment.Type || parent.Identifier != comment.Identifier {
			return nil, domain.ErrParentNotFound
		}
	}

	content, err := markup.Comment(input.Content)
	if err != nil {
		return nil, fmt.Errorf("render comment: %w", err)
	}
	if strings.TrimSpace(markup.PlainText(content)) == "" && !strings.Contains(content, "<img") {
		return nil, domain.ErrEmptyComment
	}
	comment.Content = content

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidate(ctx, comment.Type, comment.Identifier)

	author := "guest"
	if comment.IsAdmin {
		author = "admin"
	}
	metrics.CommentsCreated.WithLabelValues(string(comment.Type), author).Inc()

	if s.emailSvc != nil && s.recipient != "" && !comment.IsAdmin {
		notice := email.NewCommentNotice{
			AuthorName:  comment.Nickname,
			AuthorEmail: comment.Email,
			CommentType: string(comment.Type),
			Identifier:  comment.Identifier,
			Content:     template.HTML(comment.Content),
			Link:        s.commentLink(comment),
		}
		go func() {
			if err := s.emailSvc.SendNewCommentEmail(context.Background(), s.recipient, notice); err != nil {
				log.Printf("Failed to send new comment email: %v", err)
			}
		}()
	}

	return comment, nil
}

func (s *service) commentLink(c *domain.Comment) string {
	if s.siteURL == "" {
		return ""
	}
	if c.Type == domain.CommentTypeTelegram {
		return fmt.Sprintf("%s/post/%s", s.siteURL, c.Identifier)
	}
	return fmt.Sprintf("%s/blog/%s/", s.siteURL, c.Identifier)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	return comment, nil
}

// Delete removes a comment together with its whole reply thread.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	comment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.commentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("Deleted comment %s with %d rows in its thread", id, removed)

	s.invalidate(ctx, comment.Type, comment.Identifier)
	return nil
}

func (s *service) ListAll(ctx context.Context, commentType domain.CommentType, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	params.Validate()

	comments, total, err := s.commentRepo.ListAll(ctx, commentType, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}
