package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/gorilla/feeds"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
	"maple-blog/internal/pkg/markup"
)

const noContent = "No content available."

type PostSource interface {
	Posts(ctx context.Context) ([]domain.Post, error)
}

type Service interface {
	RSS(ctx context.Context) (string, error)
	Robots() string
}

type service struct {
	posts       PostSource
	siteURL     string
	title       string
	description string
	author      string
	language    string
}

func NewService(posts PostSource, cfg *config.Config) Service {
	return &service{
		posts:       posts,
		siteURL:     strings.TrimRight(cfg.SiteURL, "/"),
		title:       cfg.SiteTitle,
		description: cfg.SiteDescription,
		author:      cfg.SiteAuthor,
		language:    cfg.Locale,
	}
}

func (s *service) RSS(ctx context.Context) (string, error) {
	posts, err := s.posts.Posts(ctx)
	if err != nil {
		return "", err
	}

	feed := &feeds.Feed{
		Title:       s.title,
		Link:        &feeds.Link{Href: s.siteURL + "/"},
		Description: s.description,
		Author:      &feeds.Author{Name: s.author},
	}
	if len(posts) > 0 {
		feed.Created = posts[0].PubDate
	}

	for _, post := range posts {
		body := noContent
		if strings.TrimSpace(post.Body) != "" {
			rendered, err := markup.Post(post.Body)
			if err != nil {
				return "", fmt.Errorf("render %s: %w", post.Slug, err)
			}
			body = markup.AbsoluteURLs(rendered, s.siteURL)
		}

		link := s.siteURL + "/blog/" + post.Slug + "/"
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Description: post.Description,
			Author:      &feeds.Author{Name: s.author},
			Created:     post.PubDate,
			Content:     body,
		})
	}

	rss := (&feeds.Rss{Feed: feed}).RssFeed()
	rss.Language = s.language
	return feeds.ToXML(rss)
}

func (s *service) Robots() string {
	return fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s/sitemap-index.xml\n", s.siteURL)
}
