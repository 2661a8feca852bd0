package search

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"maple-blog/internal/domain"
	"maple-blog/internal/pkg/markup"
)

const (
	minQueryLength = 2
	snippetLead    = 50
	snippetLength  = 100
	ellipsis       = "..."

	scoreTitle    = 100
	scoreCategory = 50
	scoreTag      = 30
	scoreContent  = 10

	textCacheSize = 1024
)

var ErrInvalidQuery = errors.New("invalid search query")

// PostSource lists the published posts to search.
type PostSource interface {
	Posts(ctx context.Context) ([]domain.Post, error)
}

type Service interface {
	Search(ctx context.Context, input domain.SearchInput) (*domain.SearchResult, error)
}

type service struct {
	posts PostSource
	texts *lru.Cache[string, string]
}

func NewService(posts PostSource) Service {
	texts, _ := lru.New[string, string](textCacheSize)
	return &service{
		posts: posts,
		texts: texts,
	}
}

func lower(s string) string {
	return strings.Map(unicode.ToLower, s)
}

func (s *service) Search(ctx context.Context, input domain.SearchInput) (*domain.SearchResult, error) {
	query := strings.TrimSpace(input.Query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return nil, ErrInvalidQuery
	}
	keywords := strings.Fields(lower(query))

	posts, err := s.posts.Posts(ctx)
	if err != nil {
		return nil, err
	}

	hits := make([]domain.SearchHit, 0)
	for _, post := range posts {
		if !matchesAny(post.Tags, input.Tags) || !matchesAny(post.Categories, input.Categories) {
			continue
		}
		text, err := s.plainText(post)
		if err != nil {
			return nil, err
		}
		if hit, ok := score(post, text, keywords); ok {
			hits = append(hits, hit)
		}
	}

	slices.SortStableFunc(hits, func(a, b domain.SearchHit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Title, b.Title)
	})

	return &domain.SearchResult{
		Results:  hits,
		Total:    len(hits),
		Keywords: keywords,
	}, nil
}

// matchesAny reports whether values share an entry with filter. An empty
// filter matches everything.
func matchesAny(values, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if slices.Contains(values, f) {
			return true
		}
	}
	return false
}

func containsFold(values []string, keyword string) bool {
	return slices.ContainsFunc(values, func(v string) bool {
		return strings.Contains(lower(v), keyword)
	})
}

func score(post domain.Post, text string, keywords []string) (domain.SearchHit, bool) {
	title := lower(post.Title)
	content := lower(text)

	total := 0
	firstContent := ""
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			total += scoreTitle
		}
		if containsFold(post.Tags, kw) {
			total += scoreTag
		}
		if containsFold(post.Categories, kw) {
			total += scoreCategory
		}
		if strings.Contains(content, kw) {
			total += scoreContent
			if firstContent == "" {
				firstContent = kw
			}
		}
	}
	if total == 0 {
		return domain.SearchHit{}, false
	}

	snippet := post.Description
	if firstContent != "" {
		snippet = excerpt(text, content, firstContent)
	}

	return domain.SearchHit{
		Title:       post.Title,
		Description: post.Description,
		URL:         post.URL(),
		Slug:        post.Slug,
		Tags:        nonNil(post.Tags),
		Categories:  nonNil(post.Categories),
		PubDate:     post.PubDate.Format("2006-01-02"),
		Snippet:     snippet,
		Score:       total,
	}, true
}

// excerpt cuts a window of text around the first occurrence of keyword in
// lowered. lowered must be the rune-for-rune lowercase form of text.
func excerpt(text, lowered, keyword string) string {
	at := strings.Index(lowered, keyword)
	if at < 0 {
		return ""
	}
	pos := utf8.RuneCountInString(lowered[:at])
	runes := []rune(text)

	start := max(0, pos-snippetLead)
	end := min(len(runes), start+snippetLength)

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	b.WriteString(ellipsis)
	return b.String()
}

// plainText renders a post body to searchable text, cached per slug and
// publish date.
func (s *service) plainText(post domain.Post) (string, error) {
	key := post.Slug + "\x00" + post.PubDate.String()
	if text, ok := s.texts.Get(key); ok {
		return text, nil
	}
	rendered, err := markup.Post(post.Body)
	if err != nil {
		return "", err
	}
	text := markup.PlainText(rendered)
	s.texts.Add(key, text)
	return text, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
