package domain

import "time"

type Post struct {
	Slug        string    `json:"slug" yaml:"-"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	PubDate     time.Time `json:"pubDate" yaml:"pubDate"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Categories  []string  `json:"categories" yaml:"categories"`
	Draft       bool      `json:"draft" yaml:"draft"`
	Body        string    `json:"-" yaml:"-"`

	LongURL   string `json:"longUrl" yaml:"-"`
	ShortLink string `json:"shortLink,omitempty" yaml:"-"`
}

// URL prefers the short link and falls back to the canonical post address.
func (p Post) URL() string {
	if p.ShortLink != "" {
		return p.ShortLink
	}
	return p.LongURL
}

type SearchInput struct {
	Query      string   `json:"query" validate:"max=200"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

type SearchHit struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Slug        string   `json:"slug"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	PubDate     string   `json:"pubDate"`
	Snippet     string   `json:"snippet"`
	Score       int      `json:"score"`
}

type SearchResult struct {
	Results  []SearchHit `json:"results"`
	Total    int         `json:"total"`
	Keywords []string    `json:"keywords"`
}
