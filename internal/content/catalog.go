package content

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"maple-blog/internal/domain"
)

const shortLinkWorkers = 8

// ShortLinker resolves the public short link for a post URL.
type ShortLinker interface {
	Get(ctx context.Context, longURL, slug string) (string, error)
}

type Options struct {
	SiteURL       string
	IncludeDrafts bool
}

// Catalog is the in-memory list of published posts. It is loaded once and
// kept until Reset.
type Catalog struct {
	source Source
	links  ShortLinker
	opts   Options

	mu    sync.Mutex
	posts []domain.Post
}

func NewCatalog(source Source, links ShortLinker, opts Options) *Catalog {
	opts.SiteURL = strings.TrimRight(opts.SiteURL, "/")
	return &Catalog{source: source, links: links, opts: opts}
}

// Posts returns every post, newest first.
func (c *Catalog) Posts(ctx context.Context) ([]domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.posts != nil {
		return c.posts, nil
	}

	posts, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.posts = posts
	return posts, nil
}

func (c *Catalog) Get(ctx context.Context, slug string) (*domain.Post, error) {
	posts, err := c.Posts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (c *Catalog) Reset() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *Catalog) load(ctx context.Context) ([]domain.Post, error) {
	files, err := c.source.Files(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(files))
	for _, f := range files {
		post, err := parsePost(f)
		if err != nil {
			log.Printf("Skipping post: %v", err)
			continue
		}
		if post.Draft && !c.opts.IncludeDrafts {
			continue
		}
		post.LongURL = c.opts.SiteURL + "/blog/" + post.Slug
		posts = append(posts, post)
	}

	if c.links != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(shortLinkWorkers)
		for i := range posts {
			post := &posts[i]
			g.Go(func() error {
				link, err := c.links.Get(gctx, post.LongURL, post.Slug)
				if err != nil {
					log.Printf("Short link for %s: %v", post.Slug, err)
					return nil
				}
				post.ShortLink = link
				return nil
			})
		}
		_ = g.Wait()
	}

	slices.SortStableFunc(posts, func(a, b domain.Post) int {
		return b.PubDate.Compare(a.PubDate)
	})
	return posts, nil
}
