package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
	"maple-blog/internal/metrics"
)

const (
	cacheSize  = 500
	cacheTTL   = 5 * time.Minute
	maxRetries = 3
	maxPage    = 4 << 20
	userAgent  = "Mozilla/5.0 (compatible; maple-blog/1.0; +https://core.telegram.org/widgets)"
)

var postID = regexp.MustCompile(`^[0-9]+$`)

// HTTPClient is the subset of *http.Client the service needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is a non-2xx answer from Telegram.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("telegram returned status %d", e.Status)
}

type Service interface {
	ChannelFeed(ctx context.Context, query domain.ChannelQuery) (*domain.ChannelInfo, error)
	PostByID(ctx context.Context, id string) (*domain.TelegramPost, error)
}

type service struct {
	host    string
	channel string
	client  HTTPClient
	parser  *Parser
	cache   *lru.LRU[string, []byte]
	group   singleflight.Group
	backoff func() retry.Backoff
}

func NewService(cfg *config.Config, client HTTPClient) Service {
	if client == nil {
		client = newHTTPClient(cfg.HTTPProxy)
	}
	return &service{
		host:    cfg.TelegramHost,
		channel: cfg.Channel,
		client:  client,
		parser: &Parser{
			Host:    cfg.TelegramHost,
			Channel: cfg.Channel,
			Locale:  cfg.Locale,
			Now:     time.Now,
		},
		cache: lru.NewLRU[string, []byte](cacheSize, nil, cacheTTL),
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(maxRetries, retry.NewExponential(200*time.Millisecond))
		},
	}
}

func newHTTPClient(proxy string) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			log.Printf("Warning: ignoring invalid HTTP_PROXY %q: %v", proxy, err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &http.Client{Timeout: 15 * time.Second, Transport: transport}
}

func (s *service) ChannelFeed(ctx context.Context, query domain.ChannelQuery) (*domain.ChannelInfo, error) {
	query.ID = ""
	page, err := s.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.parser.ParseChannel(bytes.NewReader(page))
}

func (s *service) PostByID(ctx context.Context, id string) (*domain.TelegramPost, error) {
	if !postID.MatchString(id) {
		return nil, domain.ErrPostNotFound
	}
	page, err := s.fetch(ctx, domain.ChannelQuery{ID: id})
	if err != nil {
		return nil, err
	}
	post, err := s.parser.ParsePost(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *service) pageURL(query domain.ChannelQuery) string {
	if query.ID != "" {
		return fmt.Sprintf("https://%s/%s/%s?embed=1&mode=tme", s.host, s.channel, query.ID)
	}

	target := fmt.Sprintf("https://%s/s/%s", s.host, s.channel)
	params := url.Values{}
	if query.Before != "" {
		params.Set("before", query.Before)
	}
	if query.After != "" {
		params.Set("after", query.After)
	}
	if query.Q != "" {
		params.Set("q", query.Q)
	}
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return target
}

// fetch returns the raw page for query. Pages are cached briefly and
// concurrent misses for the same page share one upstream request.
func (s *service) fetch(ctx context.Context, query domain.ChannelQuery) ([]byte, error) {
	if s.channel == "" {
		return nil, fmt.Errorf("telegram channel: %w", domain.ErrNotConfigured)
	}

	key := s.pageURL(query)
	if page, ok := s.cache.Get(key); ok {
		metrics.TelegramFetches.WithLabelValues("cache", metrics.OutcomeOK).Inc()
		return page, nil
	}

	// The download is shared by every waiter, so one caller going away must
	// not cancel it for the rest. The client timeout still bounds it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		start := time.Now()
		page, err := s.download(shared, key)
		metrics.TelegramFetchDuration.Observe(time.Since(start).Seconds())
		metrics.TelegramFetches.WithLabelValues("upstream", metrics.Outcome(err)).Inc()
		if err != nil {
			return nil, err
		}
		s.cache.Add(key, page)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *service) download(ctx context.Context, target string) ([]byte, error) {
	var page []byte
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/html")

		resp, err := s.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return retry.RetryableError(&StatusError{Status: resp.StatusCode})
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{Status: resp.StatusCode}
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxPage))
		if err != nil {
			return retry.RetryableError(err)
		}
		page = body
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	return page, nil
}
