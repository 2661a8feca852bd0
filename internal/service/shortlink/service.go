package shortlink

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"maple-blog/internal/config"
	"maple-blog/internal/domain"
	"maple-blog/internal/metrics"
)

const (
	cachePrefix     = "shortlink:"
	cacheTTL        = 7 * 24 * time.Hour
	defaultTimezone = "Asia/Shanghai"
)

var (
	ErrInvalidReport = errors.New("invalid report type")

	sinkSlug = regexp.MustCompile(`(?i)^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// HTTPClient is the subset of *http.Client the service needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// UpstreamError reports a non-2xx answer from Sink.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("sink returned %d: %s", e.Status, e.Body)
}

type Service interface {
	Configured() bool
	Get(ctx context.Context, longURL, slug string) (string, error)
	Report(ctx context.Context, report string, query url.Values) (json.RawMessage, error)
	TotalViews(ctx context.Context) (int64, error)
}

type service struct {
	baseURL string
	apiKey  string
	client  HTTPClient
	redis   *redis.Client
	local   sync.Map
	now     func() time.Time
}

func NewService(cfg *config.Config, client HTTPClient, redis *redis.Client) Service {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &service{
		baseURL: cfg.SinkPublicURL,
		apiKey:  cfg.SinkAPIKey,
		client:  client,
		redis:   redis,
		now:     time.Now,
	}
}

func (s *service) Configured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

// SinkSlug returns the slug sent to Sink: valid slugs pass through, anything
// else becomes the first 7 hex chars of its SHA-1.
func SinkSlug(slug string) string {
	if slug == "" || sinkSlug.MatchString(slug) {
		return slug
	}
	sum := sha1.Sum([]byte(slug))
	return hex.EncodeToString(sum[:])[:7]
}

// Get returns the short link for longURL, creating it on first use. With Sink
// unconfigured it returns "" and no error.
func (s *service) Get(ctx context.Context, longURL, slug string) (string, error) {
	key := slug
	if key == "" {
		key = longURL
	}

	if cached, ok := s.local.Load(key); ok {
		return cached.(string), nil
	}
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cachePrefix+key).Result(); err == nil && cached != "" {
			s.local.Store(key, cached)
			return cached, nil
		}
	}

	if !s.Configured() {
		log.Printf("Warning: Sink is not configured, short link for %s skipped", longURL)
		return "", nil
	}

	payload := map[string]string{"url": longURL}
	if slug != "" {
		payload["slug"] = SinkSlug(slug)
	}

	var out struct {
		ShortLink string `json:"shortLink"`
	}
	err := s.do(ctx, http.MethodPost, "/api/link/upsert", nil, payload, &out)
	metrics.SinkRequests.WithLabelValues("upsert", metrics.Outcome(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("short link for %s: %w", longURL, err)
	}
	if out.ShortLink == "" {
		return "", nil
	}

	s.local.Store(key, out.ShortLink)
	if s.redis != nil {
		_ = s.redis.Set(ctx, cachePrefix+key, out.ShortLink, cacheTTL).Err()
	}
	return out.ShortLink, nil
}

// Report proxies a views or metrics query. period=last-7d expands to a
// startAt/endAt window ending now.
func (s *service) Report(ctx context.Context, report string, query url.Values) (json.RawMessage, error) {
	if report != "views" && report != "metrics" {
		return nil, ErrInvalidReport
	}
	if !s.Configured() {
		return nil, domain.ErrNotConfigured
	}

	params := url.Values{}
	for k, v := range query {
		params[k] = append([]string(nil), v...)
	}
	params.Del("report")

	if period := params.Get("period"); period != "" {
		if period == "last-7d" {
			now := s.now()
			params.Set("startAt", strconv.FormatInt(now.AddDate(0, 0, -7).Unix(), 10))
			params.Set("endAt", strconv.FormatInt(now.Unix(), 10))
			if !params.Has("clientTimezone") {
				params.Set("clientTimezone", defaultTimezone)
			}
		}
		params.Del("period")
	}

	var out json.RawMessage
	err := s.do(ctx, http.MethodGet, "/api/stats/"+report, params, nil, &out)
	metrics.SinkRequests.WithLabelValues(report, metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) TotalViews(ctx context.Context) (int64, error) {
	if !s.Configured() {
		return 0, domain.ErrNotConfigured
	}

	var out struct {
		Data []struct {
			Visits int64 `json:"visits"`
		} `json:"data"`
	}
	err := s.do(ctx, http.MethodGet, "/api/stats/counters", nil, nil, &out)
	metrics.SinkRequests.WithLabelValues("counters", metrics.Outcome(err)).Inc()
	if err != nil {
		return 0, err
	}
	if len(out.Data) == 0 {
		return 0, nil
	}
	return out.Data[0].Visits, nil
}

func (s *service) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	target := s.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{Status: resp.StatusCode, Body: string(text)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
