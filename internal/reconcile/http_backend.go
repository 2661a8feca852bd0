package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"maple-blog/internal/domain"
)

// ErrRejected is returned when the API answers a toggle with success=false.
var ErrRejected = errors.New("api rejected the toggle")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Body)
}

// HTTPBackend talks to the blog API. Requests are never retried.
type HTTPBackend struct {
	baseURL string
	client  HTTPClient
}

func NewHTTPBackend(baseURL string, client HTTPClient) *HTTPBackend {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPBackend{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (b *HTTPBackend) Toggle(ctx context.Context, key Key, deviceID string) (State, error) {
	var (
		path string
		body any
	)
	switch key.Kind {
	case KindPost:
		path = "/api/like"
		body = domain.TogglePostLikeInput{PostID: key.ID, DeviceID: deviceID}
	case KindComment:
		path = "/api/comments/like"
		body = map[string]string{
			"commentId":   key.ID,
			"commentType": string(key.CommentType),
			"deviceId":    deviceID,
		}
	default:
		return State{}, fmt.Errorf("unknown entity kind %q", key.Kind)
	}

	var out domain.LikeResult
	if err := b.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return State{}, err
	}
	if !out.Success {
		return State{}, ErrRejected
	}
	return State{LikeCount: out.LikeCount, IsLiked: out.IsLiked}, nil
}

func (b *HTTPBackend) PostStatus(ctx context.Context, slug, deviceID string) (State, error) {
	query := url.Values{"postId": {slug}, "deviceId": {deviceID}}

	var out domain.LikeStatus
	if err := b.do(ctx, http.MethodGet, "/api/like", query, nil, &out); err != nil {
		return State{}, err
	}
	return State{LikeCount: out.LikeCount, IsLiked: out.HasLiked}, nil
}

func (b *HTTPBackend) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := b.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
