// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_like_toggles_total",
		Help: "Like toggles by entity kind, resulting state and outcome",
	}, []string{"entity", "state", "outcome"})

	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_comments_created_total",
		Help: "Comments created by type and author kind",
	}, []string{"type", "author"})

	CommentListCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_comment_list_cache_total",
		Help: "Comment list cache lookups by result",
	}, []string{"result"})

	TelegramFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_telegram_fetches_total",
		Help: "Telegram page fetches by source and outcome",
	}, []string{"source", "outcome"})

	TelegramFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blog_telegram_fetch_duration_seconds",
		Help:    "Duration of upstream Telegram page fetches, retries included",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	SinkRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_sink_requests_total",
		Help: "Requests to the Sink link service by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
