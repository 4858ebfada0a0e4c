package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chalkboard-edu/lessonplan-backend/internal/config"
)

// loggingProvider is a decorator that records latency and outcome of
// every upstream call. It never alters the response path.
type loggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with call logging.
func WithLogging(p Provider) Provider {
	return &loggingProvider{inner: p}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	entry := config.WithContext(ctx).WithFields(logrus.Fields{
		"model":      l.inner.ModelID(),
		"latency_ms": time.Since(start).Milliseconds(),
	})

	if err != nil {
		entry.WithError(err).Error("LLM request failed")
		return nil, err
	}

	entry.WithFields(logrus.Fields{
		"finish_reason": resp.FinishReason,
		"output_chars":  len(resp.Text),
		"total_tokens":  resp.Usage.TotalTokens,
	}).Info("LLM request completed")

	return resp, nil
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
