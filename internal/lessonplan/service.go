package lessonplan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/chalkboard-edu/lessonplan-backend/internal/config"
	"github.com/chalkboard-edu/lessonplan-backend/internal/llm"
)

// Sampling parameters sent with every generation. Mid-range temperature
// favors formatting adherence over creativity.
const (
	temperature = 0.5
	maxTokens   = 1024
)

// Service generates a lesson plan from a validated request. The returned
// value is *LessonPlan or *NestedLessonPlan depending on the deployed
// template.
type Service interface {
	Generate(ctx context.Context, req LessonRequest) (any, error)
}

type service struct {
	provider llm.Provider
	template Template
	timeout  time.Duration
}

// NewService wires a provider and the deployment's template into a
// Service. The pipeline per request is strictly linear: build prompt,
// call the model once, normalize. No retries, no shared state.
func NewService(provider llm.Provider, tpl Template, timeout time.Duration) Service {
	return &service{provider: provider, template: tpl, timeout: timeout}
}

func (s *service) Generate(ctx context.Context, req LessonRequest) (any, error) {
	budget := SplitDuration(req.DurationMinutes())

	genReq := llm.Request{
		System:      s.template.System,
		User:        BuildUserMessage(req, budget),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if s.template.Shape == ShapeFlat {
		genReq.Schema = &llm.ResponseSchema{
			Name:       "lesson-plan",
			Definition: flatResponseSchema(),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, genReq)
	if err != nil {
		return nil, err
	}

	// Raw output goes to the log before normalization so prompt drift
	// can be debugged offline. Must never block or alter the response.
	config.WithContext(ctx).WithFields(logrus.Fields{
		"generation_id": uuid.NewString(),
		"model":         resp.Model,
		"finish_reason": resp.FinishReason,
		"template":      s.template.ID,
	}).Debugf("raw model output:\n%s", resp.Text)

	return Normalize(*resp, s.template)
}
