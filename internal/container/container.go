package container

import (
	"context"
	"fmt"

	"github.com/chalkboard-edu/lessonplan-backend/internal/config"
	"github.com/chalkboard-edu/lessonplan-backend/internal/lessonplan"
	"github.com/chalkboard-edu/lessonplan-backend/internal/llm"
)

type Container struct {
	LessonPlanContainer *lessonplan.LessonPlanContainer
	FrontendOrigin      string
}

// New wires the whole application once at process start. A missing LLM
// credential or unknown template surfaces here and prevents the process
// from serving at all, instead of failing every request later.
func New(ctx context.Context) (*Container, error) {
	config.Init()

	llmCfg := llm.FromEnv()
	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	tpl, err := lessonplan.TemplateByID(config.Getenv("LESSON_TEMPLATE", lessonplan.DefaultTemplateID))
	if err != nil {
		return nil, fmt.Errorf("init lesson template: %w", err)
	}

	return &Container{
		LessonPlanContainer: lessonplan.NewLessonPlanContainer(provider, tpl, llmCfg.Timeout),
		FrontendOrigin:      config.Getenv("FRONTEND_ORIGIN", "http://localhost:3000"),
	}, nil
}
