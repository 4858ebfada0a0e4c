package lessonplan

import (
	"time"

	"github.com/chalkboard-edu/lessonplan-backend/internal/llm"
)

type LessonPlanContainer struct {
	Service Service
	Handler *Handler
}

func NewLessonPlanContainer(provider llm.Provider, tpl Template, timeout time.Duration) *LessonPlanContainer {
	service := NewService(provider, tpl, timeout)
	handler := NewHandler(service)

	return &LessonPlanContainer{
		Service: service,
		Handler: handler,
	}
}
