package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chalkboard-edu/lessonplan-backend/internal/config"
	"github.com/chalkboard-edu/lessonplan-backend/internal/lessonplan"
	"github.com/chalkboard-edu/lessonplan-backend/internal/middlewares"
)

type RouterConfig struct {
	LessonPlanHandler *lessonplan.Handler
	FrontendOrigin    string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.FrontendOrigin))

	r.Get("/", health)
	r.Mount("/generate", lessonplan.Routes(cfg.LessonPlanHandler))

	return r
}

// health is the liveness/identity probe the front-end pings on load.
func health(w http.ResponseWriter, _ *http.Request) {
	config.JSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Backend is Running! Connect to /generate",
	})
}
