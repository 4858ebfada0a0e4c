package lessonplan

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/chalkboard-edu/lessonplan-backend/internal/config"
	"github.com/chalkboard-edu/lessonplan-backend/internal/llm"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Generate handles POST /generate. Validation failures are client
// errors; everything downstream of the gateway maps through writeError.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("invalid lesson request body")
		config.JSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	req.ApplyDefaults()

	if req.DurationMinutes() <= 0 {
		log.Warnf("rejected non-positive duration %d", req.DurationMinutes())
		config.JSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid duration",
			"details": "duration must be a positive number of minutes",
		})
		return
	}

	plan, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, plan)
}

// writeError maps the error taxonomy onto HTTP statuses. Blocked content
// is the client's problem to rephrase (400); everything else is a server
// side failure. Invalid JSON keeps the raw text in the body because
// salvageable content is common.
func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	var blocked *ErrBlockedOrEmpty
	if errors.As(err, &blocked) {
		log.Warnf("generation blocked or empty: %s", blocked.FinishReason)
		config.JSON(w, http.StatusBadRequest, map[string]any{
			"error":   "model returned no content",
			"details": string(blocked.FinishReason),
		})
		return
	}

	var invalid *ErrInvalidJSON
	if errors.As(err, &invalid) {
		log.WithError(invalid.Err).Error("model output failed to parse")
		config.JSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "model output is not valid JSON",
			"content": invalid.Raw,
		})
		return
	}

	if errors.Is(err, ErrPrimaryContentEmpty) {
		log.Error("model returned an empty main phase")
		config.JSON(w, http.StatusInternalServerError, map[string]any{
			"error": "generated lesson plan has no main phase content",
		})
		return
	}

	if errors.Is(err, llm.ErrTimeout) {
		log.WithError(err).Error("LLM request timed out")
		config.JSON(w, http.StatusGatewayTimeout, map[string]any{
			"error": "the model took too long to respond",
		})
		return
	}

	var upstream *llm.ErrUpstream
	if errors.As(err, &upstream) {
		log.WithError(err).Error("upstream LLM failure")
		status := http.StatusBadGateway
		if upstream.StatusCode >= 400 {
			status = upstream.StatusCode
		}
		config.JSON(w, status, map[string]any{
			"error":   "AI provider error",
			"details": upstream.Body,
		})
		return
	}

	log.WithError(err).Error("lesson plan generation failed")
	config.JSON(w, http.StatusInternalServerError, map[string]any{
		"error": "failed to generate lesson plan",
	})
}
