package lessonplan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LessonRequest is the inbound payload for a generation request.
// Everything is request-scoped; nothing is persisted.
type LessonRequest struct {
	ClassLevel           string       `json:"class_level"`
	Lesson               string       `json:"lesson"`
	Strand               string       `json:"strand"`
	ContentStandard      string       `json:"content_standard"`
	PerformanceIndicator string       `json:"performance_indicator"`
	Exemplars            ExemplarList `json:"exemplars"`
	TLRs                 string       `json:"tlrs"`

	// Duration is a pointer so an omitted field (defaults to 70) can be
	// told apart from an explicit, invalid zero.
	Duration *Minutes `json:"duration"`
}

// ApplyDefaults fills the fields the client is allowed to omit.
func (r *LessonRequest) ApplyDefaults() {
	if r.ClassLevel == "" {
		r.ClassLevel = "Basic 7"
	}
	if r.Lesson == "" {
		r.Lesson = "1"
	}
	if r.Duration == nil {
		d := Minutes(70)
		r.Duration = &d
	}
}

// DurationMinutes returns the lesson duration as plain minutes.
func (r *LessonRequest) DurationMinutes() int {
	if r.Duration == nil {
		return 0
	}
	return int(*r.Duration)
}

// ExemplarList accepts either a JSON array of strings or a single
// comma-delimited string. Entries are trimmed and empties discarded, so
// both forms normalize to the same sequence.
type ExemplarList []string

func (e *ExemplarList) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" || trimmed == "" {
		*e = nil
		return nil
	}

	var raw []string
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("exemplars: %w", err)
		}
	} else {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("exemplars: %w", err)
		}
		raw = strings.Split(s, ",")
	}

	out := make(ExemplarList, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*e = out
	return nil
}

// Minutes accepts a JSON number or a numeric string. Anything else is a
// decode error, which the handler reports as a client error.
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("duration must be a number of minutes, got %s", strings.TrimSpace(string(b)))
	}
	*m = Minutes(int(f))
	return nil
}

// LessonPlan is the flat output shape: every section is a single
// formatted string. Assessment is empty when the deployed template merges
// it into phase2.
type LessonPlan struct {
	Phase1     string `json:"phase1"`
	Phase2     string `json:"phase2"`
	Assessment string `json:"assessment,omitempty"`
	Phase3     string `json:"phase3"`
}

// NestedLessonPlan is the structured output shape used by nested
// templates. A deployment commits to exactly one shape; the two are
// never mixed in one response.
type NestedLessonPlan struct {
	Phase1 string      `json:"phase1"`
	Phase2 NestedPhase `json:"phase2"`
	Phase3 string      `json:"phase3"`
}

// NestedPhase is the structured main phase of a NestedLessonPlan.
type NestedPhase struct {
	Activities []string          `json:"activities"`
	Content    map[string]string `json:"content"`
	Assessment []string          `json:"assessment"`
}
