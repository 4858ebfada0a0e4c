package lessonplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/chalkboard-edu/lessonplan-backend/internal/llm"
)

// assessmentDelimiter separates the merged assessment questions from the
// main-phase body. The front-end renders it as a sub-heading.
const assessmentDelimiter = "\n\n\n**ASSESSMENT**\n\n"

// ErrPrimaryContentEmpty indicates the model returned well-formed JSON
// whose main phase is empty. Parsing succeeded but the task was not done.
var ErrPrimaryContentEmpty = errors.New("lesson plan main phase is empty")

// ErrBlockedOrEmpty indicates the model produced no text at all, either
// because a policy filter fired or because the response was empty.
type ErrBlockedOrEmpty struct {
	FinishReason llm.FinishReason
}

func (e *ErrBlockedOrEmpty) Error() string {
	return fmt.Sprintf("model returned no content (finish reason: %s)", e.FinishReason)
}

// ErrInvalidJSON indicates the cleaned model output did not parse. Raw
// keeps the original text so the caller can return it as a diagnostic
// payload instead of discarding salvageable content.
type ErrInvalidJSON struct {
	Raw string
	Err error
}

func (e *ErrInvalidJSON) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *ErrInvalidJSON) Unwrap() error { return e.Err }

// Normalize coerces raw model output into the shape the template commits
// to. The model does not reliably honor formatting instructions; this
// pipeline absorbs that variance deterministically instead of
// re-prompting. Returns *LessonPlan or *NestedLessonPlan depending on
// the template shape.
func Normalize(raw llm.Response, tpl Template) (any, error) {
	if strings.TrimSpace(raw.Text) == "" {
		return nil, &ErrBlockedOrEmpty{FinishReason: raw.FinishReason}
	}

	text := cleanMarkup(stripFence(raw.Text))

	if tpl.Shape == ShapeNested {
		var plan NestedLessonPlan
		if err := json.Unmarshal([]byte(text), &plan); err != nil {
			return nil, &ErrInvalidJSON{Raw: raw.Text, Err: err}
		}
		return &plan, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, &ErrInvalidJSON{Raw: raw.Text, Err: err}
	}

	plan, err := repairFlat(fields, tpl)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// stripFence removes a markdown code fence wrapping the whole payload.
// It is a strict prefix/suffix check, never a substring replace, so
// legitimate content containing backticks is left alone. Applying it to
// already-unwrapped text is a no-op.
func stripFence(s string) string {
	t := strings.TrimSpace(s)

	var body string
	switch {
	case strings.HasPrefix(t, "```json"):
		body = t[len("```json"):]
	case strings.HasPrefix(t, "```"):
		body = t[len("```"):]
	default:
		return t
	}

	body = strings.TrimSpace(body)
	if !strings.HasSuffix(body, "```") {
		// Opener without a closing fence: leave the text untouched
		// rather than guess where the payload ends.
		return t
	}
	return strings.TrimSpace(strings.TrimSuffix(body, "```"))
}

// cleanMarkup strips the stray "**" emphasis some models wrap headings
// in. The front-end renders the text as-is, so the markers would leak
// through to learners.
func cleanMarkup(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

// repairFlat patches the known shape defects of flat responses:
// list-valued sections, a standalone assessment key when the contract
// wants it merged into phase2, and an "Assessment;" heading where the
// client expects "Exercise;".
func repairFlat(fields map[string]json.RawMessage, tpl Template) (*LessonPlan, error) {
	plan := &LessonPlan{
		Phase1:     coerceString(fields["phase1"]),
		Phase2:     coerceString(fields["phase2"]),
		Assessment: coerceString(fields["assessment"]),
		Phase3:     coerceString(fields["phase3"]),
	}

	if tpl.MergeAssessment && plan.Assessment != "" {
		plan.Phase2 = plan.Phase2 + assessmentDelimiter + plan.Assessment
		plan.Assessment = ""
	}

	plan.Phase2 = ensureExercise(plan.Phase2)

	if strings.TrimSpace(plan.Phase2) == "" {
		return nil, ErrPrimaryContentEmpty
	}
	return plan, nil
}

// coerceString turns a section value into a single string. Models
// inconsistently return numbered lists as JSON arrays or as one
// formatted string; the contract commits to string, so arrays are joined
// with newlines.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			var line string
			if err := json.Unmarshal(item, &line); err != nil {
				line = string(item)
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	}

	// Numbers, booleans, objects: render the raw JSON rather than drop it.
	return string(raw)
}

// ensureExercise rewrites an "Assessment;" heading to the "Exercise;"
// marker the front-end splits on. Models trained on other curricula use
// the two interchangeably.
func ensureExercise(phase2 string) string {
	if strings.Contains(phase2, "Exercise;") || strings.Contains(phase2, "exercise;") {
		return phase2
	}
	return strings.Replace(phase2, "Assessment;", "Exercise;", 1)
}
