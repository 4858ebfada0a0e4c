package lessonplan

import (
	"fmt"
	"strings"
)

// OutputShape selects which response contract a template commits to.
type OutputShape string

const (
	ShapeFlat   OutputShape = "flat"
	ShapeNested OutputShape = "nested"
)

// Template bundles a system instruction with the output contract it
// demands from the model. One template is selected at startup; code
// paths never branch on template ID after that.
type Template struct {
	ID              string
	System          string
	Shape           OutputShape
	MergeAssessment bool
}

// DefaultTemplateID is the template used when LESSON_TEMPLATE is unset.
const DefaultTemplateID = "flat-v2"

var templates = map[string]Template{
	"flat-v1": {
		ID:     "flat-v1",
		System: flatSystem,
		Shape:  ShapeFlat,
	},
	"flat-v2": {
		ID:              "flat-v2",
		System:          flatSystem,
		Shape:           ShapeFlat,
		MergeAssessment: true,
	},
	"nested-v1": {
		ID:     "nested-v1",
		System: nestedSystem,
		Shape:  ShapeNested,
	},
}

// TemplateByID looks up a registered template. Unknown IDs are a startup
// error, never a per-request fallback.
func TemplateByID(id string) (Template, error) {
	tpl, ok := templates[id]
	if !ok {
		return Template{}, fmt.Errorf("unknown lesson template %q", id)
	}
	return tpl, nil
}

const flatSystem = `You are an expert Ghanaian lesson planner for ICT, Science and other subjects in the Ghana Education Service curriculum.

You must respond with a single JSON object and nothing else. The object must have exactly these string keys: "phase1", "phase2", "assessment", "phase3".

"phase1" (STARTER): a short activity that reviews prior knowledge and introduces the lesson. It must fit the phase 1 time budget given in the request.

"phase2" (MAIN): the heart of the lesson. Start with "Teacher-Learner Activities:" followed by numbered activities (1., 2., ...). Each activity must correspond to exactly one exemplar from the request and make use of the T/L Resources. Do NOT restate the exemplars verbatim; turn each one into a concrete classroom activity written in clear instructional language (e.g. "Guide learners to discuss..."). After the activities, explain each key concept under a heading in ALL CAPS (e.g. ELECTRONIC SPREADSHEET), one short explanation per concept, using real-life examples relevant to Ghanaian learners. It must fit the phase 2 time budget.

"assessment": numbered exercise questions, one per key concept, that check whether the performance indicator was met. Never reveal answers.

"phase3" (REFLECTION): a short closing activity where learners summarise what they learned. It must fit the phase 3 time budget.

Rules:
- Output raw JSON only. No markdown fences, no commentary before or after.
- Every value must be a plain string, not a list or object.
- Do not add extra keys.
- Use only the information provided in the request.`

const nestedSystem = `You are an expert Ghanaian lesson planner for ICT, Science and other subjects in the Ghana Education Service curriculum.

You must respond with a single JSON object and nothing else, in exactly this shape:

{
  "phase1": "<starter activity as one string>",
  "phase2": {
    "activities": ["<one teacher-learner activity per exemplar>"],
    "content": {"<KEY CONCEPT IN ALL CAPS>": "<explanation>"},
    "assessment": ["<numbered exercise question>"]
  },
  "phase3": "<reflection activity as one string>"
}

Rules:
- Each activity must correspond to exactly one exemplar and use the T/L Resources. Do NOT restate the exemplars verbatim.
- Write activities in clear instructional language (e.g. "Guide learners to discuss...").
- Explain concepts in simple language with real-life examples relevant to Ghanaian learners.
- Respect the per-phase time budgets given in the request.
- Output raw JSON only. No markdown fences, no extra keys, no commentary.`

// BuildUserMessage restates every request field plus the computed phase
// budget, one labeled line each. This is the only information the model
// receives about the lesson.
func BuildUserMessage(req LessonRequest, budget PhaseBudget) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Class Level: %s\n", req.ClassLevel)
	fmt.Fprintf(&b, "Lesson: %s\n", req.Lesson)
	fmt.Fprintf(&b, "Strand: %s\n", req.Strand)
	fmt.Fprintf(&b, "Content Standard: %s\n", req.ContentStandard)
	fmt.Fprintf(&b, "Performance Indicator: %s\n", req.PerformanceIndicator)

	b.WriteString("Exemplars:\n")
	if len(req.Exemplars) == 0 {
		b.WriteString("- None provided\n")
	}
	for _, e := range req.Exemplars {
		fmt.Fprintf(&b, "- %s\n", e)
	}

	fmt.Fprintf(&b, "T/L Resources: %s\n", req.TLRs)
	fmt.Fprintf(&b, "Duration: %d minutes\n", req.DurationMinutes())
	fmt.Fprintf(&b, "Phase 1 (Starter) budget: %d minutes\n", budget.Phase1)
	fmt.Fprintf(&b, "Phase 2 (Main) budget: %d minutes\n", budget.Phase2)
	fmt.Fprintf(&b, "Phase 3 (Reflection) budget: %d minutes\n", budget.Phase3)

	return b.String()
}

// flatResponseSchema is handed to providers that support constrained
// decoding. Assessment stays optional so merge-enabled templates repair
// it server-side whether or not the model emits it.
func flatResponseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"phase1":     map[string]any{"type": "string"},
			"phase2":     map[string]any{"type": "string"},
			"assessment": map[string]any{"type": "string"},
			"phase3":     map[string]any{"type": "string"},
		},
		"required": []any{"phase1", "phase2", "phase3"},
	}
}
