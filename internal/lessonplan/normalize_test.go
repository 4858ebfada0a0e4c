package lessonplan

import (
	"errors"
	"strings"
	"testing"

	"github.com/chalkboard-edu/lessonplan-backend/internal/llm"
)

func flatTemplate(merge bool) Template {
	tpl, err := TemplateByID("flat-v1")
	if err != nil {
		panic(err)
	}
	if merge {
		tpl, err = TemplateByID("flat-v2")
		if err != nil {
			panic(err)
		}
	}
	return tpl
}

func TestStripFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence is a no-op", `{"a":1}`, `{"a":1}`},
		{"idempotent", stripFence("```json\n{\"a\":1}\n```"), `{"a":1}`},
		{"opener without closer untouched", "```json\n{\"a\":1}", "```json\n{\"a\":1}"},
		{"inner backticks preserved", "{\"a\":\"use ``` in markdown\"}", "{\"a\":\"use ``` in markdown\"}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripFence(tc.in); got != tc.want {
				t.Errorf("stripFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanMarkup(t *testing.T) {
	if got := cleanMarkup(`{"phase1":"**PHOTOSYNTHESIS**\nPlants make food."}`); strings.Contains(got, "**") {
		t.Errorf("emphasis markers survived: %q", got)
	}
}

func TestNormalizeBlockedOrEmpty(t *testing.T) {
	raw := llm.Response{Text: "", FinishReason: llm.FinishSafety}

	_, err := Normalize(raw, flatTemplate(true))

	var blocked *ErrBlockedOrEmpty
	if !errors.As(err, &blocked) {
		t.Fatalf("expected ErrBlockedOrEmpty, got %v", err)
	}
	if blocked.FinishReason != llm.FinishSafety {
		t.Errorf("finish reason = %q, want SAFETY", blocked.FinishReason)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	raw := llm.Response{
		Text:         `{"phase1":"p1","phase2":"p2","assessment":"q","phase3":"p3"}`,
		FinishReason: llm.FinishStop,
	}

	out, err := Normalize(raw, flatTemplate(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan, ok := out.(*LessonPlan)
	if !ok {
		t.Fatalf("expected *LessonPlan, got %T", out)
	}
	want := LessonPlan{Phase1: "p1", Phase2: "p2", Assessment: "q", Phase3: "p3"}
	if *plan != want {
		t.Errorf("got %+v, want %+v", *plan, want)
	}
}

func TestNormalizeMergesAssessment(t *testing.T) {
	raw := llm.Response{
		Text:         `{"phase1":"x","phase2":["a","b"],"assessment":"q1","phase3":"y"}`,
		FinishReason: llm.FinishStop,
	}

	out, err := Normalize(raw, flatTemplate(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan := out.(*LessonPlan)
	if plan.Assessment != "" {
		t.Errorf("standalone assessment should be gone, got %q", plan.Assessment)
	}
	want := "a\nb\n\n\n**ASSESSMENT**\n\nq1"
	if plan.Phase2 != want {
		t.Errorf("phase2 = %q, want %q", plan.Phase2, want)
	}
}

func TestNormalizeJoinsListSections(t *testing.T) {
	raw := llm.Response{
		Text:         `{"phase1":["warm up","recap"],"phase2":"main","phase3":"close"}`,
		FinishReason: llm.FinishStop,
	}

	out, err := Normalize(raw, flatTemplate(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(*LessonPlan).Phase1; got != "warm up\nrecap" {
		t.Errorf("phase1 = %q", got)
	}
}

func TestNormalizeInvalidJSON(t *testing.T) {
	raw := llm.Response{Text: `{phase1: oops`, FinishReason: llm.FinishStop}

	_, err := Normalize(raw, flatTemplate(true))

	var invalid *ErrInvalidJSON
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
	if invalid.Raw != `{phase1: oops` {
		t.Errorf("raw text not preserved: %q", invalid.Raw)
	}
}

func TestNormalizeFencedOutput(t *testing.T) {
	raw := llm.Response{
		Text:         "```json\n{\"phase1\":\"p1\",\"phase2\":\"p2\",\"phase3\":\"p3\"}\n```",
		FinishReason: llm.FinishStop,
	}

	out, err := Normalize(raw, flatTemplate(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(*LessonPlan).Phase2 != "p2" {
		t.Errorf("got %+v", out)
	}
}

func TestNormalizePrimaryContentEmpty(t *testing.T) {
	raw := llm.Response{
		Text:         `{"phase1":"p1","phase2":"  ","phase3":"p3"}`,
		FinishReason: llm.FinishStop,
	}

	_, err := Normalize(raw, flatTemplate(true))
	if !errors.Is(err, ErrPrimaryContentEmpty) {
		t.Fatalf("expected ErrPrimaryContentEmpty, got %v", err)
	}
}

func TestEnsureExercise(t *testing.T) {
	t.Run("rewrites assessment heading", func(t *testing.T) {
		got := ensureExercise("activities\nAssessment;\n1. Q1")
		if !strings.Contains(got, "Exercise;") || strings.Contains(got, "Assessment;") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("leaves existing exercise heading alone", func(t *testing.T) {
		in := "activities\nExercise;\n1. Q1\nAssessment; notes"
		if got := ensureExercise(in); got != in {
			t.Errorf("got %q, want unchanged", got)
		}
	})
}

func TestNormalizeNestedShape(t *testing.T) {
	tpl, err := TemplateByID("nested-v1")
	if err != nil {
		t.Fatal(err)
	}

	raw := llm.Response{
		Text: `{"phase1":"p1","phase2":{"activities":["a1"],"content":{"SPREADSHEET":"rows and columns"},"assessment":["1. define it"]},"phase3":"p3"}`,

		FinishReason: llm.FinishStop,
	}

	out, err := Normalize(raw, tpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan, ok := out.(*NestedLessonPlan)
	if !ok {
		t.Fatalf("expected *NestedLessonPlan, got %T", out)
	}
	if len(plan.Phase2.Activities) != 1 || plan.Phase2.Content["SPREADSHEET"] == "" {
		t.Errorf("got %+v", plan)
	}
}
