package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("mock", func(t *testing.T) {
		p, err := NewProvider(ctx, Config{Provider: "mock"})
		require.NoError(t, err)
		assert.Equal(t, "mock", p.ModelID())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProvider(ctx, Config{Provider: "palm"})
		require.Error(t, err)
	})

	t.Run("gemini without credential", func(t *testing.T) {
		_, err := NewProvider(ctx, Config{Provider: "gemini"})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("openrouter without credential", func(t *testing.T) {
		_, err := NewProvider(ctx, Config{Provider: "openrouter"})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestNewOpenRouterProviderDefaults(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test"})
	require.NoError(t, err)
	assert.Equal(t, "deepseek/deepseek-r1:free", p.ModelID())

	p, err = NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "meta-llama/llama-3-8b"})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3-8b", p.ModelID())
}

func TestOpenRouterFinishReasons(t *testing.T) {
	cases := []struct {
		in   openai.FinishReason
		want FinishReason
	}{
		{openai.FinishReasonStop, FinishStop},
		{openai.FinishReasonLength, FinishLength},
		{openai.FinishReasonContentFilter, FinishSafety},
	}
	for _, tc := range cases {
		got, ok := openRouterFinishReasons[tc.in]
		require.True(t, ok, "missing mapping for %q", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, ok := openRouterFinishReasons["tool_calls"]
	assert.False(t, ok, "unmapped values must fall through to UNKNOWN")
}

func TestGeminiFinishReason(t *testing.T) {
	t.Run("mapped reasons", func(t *testing.T) {
		cases := []struct {
			in   genai.FinishReason
			want FinishReason
		}{
			{"STOP", FinishStop},
			{"SAFETY", FinishSafety},
			{"RECITATION", FinishRecitation},
			{"MAX_TOKENS", FinishLength},
		}
		for _, tc := range cases {
			result := &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: tc.in}},
			}
			assert.Equal(t, tc.want, geminiFinishReason(result), "reason %q", tc.in)
		}
	})

	t.Run("unmapped reason", func(t *testing.T) {
		result := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: "MALFORMED_FUNCTION_CALL"}},
		}
		assert.Equal(t, FinishUnknown, geminiFinishReason(result))
	})

	t.Run("no candidates with blocked prompt", func(t *testing.T) {
		result := &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: "SAFETY",
			},
		}
		assert.Equal(t, FinishSafety, geminiFinishReason(result))
	})

	t.Run("no candidates at all", func(t *testing.T) {
		assert.Equal(t, FinishUnknown, geminiFinishReason(&genai.GenerateContentResponse{}))
	})
}

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first"},
		MockResponse{Text: "", FinishReason: FinishSafety},
	)

	resp, err := mock.Generate(context.Background(), Request{User: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Text)
	assert.Equal(t, FinishStop, resp.FinishReason)

	resp, err = mock.Generate(context.Background(), Request{User: "u2"})
	require.NoError(t, err)
	assert.Equal(t, FinishSafety, resp.FinishReason)

	_, err = mock.Generate(context.Background(), Request{User: "u3"})
	var upstream *ErrUpstream
	require.True(t, errors.As(err, &upstream), "drained mock should fail as upstream error")

	assert.Len(t, mock.Calls, 3)
	assert.Equal(t, "u1", mock.Calls[0].User)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := FromEnv()

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "60s", cfg.Timeout.String())

	t.Setenv("LLM_PROVIDER", "openrouter")
	t.Setenv("LLM_TIMEOUT", "30s")
	cfg = FromEnv()
	assert.Equal(t, "openrouter", cfg.Provider)
	assert.Equal(t, "30s", cfg.Timeout.String())
}
