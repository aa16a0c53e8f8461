package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/unilabvision/myuni/internal/chat"
)

type fakeGenerator struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config

	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}

	return f.resp, f.err
}

func textResponse(text string, reason genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: reason,
		}},
	}
}

func TestComplete(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("A variable stores a value.", genai.FinishReasonStop)}
	c := NewWithGenerator(gen, Config{Temperature: 0.7, MaxTokens: 512})

	got, err := c.Complete(context.Background(), "What is a variable?")
	require.NoError(t, err)
	assert.Equal(t, "A variable stores a value.", got)
	assert.Equal(t, DefaultModel, gen.model)
	assert.Equal(t, "What is a variable?", gen.prompt)
	require.NotNil(t, gen.config.Temperature)
	assert.InDelta(t, 0.7, *gen.config.Temperature, 0.0001)
	assert.Equal(t, int32(512), gen.config.MaxOutputTokens)
}

func TestComplete_Blocked(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
	}}

	_, err := NewWithGenerator(gen, Config{}).Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, chat.KindSafety, chat.KindOf(err))

	gen = &fakeGenerator{resp: textResponse("", genai.FinishReasonSafety)}

	_, err = NewWithGenerator(gen, Config{Model: "gemini-pro"}).Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, chat.KindSafety, chat.KindOf(err))
	assert.Equal(t, "gemini-pro", gen.model)
}

func TestComplete_APIError(t *testing.T) {
	gen := &fakeGenerator{err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}}

	_, err := NewWithGenerator(gen, Config{}).Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, chat.KindQuota, chat.KindOf(err))
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.ErrorIs(t, err, ErrAPIKeyEmpty)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want chat.Kind
	}{
		{"nil", nil, chat.KindUnknown},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), chat.KindTimeout},
		{"quota status", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, chat.KindQuota},
		{"quota code", genai.APIError{Code: 429}, chat.KindQuota},
		{"unavailable", genai.APIError{Code: 503, Status: "UNAVAILABLE"}, chat.KindUnavailable},
		{"internal", genai.APIError{Code: 500}, chat.KindUnavailable},
		{"gateway timeout", genai.APIError{Code: 504}, chat.KindTimeout},
		{"deadline status", genai.APIError{Code: 400, Status: "DEADLINE_EXCEEDED"}, chat.KindTimeout},
		{"bad request", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, chat.KindUnknown},
		{"wrapped api error", fmt.Errorf("generate: %w", genai.APIError{Code: 429}), chat.KindQuota},
		{"net timeout", timeoutErr{}, chat.KindTimeout},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, chat.KindUnavailable},
		{"other", errors.New("weird"), chat.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
