// Package gemini implements chat.Completion on the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/genai"

	"github.com/unilabvision/myuni/internal/chat"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrAPIKeyEmpty is returned by New without an API key.
var ErrAPIKeyEmpty = errors.New("gemini: API key is required")

// Generator is the part of the genai models service used here.
type Generator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Config configures the client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

// Client generates chat replies.
type Client struct {
	models Generator
	model  string
	config *genai.GenerateContentConfig
}

// New creates a client for the Gemini API.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyEmpty
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return NewWithGenerator(client.Models, cfg), nil
}

// NewWithGenerator creates a client around an existing generator.
func NewWithGenerator(models Generator, cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	gc := &genai.GenerateContentConfig{}
	if cfg.Temperature > 0 {
		gc.Temperature = genai.Ptr(cfg.Temperature)
	}

	if cfg.MaxTokens > 0 {
		gc.MaxOutputTokens = cfg.MaxTokens
	}

	return &Client{models: models, model: model, config: gc}
}

// Complete implements chat.Completion.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", chat.NewError(Classify(err), err)
	}

	if resp == nil {
		return "", chat.ErrEmptyResponse
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", chat.NewError(chat.KindSafety, fmt.Errorf("prompt blocked: %s", fb.BlockReason))
	}

	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}

		switch cand.FinishReason {
		case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist, genai.FinishReasonSPII:
			return "", chat.NewError(chat.KindSafety, fmt.Errorf("response blocked: %s", cand.FinishReason))
		}
	}

	return resp.Text(), nil
}

// Classify maps an SDK or transport error to a failure kind.
func Classify(err error) chat.Kind {
	if err == nil {
		return chat.KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return chat.KindTimeout
	}

	if apiErr, ok := asAPIError(err); ok {
		return classifyAPIError(apiErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return chat.KindTimeout
		}

		return chat.KindUnavailable
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return chat.KindUnavailable
	}

	return chat.KindUnknown
}

func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}

	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}

	return genai.APIError{}, false
}

func classifyAPIError(e genai.APIError) chat.Kind {
	switch e.Status {
	case "RESOURCE_EXHAUSTED":
		return chat.KindQuota
	case "DEADLINE_EXCEEDED":
		return chat.KindTimeout
	case "UNAVAILABLE", "INTERNAL":
		return chat.KindUnavailable
	}

	switch e.Code {
	case http.StatusTooManyRequests:
		return chat.KindQuota
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return chat.KindTimeout
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return chat.KindUnavailable
	default:
		return chat.KindUnknown
	}
}
