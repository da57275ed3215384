package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/daiwaprint/erp_backend/config"
)

var (
	// ErrUnavailable means the AI boundary is switched off or not
	// configured. Callers surface it as a 503, not a 500.
	ErrUnavailable = errors.New("AI assistant is not available")

	ErrEmptyResponse = errors.New("AI returned an empty response")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"

	maxRetries        = 2
	initialRetryDelay = 500 * time.Millisecond
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient builds a Gemini client from the environment. It fails fast
// when the feature flag disables AI or no key is configured, so handlers
// can answer with a clear unavailable status before doing any work.
func NewClient() (*Client, error) {
	if config.AIDisabled() {
		return nil, ErrUnavailable
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}, nil
}

// withRetry runs fn up to maxRetries+1 times with a doubling delay.
// Context cancellation aborts immediately without another attempt.
func withRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	delay := initialRetryDelay
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		if attempt < maxRetries {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
			delay *= 2
		}
	}
	return zero, lastErr
}

func (c *Client) generate(ctx context.Context, req *generateRequest) (*generateResponse, error) {
	return withRetry(ctx, func() (*generateResponse, error) {
		return c.doGenerate(ctx, req)
	})
}

func (c *Client) doGenerate(ctx context.Context, req *generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("generate failed: %s (%d)", out.Error.Message, out.Error.Code)
		}
		return nil, fmt.Errorf("generate failed with status %d", resp.StatusCode)
	}
	return &out, nil
}

// responseText flattens the first candidate's text parts.
func responseText(resp *generateResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	var text string
	for _, p := range resp.Candidates[0].Content.Parts {
		text += p.Text
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// responseSources collects grounded web citations from the first
// candidate, deduped by URI in first-seen order.
func responseSources(resp *generateResponse) []Source {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}
	sources := make([]Source, 0, len(meta.GroundingChunks))
	for _, chunk := range meta.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return DedupeSources(sources)
}
