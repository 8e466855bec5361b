package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"inkwell/internal/segment"
	"inkwell/internal/services"
)

const (
	defaultBaseURL     = "https://api.deepseek.com"
	defaultModel       = "deepseek-chat"
	defaultHTTPTimeout = 120 * time.Second
	defaultAttempts    = 3
)

// Client translates segments through an OpenAI-compatible chat completion
// endpoint. Transient HTTP failures are retried with backoff before the
// segment is reported as failed.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	targetLang string
	attempts   uint
	httpClient *http.Client
}

// Option customizes the translation client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default chat model.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// WithTargetLanguage sets the language segments are translated into.
func WithTargetLanguage(lang string) Option {
	return func(c *Client) {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			c.targetLang = lang
		}
	}
}

// WithAttempts bounds how many times a transient failure is retried.
func WithAttempts(attempts uint) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
	}
}

// NewClient constructs a translation client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		targetLang: "English",
		attempts:   defaultAttempts,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Translate sends one segment for translation and returns the translated
// text. The returned error carries the translation marker so callers can
// record it against the segment without aborting the run.
func (c *Client) Translate(ctx context.Context, seg segment.Segment) (string, error) {
	if strings.TrimSpace(seg.Content) == "" {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "segment has no content", nil)
	}
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "translating", "translate", "translator api key required", nil)
	}

	result, err := retry.DoWithData(
		func() (string, error) {
			return c.translateOnce(ctx, seg)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, services.ErrTransient)
		}),
	)
	if err != nil {
		return "", err
	}
	return result, nil
}

func (c *Client) translateOnce(ctx context.Context, seg segment.Segment) (string, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/chat/completions")
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "build url", err)
	}
	encoded, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: translationPrompt(c.targetLang)},
			{Role: "user", Content: buildUserMessage(seg)},
		},
		Temperature: 1.3,
	})
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "translating", "translate", "request timed out", err)
		}
		return "", services.Wrap(services.ErrTransient, "translating", "translate", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "translating", "translate", "read response", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		marker := services.ErrTranslation
		if isTransientStatus(resp.StatusCode) {
			marker = services.ErrTransient
		}
		return "", services.Wrap(marker, "translating", "translate",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "decode response", err)
	}
	if completion.Error != nil {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate",
			"api error: "+strings.TrimSpace(completion.Error.Message), nil)
	}
	if len(completion.Choices) == 0 {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "empty choices", nil)
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "empty content", nil)
	}
	return content, nil
}

func isTransientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func buildUserMessage(seg segment.Segment) string {
	var b strings.Builder
	if strings.TrimSpace(seg.Title) != "" {
		b.WriteString("Title: ")
		b.WriteString(seg.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(seg.Content)
	return b.String()
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
