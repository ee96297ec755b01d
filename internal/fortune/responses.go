package fortune

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/ichi0g0y/lucky-by-birthday/internal/version"
	"go.uber.org/zap"
)

const (
	responsesPath  = "/responses"
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 64 * 1024
)

// Config は上流APIクライアントの設定
type Config struct {
	APIKey        string
	Endpoint      string
	PromptID      string
	PromptVersion string
	Timeout       time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Response はテキスト抽出済みの応答
type Response struct {
	Text  string
	Model string
	Usage *ResponseUsage
}

type ResponseUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

type promptRef struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

type inputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type inputMessage struct {
	Role    string         `json:"role"`
	Content []inputContent `json:"content"`
}

type responsesRequest struct {
	Prompt    promptRef      `json:"prompt"`
	Input     []inputMessage `json:"input"`
	Reasoning struct{}       `json:"reasoning"`
	Store     bool           `json:"store"`
	Include   []string       `json:"include"`
}

type responsesAPIResponse struct {
	Model  string `json:"model"`
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Usage *ResponseUsage `json:"usage"`
}

// Generate sends prompt as the only user input of the stored prompt template.
func (c *Client) Generate(ctx context.Context, prompt string) (*Response, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}

	payload := responsesRequest{
		Prompt: promptRef{ID: c.cfg.PromptID, Version: c.cfg.PromptVersion},
		Input: []inputMessage{{
			Role:    "user",
			Content: []inputContent{{Type: "input_text", Text: prompt}},
		}},
		Store: true,
		Include: []string{
			"reasoning.encrypted_content",
			"web_search_call.action.sources",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.Endpoint, "/") + responsesPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed responsesAPIResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if parsed.Usage != nil {
		if _, _, err := AddOpenAIUsage(parsed.Model, parsed.Usage.InputTokens, parsed.Usage.OutputTokens); err != nil {
			logger.Warn("Failed to record OpenAI usage", zap.Error(err))
		}
	}

	text := extractResponseText(parsed)
	if text == "" {
		return nil, ErrNoResponseText
	}

	return &Response{Text: text, Model: parsed.Model, Usage: parsed.Usage}, nil
}

// extractResponseText concatenates output_text blocks of message items in order.
func extractResponseText(parsed responsesAPIResponse) string {
	var b strings.Builder
	for _, item := range parsed.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" {
				b.WriteString(content.Text)
			}
		}
	}
	return b.String()
}
