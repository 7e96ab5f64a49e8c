// Package ocr extracts text from listing screenshots through an
// OpenAI-compatible vision chat-completion endpoint.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"openhouse/internal/config"
)

// extractionPrompt steers the vision model toward the fields the listing
// parser looks for. Dollar amounts are called out because a misread
// leading digit there is the most damaging OCR failure.
const extractionPrompt = "Extract all text from this real estate property listing image with extreme precision. " +
	"Pay special attention to all dollar amounts and numbers. " +
	"Focus on property details like address, price, monthly payment estimates (Est. $X,XXX/mo), dates, times, " +
	"square footage, bedrooms, bathrooms, lot size, HOA fees, CDD fees, and any other relevant property information. " +
	"Be very careful with numbers that start with 2 vs 1. " +
	"Return only the extracted text without any formatting or interpretation."

var dataURLPrefixRe = regexp.MustCompile(`^data:image/[a-z]+;base64,`)

// Client calls a vision-capable chat-completion API.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.Config, l *zap.Logger) *Client {
	return &Client{
		config: cfg,
		logger: l,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.OCRTimeout) * time.Second,
		},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.config.OCRAPIKey != ""
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

// contentPart is one element of a multimodal message: either text or an
// image reference, per the OpenAI chat-completion format.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ExtractText runs OCR on a base64-encoded image. A data-URL prefix on
// the input is tolerated and stripped.
func (c *Client) ExtractText(ctx context.Context, base64Image string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("ocr is not configured (missing API key)")
	}

	imageData := dataURLPrefixRe.ReplaceAllString(base64Image, "")

	req := chatCompletionRequest{
		Model:     c.config.OCRModel,
		MaxTokens: c.config.OCRMaxTokens,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: extractionPrompt},
					{Type: "image_url", ImageURL: &imageURL{
						URL: "data:image/jpeg;base64," + imageData,
					}},
				},
			},
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.OCRAPIBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.OCRAPIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("ocr request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.config.OCRModel))
		return "", fmt.Errorf("ocr request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("ocr response contained no choices")
	}
	return result.Choices[0].Message.Content, nil
}
