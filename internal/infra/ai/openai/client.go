package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	domain "github.com/aurainsight/aura-backend/internal/domain/ai"
)

const maxTokens = 4096

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	// one bounded call per analysis; a timeout surfaces as unavailable
	cfg.HTTPClient = &http.Client{Timeout: 90 * time.Second}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Generate issues exactly one chat completion. Attachments are sent inline as
// data URLs so the vision-capable models can read them.
func (c *Client) Generate(ctx context.Context, genReq domain.Request) (string, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(genReq.Attachments) == 0 {
		userMsg.Content = genReq.User
	} else {
		parts := []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: genReq.User},
		}
		for _, att := range genReq.Attachments {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL(att),
					Detail: openai.ImageURLDetailAuto,
				},
			})
		}
		userMsg.MultiContent = parts
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: genReq.System},
			userMsg,
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps provider faults: quota and server-side errors are retriable
// later (unavailable), everything else is a hard failure.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500 {
			return fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
}

func dataURL(att domain.Attachment) string {
	ct := att.ContentType
	if ct == "" {
		ct = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", ct, base64.StdEncoding.EncodeToString(att.Data))
}
