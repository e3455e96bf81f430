// Package llm обёртка над chat completions API OpenAI.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/magabrotheeeer/itlearnpro/internal/config"
)

// ErrEmptyCompletion ответ модели без вариантов.
var ErrEmptyCompletion = errors.New("empty completion")

type Client struct {
	api   *openai.Client
	model string
}

func New(cfg config.OpenAI) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Complete отправляет prompt одним пользовательским сообщением и возвращает обрезанный текст ответа.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	const op = "llm.Complete"
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyCompletion)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
