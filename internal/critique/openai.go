package critique

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider sends the image inline as a base64 data URL to the chat completions API.
type OpenAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *openai.Client
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: strings.TrimSpace(apiKey), model: strings.TrimSpace(model)}
}

func (p *OpenAIProvider) ensureClient() error {
	if p.apiKey == "" {
		return ErrDisabled
	}
	if p.client == nil {
		cfg := openai.DefaultConfig(p.apiKey)
		if p.baseURL != "" {
			cfg.BaseURL = p.baseURL
		}
		p.client = openai.NewClientWithConfig(cfg)
	}
	return nil
}

// SetBaseURL points the client at a compatible endpoint.
func (p *OpenAIProvider) SetBaseURL(url string) {
	p.baseURL = strings.TrimSpace(url)
	p.client = nil
}

func (p *OpenAIProvider) Critique(ctx context.Context, req Request) (string, error) {
	if err := p.ensureClient(); err != nil {
		return "", err
	}
	model := p.model
	if model == "" {
		model = defaultOpenAIModel
	}
	imageURL := "data:" + req.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(req.Image)
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: Prompt(req)},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL, Detail: openai.ImageURLDetailLow},
					},
				},
			},
		},
		MaxTokens: 600,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: empty critique")
	}
	return text, nil
}
