package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"healthassist/backend/internal/model"
)

// DefaultOpenAIURL is Gemini's OpenAI-compatible endpoint, so the same API key
// works with either provider.
const DefaultOpenAIURL = "https://generativelanguage.googleapis.com/v1beta/openai"

type openAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider returns a Provider for any OpenAI-compatible endpoint.
// It does not support map grounding; Generate never returns citations.
func NewOpenAIProvider(baseURL, apiKey, modelName string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultOpenAIURL
	}
	cfg.BaseURL = baseURL
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &openAIProvider{client: openai.NewClientWithConfig(cfg), model: modelName}
}

func toOpenAIRole(s model.Sender) string {
	if s == model.SenderAssistant {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

func withSystem(instruction string, msgs ...openai.ChatCompletionMessage) []openai.ChatCompletionMessage {
	if instruction == "" {
		return msgs
	}
	return append([]openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: instruction}}, msgs...)
}

func (p *openAIProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	prompt := req.Prompt
	if req.Location != nil {
		prompt = fmt.Sprintf("%s\n\nMy current location is latitude %.6f, longitude %.6f.", prompt, req.Location.Latitude, req.Location.Longitude)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: withSystem(req.SystemInstruction, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt}),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return &GenerateResponse{}, nil
	}
	return &GenerateResponse{Text: resp.Choices[0].Message.Content}, nil
}

func (p *openAIProvider) ChatStream(ctx context.Context, req *ChatRequest, ch chan<- StreamResponse) error {
	defer close(ch)

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.History)+1)
	for _, turn := range req.History {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: toOpenAIRole(turn.Role), Content: turn.Text})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})

	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: withSystem(req.SystemInstruction, msgs...),
		Stream:   true,
	})
	if err != nil {
		return fmt.Errorf("could not open stream: %w", err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading stream: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		select {
		case ch <- StreamResponse{Content: resp.Choices[0].Delta.Content}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case ch <- StreamResponse{Done: true}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
