package llm

import (
	"context"
	"fmt"
	"strings"

	"healthassist/backend/internal/model"
)

// StreamResponse is one chunk of a streamed reply.
type StreamResponse struct {
	Content string
	Done    bool
}

// Provider defines the interface for interacting with a hosted language model.
type Provider interface {
	// ChatStream sends prior turns plus a new user message and writes the reply
	// fragments to ch in arrival order. It always closes ch.
	ChatStream(ctx context.Context, req *ChatRequest, ch chan<- StreamResponse) error
	// Generate performs a single-turn request and returns the whole answer.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// ChatRequest is a multi-turn streaming request.
type ChatRequest struct {
	SystemInstruction string
	History           []model.Turn
	Message           string
}

// GenerateRequest is a single-turn request. Location and UseMaps enable
// map-grounded answers where the provider supports them.
type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
	Location          *model.Position
	UseMaps           bool
}

// GenerateResponse is the answer of a single-turn request.
type GenerateResponse struct {
	Text      string
	Citations []model.Citation
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Options selects and configures a provider.
type Options struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
}

// NewProvider builds the provider named in opts.
func NewProvider(opts Options) (Provider, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderGemini:
		return NewGeminiProvider(opts.BaseURL, opts.APIKey, opts.Model), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(opts.BaseURL, opts.APIKey, opts.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
