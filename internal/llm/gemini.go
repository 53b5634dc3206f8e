package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tmaxmax/go-sse"

	"healthassist/backend/internal/model"
)

const (
	DefaultGeminiURL   = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel = "gemini-2.5-flash"
)

type geminiProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGeminiProvider returns a Provider backed by the Gemini REST API.
func NewGeminiProvider(baseURL, apiKey, modelName string) Provider {
	if baseURL == "" {
		baseURL = DefaultGeminiURL
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &geminiProvider{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   modelName,
	}
}

type geminiPart struct {
	Text    string `json:"text,omitempty"`
	Thought bool   `json:"thought,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleMaps *struct{} `json:"googleMaps,omitempty"`
}

type geminiLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geminiToolConfig struct {
	RetrievalConfig struct {
		LatLng *geminiLatLng `json:"latLng,omitempty"`
	} `json:"retrievalConfig"`
}

type geminiRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	Tools             []geminiTool      `json:"tools,omitempty"`
	ToolConfig        *geminiToolConfig `json:"toolConfig,omitempty"`
}

type geminiCandidate struct {
	Content           geminiContent `json:"content"`
	FinishReason      string        `json:"finishReason,omitempty"`
	GroundingMetadata *struct {
		GroundingChunks []model.Citation `json:"groundingChunks"`
	} `json:"groundingMetadata,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *geminiError `json:"error,omitempty"`
}

// text concatenates the visible parts of the first candidate.
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

func (r *geminiResponse) citations() []model.Citation {
	if len(r.Candidates) == 0 || r.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	return r.Candidates[0].GroundingMetadata.GroundingChunks
}

func (r *geminiResponse) err() error {
	if r.Error != nil {
		return fmt.Errorf("gemini error %d %s: %s", r.Error.Code, r.Error.Status, r.Error.Message)
	}
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return fmt.Errorf("gemini blocked the prompt: %s", r.PromptFeedback.BlockReason)
	}
	return nil
}

func toGeminiRole(s model.Sender) string {
	if s == model.SenderAssistant {
		return "model"
	}
	return "user"
}

func systemContent(instruction string) *geminiContent {
	if instruction == "" {
		return nil
	}
	return &geminiContent{Parts: []geminiPart{{Text: instruction}}}
}

func (p *geminiProvider) endpoint(method string, query url.Values) string {
	u := fmt.Sprintf("%s/v1beta/models/%s:%s", p.baseURL, url.PathEscape(p.model), method)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (p *geminiProvider) post(ctx context.Context, endpoint string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		var apiErr geminiResponse
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != nil {
			return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return resp, nil
}

func (p *geminiProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	payload := geminiRequest{
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
		SystemInstruction: systemContent(req.SystemInstruction),
	}
	if req.UseMaps {
		payload.Tools = []geminiTool{{GoogleMaps: &struct{}{}}}
		if req.Location != nil {
			payload.ToolConfig = &geminiToolConfig{}
			payload.ToolConfig.RetrievalConfig.LatLng = &geminiLatLng{
				Latitude:  req.Location.Latitude,
				Longitude: req.Location.Longitude,
			}
		}
	}

	resp, err := p.post(ctx, p.endpoint("generateContent", nil), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	if err := genResp.err(); err != nil {
		return nil, err
	}
	return &GenerateResponse{Text: genResp.text(), Citations: genResp.citations()}, nil
}

func (p *geminiProvider) ChatStream(ctx context.Context, req *ChatRequest, ch chan<- StreamResponse) error {
	defer close(ch)

	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, geminiContent{Role: toGeminiRole(turn.Role), Parts: []geminiPart{{Text: turn.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: req.Message}}})

	payload := geminiRequest{
		Contents:          contents,
		SystemInstruction: systemContent(req.SystemInstruction),
	}
	resp, err := p.post(ctx, p.endpoint("streamGenerateContent", url.Values{"alt": {"sse"}}), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	for ev, err := range sse.Read(resp.Body, nil) {
		if err != nil {
			return fmt.Errorf("error reading stream: %w", err)
		}
		if ev.Data == "" {
			continue
		}
		var chunk geminiResponse
		if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
			return fmt.Errorf("could not decode stream chunk: %w", err)
		}
		if err := chunk.err(); err != nil {
			return err
		}
		text := chunk.text()
		if text == "" {
			continue
		}
		select {
		case ch <- StreamResponse{Content: text}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case ch <- StreamResponse{Done: true}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
