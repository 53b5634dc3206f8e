package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthassist/backend/internal/model"
)

// collect drains a ChatStream call and returns the fragments and the error.
func collect(t *testing.T, p Provider, req *ChatRequest) ([]StreamResponse, error) {
	t.Helper()
	ch := make(chan StreamResponse)
	errc := make(chan error, 1)
	go func() { errc <- p.ChatStream(context.Background(), req, ch) }()

	var chunks []StreamResponse
	for chunk := range ch {
		chunks = append(chunks, chunk)
	}
	return chunks, <-errc
}

func TestGeminiProvider_ChatStream(t *testing.T) {
	var captured geminiRequest
	var capturedPath, capturedQuery, capturedKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedQuery = r.URL.RawQuery
		capturedKey = r.Header.Get("x-goog-api-key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, text := range []string{"Hel", "", "lo"} {
			_, err := fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":[{\"text\":%q}]}}]}\n\n", text)
			assert.NoError(t, err)
		}
	}))
	defer server.Close()

	provider := NewGeminiProvider(server.URL, "secret", "")
	req := &ChatRequest{
		SystemInstruction: ChatInstruction,
		History: []model.Turn{
			{Role: model.SenderUser, Text: "hi"},
			{Role: model.SenderAssistant, Text: "hello there"},
		},
		Message: "I have a headache",
	}

	chunks, err := collect(t, provider, req)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, "Hel", chunks[0].Content)
	assert.Equal(t, "lo", chunks[1].Content)
	assert.True(t, chunks[2].Done)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:streamGenerateContent", capturedPath)
	assert.Equal(t, "alt=sse", capturedQuery)
	assert.Equal(t, "secret", capturedKey)

	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "I have a headache", captured.Contents[2].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, ChatInstruction, captured.SystemInstruction.Parts[0].Text)
}

func TestGeminiProvider_ChatStreamErrors(t *testing.T) {
	t.Run("Non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
		}))
		defer server.Close()

		chunks, err := collect(t, NewGeminiProvider(server.URL, "bad", "m"), &ChatRequest{Message: "hi"})
		require.Error(t, err)
		assert.Empty(t, chunks)
		assert.Contains(t, err.Error(), "API key not valid")
	})

	t.Run("Error after first fragment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Par\"}]}}]}\n\n")
			_, _ = fmt.Fprint(w, "data: {\"error\":{\"code\":500,\"message\":\"overloaded\",\"status\":\"INTERNAL\"}}\n\n")
		}))
		defer server.Close()

		chunks, err := collect(t, NewGeminiProvider(server.URL, "k", "m"), &ChatRequest{Message: "hi"})
		require.Error(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Par", chunks[0].Content)
		assert.Contains(t, err.Error(), "overloaded")
	})
}

func TestGeminiProvider_Generate(t *testing.T) {
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "Here are "}, {"text": "some dentists."}]},
				"groundingMetadata": {"groundingChunks": [
					{"web": {"uri": "https://example.com", "title": "Example"}},
					{"maps": {"uri": "https://maps.google.com/?cid=1", "title": "Smile Dental", "placeId": "p1"}},
					{}
				]}
			}]
		}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	provider := NewGeminiProvider(server.URL, "k", "test-model")
	resp, err := provider.Generate(context.Background(), &GenerateRequest{
		Prompt:   "a dentist near me",
		UseMaps:  true,
		Location: &model.Position{Latitude: 51.5, Longitude: -0.12},
	})
	require.NoError(t, err)

	assert.Equal(t, "Here are some dentists.", resp.Text)
	require.Len(t, resp.Citations, 3)
	assert.Equal(t, "Example", resp.Citations[0].Web.Title)
	assert.Equal(t, "Smile Dental", resp.Citations[1].Maps.Title)
	assert.Nil(t, resp.Citations[2].Web)
	assert.Nil(t, resp.Citations[2].Maps)

	assert.Contains(t, captured, "tools")
	toolConfig := captured["toolConfig"].(map[string]any)
	latLng := toolConfig["retrievalConfig"].(map[string]any)["latLng"].(map[string]any)
	assert.Equal(t, 51.5, latLng["latitude"])
	assert.NotContains(t, captured, "systemInstruction")
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Options{Provider: "gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &geminiProvider{}, p)

	p, err = NewProvider(Options{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openAIProvider{}, p)

	_, err = NewProvider(Options{Provider: "carrier-pigeon"})
	assert.Error(t, err)
}
