package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/purr-dev/purr/internal/provider"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockOpenAIServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
			return
		}

		if r.URL.Path == "/chat/completions" {
			resp := apiResponse{
				ID:    "chatcmpl-test",
				Model: "gpt-4o",
				Choices: []apiChoice{
					{
						Index:        0,
						Message:      apiMessage{Role: "assistant", Content: "Test response"},
						FinishReason: "stop",
					},
				},
				Usage: apiUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
			}
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(resp)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
}

func newTestViper(server *httptest.Server) *viper.Viper {
	v := viper.New()
	v.Set("api_key", "test-key")
	v.Set("base_url", server.URL)
	v.Set("model", "gpt-4o")
	v.Set("max_tokens", 100)
	v.Set("timeout", "10s")
	return v
}

func TestOpenAIComplete(t *testing.T) {
	server := mockOpenAIServer(t)
	defer server.Close()

	p, err := NewProvider(newTestViper(server))
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "Hello"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Test response", resp.Content)
	assert.Equal(t, "chatcmpl-test", resp.ID)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestOpenAIComplete_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Invalid API key",
				"type":    "authentication_error",
			},
		})
	}))
	defer server.Close()

	v := viper.New()
	v.Set("api_key", "bad-key")
	v.Set("base_url", server.URL)

	p, err := NewProvider(v)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "Hello"}},
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrAuthentication)
}

func TestOpenAIValidate_EmptyAPIKey(t *testing.T) {
	v := viper.New()
	v.Set("base_url", "http://localhost:1234")

	p, err := NewProvider(v)
	require.NoError(t, err)

	err = p.Validate(context.Background())
	assert.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrAuthentication)
}

func TestOpenAIInfo(t *testing.T) {
	v := viper.New()
	v.Set("api_key", "test")
	p, err := NewProvider(v)
	require.NoError(t, err)

	info := p.Info()
	assert.Equal(t, "openai", info.Name)
	assert.True(t, info.SupportsStreaming)
}

func TestOpenAICompleteStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"hel\"},\"finish_reason\":\"\"}]}\n\n"))
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"lo\"},\"finish_reason\":\"\"}]}\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	p, err := NewProvider(newTestViper(server))
	require.NoError(t, err)

	result := p.CompleteStream(context.Background(), provider.CompletionRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "hello"}},
	})

	var content strings.Builder
	for chunk := range result.Chunks {
		content.WriteString(chunk.Content)
	}
	err = <-result.Err
	require.NoError(t, err)
	assert.Equal(t, "hello", content.String())
}

func TestClassifyHTTPError(t *testing.T) {
	assert.Equal(t, provider.ErrCodeRateLimit, classifyHTTPError(429, nil).Code)
	assert.Equal(t, provider.ErrCodeProviderUnavailable, classifyHTTPError(503, nil).Code)
	assert.Equal(t, provider.ErrCodeInvalidRequest, classifyHTTPError(400, nil).Code)

	body := []byte(`{"error":{"message":"This model's maximum context length is 8192 tokens"}}`)
	assert.Equal(t, provider.ErrCodeContextLength, classifyHTTPError(400, body).Code)
}
