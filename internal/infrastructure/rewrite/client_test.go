package rewrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type sentRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []sentMessage `json:"messages"`
}

func TestRewrite(t *testing.T) {
	var (
		got     sentRequest
		path    string
		apiKey  string
		version string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiKey = r.Header.Get("X-Api-Key")
		version = r.Header.Get("Anthropic-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "m",
			"content": [{"type": "text", "text": "### 1. Completed Last Week\n\nNone\n"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{BaseURL: srv.URL, APIKey: "key-1", Model: "m"})
	require.NoError(t, err)

	text, err := c.Rewrite(context.Background(), "draft")
	require.NoError(t, err)

	assert.Equal(t, "### 1. Completed Last Week\n\nNone\n", text)
	assert.Equal(t, "/v1/messages", path)
	assert.Equal(t, "key-1", apiKey)
	assert.NotEmpty(t, version)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.Len(t, got.Messages[0].Content, 1)
	assert.Equal(t, "draft", got.Messages[0].Content[0].Text)
}

func TestRewrite_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"type":"error","error":{"type":"api_error","message":"overloaded"}}`},
		{"empty content", http.StatusOK, `{"type":"message","role":"assistant","content":[]}`},
		{"blank text", http.StatusOK, `{"type":"message","role":"assistant","content":[{"type":"text","text":"  "}]}`},
		{"bad json", http.StatusOK, `not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			c, err := NewClient(context.Background(), Config{BaseURL: srv.URL, APIKey: "k", Model: "m"})
			require.NoError(t, err)

			_, err = c.Rewrite(context.Background(), "draft")
			assert.Error(t, err)
		})
	}
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing model", Config{APIKey: "k"}, "rewrite model is required"},
		{"anthropic without key", Config{Model: "m"}, "api key is required"},
		{"unknown provider", Config{Provider: "openai", Model: "m"}, "unknown rewrite provider: openai"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClient(context.Background(), tc.cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewClient_Bedrock(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	c, err := NewClient(context.Background(), Config{
		Provider: ProviderBedrock,
		Region:   "us-east-1",
		Model:    "anthropic.claude-3-5-sonnet-20240620-v1:0",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultMaxTokens), c.maxTokens)
}
