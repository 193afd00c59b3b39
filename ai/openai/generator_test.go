package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/rightsdesk/ai"
)

type capturedRequest struct {
	path   string
	auth   string
	body   map[string]any
	rawLen int
}

func chatServer(t *testing.T, status int, reply string) (*httptest.Server, func() capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		last capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		mu.Lock()
		last = capturedRequest{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: body, rawLen: len(raw)}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	return srv, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

const okReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "test-model",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "  Landlords must return deposits. This is not legal advice.  "}, "finish_reason": "stop"}
  ],
  "usage": {"prompt_tokens": 10, "completion_tokens": 10, "total_tokens": 20}
}`

func TestGenerator_Generate(t *testing.T) {
	srv, last := chatServer(t, http.StatusOK, okReply)

	gen, err := NewGenerator(ai.NewConfig(
		ai.WithHost(srv.URL),
		ai.WithModel("test-model"),
	))
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "My deposit was not returned")
	require.NoError(t, err)
	assert.Equal(t, "Landlords must return deposits. This is not legal advice.", text)

	req := last()
	assert.Equal(t, "/v1/chat/completions", req.path)
	assert.Equal(t, "Bearer none", req.auth)
	assert.Equal(t, "test-model", req.body["model"])

	messages, ok := req.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Positive(t, req.rawLen)
}

func TestGenerator_ServerError(t *testing.T) {
	srv, _ := chatServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`)

	gen, err := NewGenerator(ai.NewConfig(ai.WithHost(srv.URL), ai.WithAPIKey("sk-test")))
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "anything")
	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestGenerator_NoChoices(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)

	gen, err := NewGenerator(ai.NewConfig(ai.WithHost(srv.URL)))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "anything")
	assert.Error(t, err)
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	_, err := NewGenerator(&ai.Config{})
	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	provider, err := NewProvider(ai.DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, provider.TextGenerator())
	assert.NoError(t, provider.Close())
}
