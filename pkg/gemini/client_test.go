package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), Config{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c
}

func TestGenerateJSON(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"a\":"},{"text":"1}"}]}}]}`))
	})

	schema := &genai.Schema{Type: genai.TypeObject, Required: []string{"a"}}
	text, err := c.GenerateJSON(context.Background(), "hello", schema)

	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	contents, ok := got["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	assert.Contains(t, mustJSON(t, contents[0]), `"hello"`)

	genConfig, ok := got["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", genConfig["responseMimeType"])
	assert.Contains(t, mustJSON(t, genConfig["responseSchema"]), `"required":["a"]`)
	assert.Nil(t, got["tools"])
}

func TestGenerateJSON_EmptyAnswer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.GenerateJSON(context.Background(), "hello", nil)

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateGrounded(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{
			"content":{"role":"model","parts":[{"text":"调研结果"}]},
			"groundingMetadata":{"groundingChunks":[
				{"web":{"uri":"https://a.example","title":"A"}},
				{},
				{"web":{"uri":"https://b.example"}}
			]}
		}]}`))
	})

	res, err := c.GenerateGrounded(context.Background(), "research")

	require.NoError(t, err)
	assert.Equal(t, "调研结果", res.Text)
	assert.Equal(t, []WebSource{{URI: "https://a.example", Title: "A"}, {URI: "https://b.example"}}, res.Sources)
	assert.Contains(t, mustJSON(t, got["tools"]), "googleSearch")
}

func TestGenerate_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	})

	_, err := c.GenerateJSON(context.Background(), "x", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerate_PromptBlocked(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	_, err := c.GenerateGrounded(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestNewClient_DefaultModel(t *testing.T) {
	c, err := NewClient(context.Background(), Config{APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
