package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedify/backend/internal/infrastructure/config"
)

// fakeOpenAI 模拟 OpenAI 兼容的 chat/completions 接口
func fakeOpenAI(t *testing.T, fragments []string, status int) (*httptest.Server, *[]string) {
	t.Helper()
	var prompts []string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Stream   bool `json:"stream"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		if len(req.Messages) > 0 {
			prompts = append(prompts, req.Messages[0].Content)
		}

		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}

		if !req.Stream {
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintf(w, `{"id":"c1","object":"chat.completion","created":0,"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`,
				strings.Join(fragments, ""))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		// 第一个块只有角色，没有内容
		_, _ = fmt.Fprint(w, `data: {"id":"c1","object":"chat.completion.chunk","created":0,"model":"m","choices":[{"index":0,"delta":{"role":"assistant"},"finish_reason":null}]}`+"\n\n")
		for _, f := range fragments {
			_, _ = fmt.Fprintf(w, `data: {"id":"c1","object":"chat.completion.chunk","created":0,"model":"m","choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`+"\n\n", f)
			flusher.Flush()
		}
		_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	return ts, &prompts
}

func newTestClient(baseURL string) *Client {
	return NewClient(&config.LLMConfig{
		BaseURL:    baseURL + "/",
		APIKey:     "test-key",
		Model:      "test-model",
		MaxRetries: 0,
	})
}

func TestClient_StreamForwardsContentInOrder(t *testing.T) {
	ts, prompts := fakeOpenAI(t, []string{"Users ", "liked ", "it."}, http.StatusOK)
	defer ts.Close()

	ch, err := newTestClient(ts.URL).Stream(context.Background(), "summarize please")
	require.NoError(t, err)

	var got []string
	for c := range ch {
		require.NoError(t, c.Err)
		got = append(got, c.Text)
	}
	assert.Equal(t, []string{"Users ", "liked ", "it."}, got)
	assert.Equal(t, []string{"summarize please"}, *prompts)
}

func TestClient_CompleteMatchesStream(t *testing.T) {
	ts, _ := fakeOpenAI(t, []string{"a", "b", "c"}, http.StatusOK)
	defer ts.Close()

	text, err := newTestClient(ts.URL).Complete(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", text)
}

func TestClient_BackendErrorSurfacesOnStream(t *testing.T) {
	ts, _ := fakeOpenAI(t, nil, http.StatusInternalServerError)
	defer ts.Close()

	ch, err := newTestClient(ts.URL).Stream(context.Background(), "x")
	require.NoError(t, err)

	var last error
	for c := range ch {
		assert.Empty(t, c.Text)
		last = c.Err
	}
	assert.Error(t, last)

	_, err = newTestClient(ts.URL).Complete(context.Background(), "x")
	assert.Error(t, err)
}

func TestTokenCounter(t *testing.T) {
	counter := NewTokenCounter()
	assert.Equal(t, 0, counter.CountTokens(""))
	assert.Greater(t, counter.CountTokens("Summarize the following feedbacks in a concise manner: great talk"), 5)
	assert.Same(t, counter, NewTokenCounter())
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 1, estimateTokens("abcd"))
	assert.Equal(t, 2, estimateTokens("abcde"))
}
