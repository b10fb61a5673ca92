package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedify/backend/internal/interfaces/http/response"
)

// TestSummaryHandler_Stream 测试流式摘要的响应体是片段拼接
func TestSummaryHandler_Stream(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "quinn")

	w := env.do(http.MethodPost, "/api/v1/summaries/stream", token, map[string][]string{"messages": {"A", "B"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Users liked the demo.", w.Body.String())
	assert.True(t, w.Flushed)
}

// TestSummaryHandler_StreamMatchesSummarize 测试流式与非流式结果一致
func TestSummaryHandler_StreamMatchesSummarize(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "rosa")
	body := map[string][]string{"messages": {"fast", "clear"}}

	stream := env.do(http.MethodPost, "/api/v1/summaries/stream", token, body)
	require.Equal(t, http.StatusOK, stream.Code)

	w := env.do(http.MethodPost, "/api/v1/summaries", token, body)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, stream.Body.String(), data["summary"])
}

// TestSummaryHandler_RejectsBeforeBackend 测试输入和认证错误不调用后端
func TestSummaryHandler_RejectsBeforeBackend(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "sam")

	w := env.do(http.MethodPost, "/api/v1/summaries/stream", token, map[string][]string{"messages": {}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide valid messages to summarize", decode(t, w)["message"])

	w = env.do(http.MethodPost, "/api/v1/summaries/stream", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/v1/summaries/stream", "", map[string][]string{"messages": {"A"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, 0, env.gen.callCount())
}

// TestSummaryHandler_FailureBeforeFirstFragment 测试首个片段前失败返回 JSON 500
func TestSummaryHandler_FailureBeforeFirstFragment(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "tina")
	env.gen.failAfter = 0
	env.gen.err = errors.New("quota exceeded")

	w := env.do(http.MethodPost, "/api/v1/summaries/stream", token, map[string][]string{"messages": {"A"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, float64(response.CodeBackend), resp["code"])
	assert.Contains(t, resp["detail"], "quota exceeded")
}

// TestSummaryHandler_MidStreamFailureTruncatesBody 测试中途失败时客户端收到不完整的分块传输
func TestSummaryHandler_MidStreamFailureTruncatesBody(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "uma")
	env.gen.failAfter = 2
	env.gen.err = errors.New("connection reset")

	ts := httptest.NewServer(env.router)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/summaries/stream", strings.NewReader(`{"messages":["A"]}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "Users liked ", string(body))
}

// TestSummaryHandler_StreamSpace 测试摘要空间内的消息
func TestSummaryHandler_StreamSpace(t *testing.T) {
	env := newTestEnv(t)
	token := setupSpace(t, env, "vera", "standup")

	w := env.do(http.MethodPost, "/api/v1/spaces/standup/summary/stream", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "空间内没有消息")

	w = env.do(http.MethodPost, "/api/v1/public/vera/standup/messages", "", map[string]string{"content": "ship it"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/api/v1/spaces/standup/summary/stream", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Users liked the demo.", w.Body.String())

	w = env.do(http.MethodPost, "/api/v1/spaces/missing/summary/stream", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
