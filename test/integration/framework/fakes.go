//go:build integration
// +build integration

// 外部依赖的假实现：OpenAI 兼容接口和 Resend 邮件接口
package framework

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// FakeOpenAI 模拟 chat/completions，按预设片段输出
type FakeOpenAI struct {
	*httptest.Server

	mu        sync.Mutex
	fragments []string
	// failAfter >= 0 时输出 failAfter 个片段后断开连接
	failAfter int
	status    int
	calls     atomic.Int32
}

// NewFakeOpenAI 创建并启动假的生成后端
func NewFakeOpenAI(t *testing.T, fragments ...string) *FakeOpenAI {
	t.Helper()
	f := &FakeOpenAI{fragments: fragments, failAfter: -1, status: http.StatusOK}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

// SetFragments 替换输出片段
func (f *FakeOpenAI) SetFragments(fragments ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fragments = fragments
	f.failAfter = -1
	f.status = http.StatusOK
}

// FailWith 让后续请求直接返回错误状态码
func (f *FakeOpenAI) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// DropAfter 输出 n 个片段后断开连接
func (f *FakeOpenAI) DropAfter(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAfter = n
}

// Calls 返回收到的请求数
func (f *FakeOpenAI) Calls() int {
	return int(f.calls.Load())
}

// URL 返回 OpenAI 客户端使用的基础地址
func (f *FakeOpenAI) URL() string {
	return f.Server.URL + "/v1/"
}

func (f *FakeOpenAI) handle(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
		http.NotFound(w, r)
		return
	}
	f.calls.Add(1)

	f.mu.Lock()
	fragments := append([]string(nil), f.fragments...)
	failAfter, status := f.failAfter, f.status
	f.mu.Unlock()

	var req struct {
		Stream bool `json:"stream"`
	}
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &req)

	if status != http.StatusOK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream failure","type":"server_error"}}`))
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
	for i, frag := range fragments {
		if i == failAfter {
			// 不发送 [DONE] 直接断开
			panic(http.ErrAbortHandler)
		}
		_, _ = fmt.Fprintf(w, `data: {"id":"c1","object":"chat.completion.chunk","created":0,"model":"m","choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`+"\n\n", frag)
		flusher.Flush()
	}
	_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
}

var verifyCodePattern = regexp.MustCompile(`>(\d{6})<`)

// FakeResend 模拟 Resend 邮件接口，记录每个收件人的验证码
type FakeResend struct {
	*httptest.Server

	mu    sync.Mutex
	codes map[string]string
}

// NewFakeResend 创建并启动假的邮件接口
func NewFakeResend(t *testing.T) *FakeResend {
	t.Helper()
	f := &FakeResend{codes: make(map[string]string)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

// CodeFor 返回发给 email 的最近一个验证码
func (f *FakeResend) CodeFor(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[email]
}

func (f *FakeResend) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/emails" {
		http.NotFound(w, r)
		return
	}
	var req struct {
		To   []string `json:"to"`
		HTML string   `json:"html"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid body"}`))
		return
	}

	if m := verifyCodePattern.FindStringSubmatch(req.HTML); m != nil {
		f.mu.Lock()
		for _, to := range req.To {
			f.codes[to] = m[1]
		}
		f.mu.Unlock()
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"id":"email-1"}`))
}
