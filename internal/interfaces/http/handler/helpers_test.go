package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appAccount "github.com/feedify/backend/internal/application/account"
	appFeedback "github.com/feedify/backend/internal/application/feedback"
	appNotification "github.com/feedify/backend/internal/application/notification"
	appSpace "github.com/feedify/backend/internal/application/space"
	appSummary "github.com/feedify/backend/internal/application/summary"
	"github.com/feedify/backend/internal/domain/account"
	"github.com/feedify/backend/internal/domain/feedback"
	"github.com/feedify/backend/internal/domain/notification"
	"github.com/feedify/backend/internal/domain/space"
	"github.com/feedify/backend/internal/infrastructure/auth"
	"github.com/feedify/backend/internal/infrastructure/config"
	infraNotification "github.com/feedify/backend/internal/infrastructure/notification"
	"github.com/feedify/backend/internal/infrastructure/storage"
	"github.com/feedify/backend/internal/infrastructure/websocket"
	"github.com/feedify/backend/internal/interfaces/http/middleware"
	"github.com/feedify/backend/internal/interfaces/http/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.Register(); err != nil {
		panic(err)
	}
}

// scriptedGenerator 按预设片段输出，failAfter >= 0 时在第 failAfter 个片段处失败
type scriptedGenerator struct {
	mu        sync.Mutex
	fragments []string
	failAfter int
	err       error
	calls     int
}

func newScriptedGenerator(fragments ...string) *scriptedGenerator {
	return &scriptedGenerator{fragments: fragments, failAfter: -1}
}

func (g *scriptedGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.failAfter == 0 {
		return "", g.err
	}
	var buf bytes.Buffer
	for _, f := range g.fragments {
		buf.WriteString(f)
	}
	return buf.String(), nil
}

func (g *scriptedGenerator) Stream(ctx context.Context, prompt string) (<-chan appSummary.Chunk, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	ch := make(chan appSummary.Chunk)
	go func() {
		defer close(ch)
		for i, f := range g.fragments {
			if i == g.failAfter {
				select {
				case ch <- appSummary.Chunk{Err: g.err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case ch <- appSummary.Chunk{Text: f}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// recordingMailer 记录发送的验证码
type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (m *recordingMailer) SendVerification(ctx context.Context, email, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.codes == nil {
		m.codes = make(map[string]string)
	}
	m.codes[username] = code
	return nil
}

func (m *recordingMailer) codeFor(username string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[username]
}

// testEnv 基于临时 sqlite 的处理器测试环境
type testEnv struct {
	router   *gin.Engine
	users    account.Repository
	tokens   *auth.TokenIssuer
	gen      *scriptedGenerator
	mailer   *recordingMailer
	feedback *appFeedback.Service
	notifier *appNotification.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "feedify_handler_*")
	require.NoError(t, err)
	db, err := storage.OpenDB(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(tmpDir)
	})

	authCfg := &config.AuthConfig{Secret: "handler-test-secret-key", TokenTTL: time.Hour, VerifyCodeTTL: time.Hour}
	users := storage.NewUserRepository(db)
	spaces := storage.NewSpaceRepository(db)
	messages := storage.NewMessageRepository(db)
	public := storage.NewPublicFeedbackRepository(db)

	env := &testEnv{
		users:  users,
		tokens: auth.NewTokenIssuer(authCfg),
		gen:    newScriptedGenerator("Users ", "liked ", "the ", "demo."),
		mailer: &recordingMailer{},
	}

	accounts := appAccount.NewService(users, account.NewService(), auth.NewBcryptHasher(), env.tokens, env.mailer, authCfg)
	spaceSvc := appSpace.NewService(spaces, users, space.NewService())
	env.feedback = appFeedback.NewService(messages, public, spaces, users, feedback.NewService(), env.gen, nil)
	relay := appSummary.NewRelay(env.gen, nil, &config.SummaryConfig{FragmentTimeout: 5 * time.Second})

	hub := websocket.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	env.notifier = appNotification.NewService(infraNotification.NewMemoryRepository(), notification.NewService(), infraNotification.NewWebSocketPusher(hub))
	wsServer := websocket.NewServer(hub, &config.WebSocketConfig{}, &config.ServerConfig{})

	authHandler := NewAuthHandler(accounts)
	accountHandler := NewAccountHandler(accounts)
	spaceHandler := NewSpaceHandler(spaceSvc)
	messageHandler := NewMessageHandler(env.feedback)
	publicHandler := NewPublicFeedbackHandler(env.feedback)
	summaryHandler := NewSummaryHandler(relay, env.feedback)
	notificationHandler := NewNotificationHandler(env.notifier, wsServer)

	router := gin.New()
	router.Use(middleware.Recovery())
	api := router.Group("/api/v1")
	{
		api.POST("/auth/sign-up", authHandler.SignUp)
		api.GET("/auth/check-username", authHandler.CheckUsername)
		api.POST("/auth/verify", authHandler.Verify)
		api.POST("/auth/sign-in", authHandler.SignIn)

		api.GET("/public/:username/:space/heading", spaceHandler.Heading)
		api.GET("/public/:username/:space/feedback", publicHandler.List)
		api.POST("/public/:username/:space/messages", messageHandler.Send)
		api.GET("/public/suggest", messageHandler.Suggest)

		secured := api.Group("", middleware.BearerAuth(env.tokens))
		secured.GET("/me", accountHandler.Me)
		secured.GET("/accept-messages", accountHandler.GetAcceptMessages)
		secured.POST("/accept-messages", accountHandler.SetAcceptMessages)
		secured.GET("/spaces", spaceHandler.List)
		secured.POST("/spaces", spaceHandler.Create)
		secured.GET("/spaces/:space/messages", messageHandler.List)
		secured.GET("/spaces/:space/export", messageHandler.Export)
		secured.POST("/spaces/:space/summary/stream", summaryHandler.StreamSpace)
		secured.DELETE("/messages/:id", messageHandler.Delete)
		secured.POST("/public-feedback", publicHandler.Add)
		secured.GET("/notifications", notificationHandler.List)
		secured.POST("/summaries", summaryHandler.Summarize)
		secured.POST("/summaries/stream", summaryHandler.Stream)
	}
	env.router = router
	return env
}

// createUser 直接写入一个已验证用户并返回访问令牌
func (e *testEnv) createUser(t *testing.T, username string) (string, string) {
	t.Helper()

	hash, err := auth.NewBcryptHasher().Hash("secret123")
	require.NoError(t, err)
	u := &account.User{
		Username:            username,
		Email:               username + "@example.com",
		PasswordHash:        hash,
		IsVerified:          true,
		IsAcceptingMessages: true,
		CreatedAt:           time.Now(),
	}
	require.NoError(t, e.users.Save(u))

	token, _, err := e.tokens.Issue(u.ID)
	require.NoError(t, err)
	return u.ID, token
}

// do 发送请求
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode 解析统一响应
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}
