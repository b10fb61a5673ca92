//go:build integration
// +build integration

// TestServer 管理独立 feedify-server 进程的启动与关闭
package framework

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// TestServer 测试服务进程
type TestServer struct {
	Name     string // 实例名称
	HTTPPort int    // HTTP 端口
	DataDir  string // 数据目录（隔离）

	env     []string
	cmd     *exec.Cmd
	baseURL string
}

// ServerOption 服务进程配置选项
type ServerOption func(*TestServer)

// WithEnv 追加环境变量
func WithEnv(kv ...string) ServerOption {
	return func(s *TestServer) {
		s.env = append(s.env, kv...)
	}
}

// WithDataDir 复用已有数据目录（用于重启场景）
func WithDataDir(dir string) ServerOption {
	return func(s *TestServer) {
		s.DataDir = dir
	}
}

// NewTestServer 创建测试服务进程，llmURL 和 mailURL 指向假的外部依赖
func NewTestServer(binaryPath, name, llmURL, mailURL string, opts ...ServerOption) (*TestServer, error) {
	httpPort, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate HTTP port: %w", err)
	}

	s := &TestServer{
		Name:     name,
		HTTPPort: httpPort,
		baseURL:  fmt.Sprintf("http://localhost:%d", httpPort),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.DataDir == "" {
		s.DataDir, err = os.MkdirTemp("", fmt.Sprintf("feedify-test-%s-", name))
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	s.cmd = exec.Command(binaryPath)
	// 在数据目录中运行，避免读到仓库里的 feedify.yaml / .env
	s.cmd.Dir = s.DataDir
	s.cmd.Env = append(os.Environ(),
		fmt.Sprintf("FEEDIFY_HTTP_PORT=:%d", httpPort),
		fmt.Sprintf("FEEDIFY_DB_PATH=%s", filepath.Join(s.DataDir, "feedify.db")),
		fmt.Sprintf("FEEDIFY_LLM_BASE_URL=%s", llmURL),
		"FEEDIFY_LLM_API_KEY=test-key",
		"FEEDIFY_LLM_MODEL=test-model",
		"FEEDIFY_LLM_MAX_RETRIES=0",
		"FEEDIFY_AUTH_SECRET=integration-test-secret-0123456789",
		fmt.Sprintf("FEEDIFY_MAIL_BASE_URL=%s", mailURL),
		"FEEDIFY_MAIL_API_KEY=test-mail-key",
		"FEEDIFY_EMAIL_DOMAIN=example.com",
		"FEEDIFY_RATE_LIMIT_RPM=0",
		"GIN_MODE=test",
	)
	s.cmd.Env = append(s.cmd.Env, s.env...)
	s.cmd.Stdout = os.Stdout
	s.cmd.Stderr = os.Stderr

	return s, nil
}

// Start 启动服务并等待就绪
func (s *TestServer) Start() error {
	if err := s.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server %s: %w", s.Name, err)
	}
	return s.waitForReady(30 * time.Second)
}

// Stop 停止服务并清理数据目录
func (s *TestServer) Stop() error {
	return s.StopWithCleanup(true)
}

// StopWithCleanup 停止服务，可选择是否清理数据目录
func (s *TestServer) StopWithCleanup(cleanup bool) error {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Signal(os.Interrupt)

		done := make(chan error, 1)
		go func() {
			done <- s.cmd.Wait()
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			_ = s.cmd.Process.Kill()
			<-done
		}
	}

	if cleanup {
		return os.RemoveAll(s.DataDir)
	}
	return nil
}

// BaseURL 返回 HTTP 基础 URL
func (s *TestServer) BaseURL() string {
	return s.baseURL
}

// APIURL 返回 API 基础 URL
func (s *TestServer) APIURL() string {
	return s.baseURL + "/api/v1"
}

// waitForReady 等待 health 端点就绪
func (s *TestServer) waitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(s.baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}

	return fmt.Errorf("server %s failed to become ready within %v", s.Name, timeout)
}

// getFreePort 获取一个空闲的 TCP 端口
func getFreePort() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}
