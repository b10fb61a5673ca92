// Package apiclient 基于 resty 的 Feedify API 客户端，供命令行工具和集成测试复用
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	appAccount "github.com/feedify/backend/internal/application/account"
	appFeedback "github.com/feedify/backend/internal/application/feedback"
	appSpace "github.com/feedify/backend/internal/application/space"
	appSummary "github.com/feedify/backend/internal/application/summary"
	"github.com/go-resty/resty/v2"
)

// APIError 服务端返回的错误响应
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// envelope 通用响应结构
type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// Client Feedify API 客户端
// 不设置整体超时，流式请求可能持续较久；调用方通过 ctx 控制
type Client struct {
	http  *resty.Client
	token string
}

// New 创建客户端，baseURL 形如 http://localhost:8080/api/v1
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

// SetToken 设置 Bearer token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token 当前 token
func (c *Client) Token() string {
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx).SetError(&APIError{})
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

// check 把非 2xx 响应转换为 *APIError
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil || apiErr.Message == "" {
		apiErr = &APIError{Message: http.StatusText(resp.StatusCode())}
	}
	apiErr.StatusCode = resp.StatusCode()
	return apiErr
}

// SignUp 注册账户
func (c *Client) SignUp(ctx context.Context, dto *appAccount.SignUpDTO) error {
	return check(c.request(ctx).SetBody(dto).Post("/auth/sign-up"))
}

// Verify 提交邮箱验证码
func (c *Client) Verify(ctx context.Context, username, code string) error {
	return check(c.request(ctx).
		SetBody(&appAccount.VerifyDTO{Username: username, Code: code}).
		Post("/auth/verify"))
}

// SignIn 登录并保存 token
func (c *Client) SignIn(ctx context.Context, identifier, password string) (*appAccount.TokenDTO, error) {
	var out envelope[*appAccount.TokenDTO]
	err := check(c.request(ctx).
		SetBody(&appAccount.SignInDTO{Identifier: identifier, Password: password}).
		SetResult(&out).
		Post("/auth/sign-in"))
	if err != nil {
		return nil, err
	}
	if out.Data == nil || out.Data.Token == "" {
		return nil, fmt.Errorf("sign-in response has no token")
	}
	c.token = out.Data.Token
	return out.Data, nil
}

// CreateSpace 创建反馈空间
func (c *Client) CreateSpace(ctx context.Context, name, title string) (*appSpace.SpaceDTO, error) {
	var out envelope[*appSpace.SpaceDTO]
	err := check(c.request(ctx).
		SetBody(&appSpace.CreateSpaceDTO{Name: name, Title: title}).
		SetResult(&out).
		Post("/spaces"))
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SendMessage 匿名发送反馈
func (c *Client) SendMessage(ctx context.Context, username, spaceName, content string) (*appFeedback.MessageDTO, error) {
	var out envelope[*appFeedback.MessageDTO]
	err := check(c.request(ctx).
		SetPathParams(map[string]string{"username": username, "space": spaceName}).
		SetBody(&appFeedback.SendMessageDTO{Content: content}).
		SetResult(&out).
		Post("/public/{username}/{space}/messages"))
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListMessages 列出空间内的反馈，最新的在前
func (c *Client) ListMessages(ctx context.Context, spaceName string) ([]appFeedback.MessageDTO, error) {
	var out envelope[[]appFeedback.MessageDTO]
	err := check(c.request(ctx).
		SetPathParam("space", spaceName).
		SetResult(&out).
		Get("/spaces/{space}/messages"))
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Summarize 非流式摘要
func (c *Client) Summarize(ctx context.Context, messages []string) (string, error) {
	var out envelope[*appSummary.SummaryDTO]
	err := check(c.request(ctx).
		SetBody(&appSummary.SummarizeDTO{Messages: messages}).
		SetResult(&out).
		Post("/summaries"))
	if err != nil {
		return "", err
	}
	if out.Data == nil {
		return "", nil
	}
	return out.Data.Summary, nil
}

// StreamSummary 打开流式摘要，返回未解析的响应体，调用方负责关闭
// 首个片段之前的失败以 *APIError 返回
func (c *Client) StreamSummary(ctx context.Context, messages []string) (io.ReadCloser, error) {
	resp, err := c.request(ctx).
		SetBody(&appSummary.SummarizeDTO{Messages: messages}).
		SetDoNotParseResponse(true).
		Post("/summaries/stream")
	if err != nil {
		return nil, err
	}

	body := resp.RawBody()
	if resp.StatusCode() == http.StatusOK {
		return body, nil
	}
	defer body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if err := json.NewDecoder(body).Decode(apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return nil, apiErr
}
