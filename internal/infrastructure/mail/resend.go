// Package mail 通过 Resend API 发送验证邮件
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// VerificationSubject 验证邮件标题
const VerificationSubject = "Feedify Feedback Message Verification Code"

var verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Verification Code</title></head>
<body style="font-family: Roboto, Verdana, sans-serif;">
  <h2>Hello {{.Username}},</h2>
  <p>Thank you for registering. Please use the following verification code to complete your registration:</p>
  <p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
  <p>If you did not request this code, please ignore this email.</p>
</body>
</html>`))

// sendEmailRequest Resend 发送邮件请求
type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// sendEmailResponse Resend 发送邮件响应
type sendEmailResponse struct {
	ID string `json:"id"`
}

// resendError Resend 错误响应
type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// ResendMailer Resend 邮件发送实现
// 未配置 API Key 时只记录验证码日志，便于本地开发
type ResendMailer struct {
	client *resty.Client
	from   string
	dryRun bool
	logger *slog.Logger
}

// NewResendMailer 创建邮件发送器
func NewResendMailer(cfg *config.MailConfig) *ResendMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &ResendMailer{
		client: client,
		from:   fmt.Sprintf("Feedify <onboarding@%s>", cfg.Domain),
		dryRun: cfg.APIKey == "",
		logger: log.NewModuleLogger("mail", "resend"),
	}
}

// SendVerification 发送注册验证码
func (m *ResendMailer) SendVerification(ctx context.Context, email, username, code string) error {
	if m.dryRun {
		m.logger.Warn("Mail API key not configured, verification code logged instead of sent",
			"username", username,
			"email", email,
			"code", code,
		)
		return nil
	}

	var body bytes.Buffer
	if err := verificationTemplate.Execute(&body, map[string]string{
		"Username": username,
		"Code":     code,
	}); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	var result sendEmailResponse
	var apiErr resendError
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(&sendEmailRequest{
			From:    m.from,
			To:      []string{email},
			Subject: VerificationSubject,
			HTML:    body.String(),
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail API returned status %d: %s", resp.StatusCode(), apiErr.Message)
	}

	m.logger.Info("Verification email sent",
		"username", username,
		"email_id", result.ID,
	)
	return nil
}
