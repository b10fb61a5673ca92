//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/feedify/backend/internal/application"
	appAccount "github.com/feedify/backend/internal/application/account"
	appNotification "github.com/feedify/backend/internal/application/notification"
	appSummary "github.com/feedify/backend/internal/application/summary"
	"github.com/feedify/backend/internal/domain"
	"github.com/feedify/backend/internal/infrastructure"
	"github.com/feedify/backend/internal/infrastructure/auth"
	"github.com/feedify/backend/internal/infrastructure/config"
	"github.com/feedify/backend/internal/infrastructure/llm"
	"github.com/feedify/backend/internal/infrastructure/mail"
	infraNotification "github.com/feedify/backend/internal/infrastructure/notification"
	"github.com/feedify/backend/internal/infrastructure/scheduler"
	"github.com/feedify/backend/internal/interfaces"
	"github.com/google/wire"
)

// InitializeAll 初始化所有服务（HTTP + MCP + WebSocket）
func InitializeAll(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		domain.ProviderSet,         // 领域层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：application 端口 -> infrastructure 实现
		wire.Bind(new(appNotification.Pusher), new(*infraNotification.WebSocketPusher)),
		wire.Bind(new(appSummary.Generator), new(*llm.Client)),
		wire.Bind(new(appSummary.TokenCounter), new(*llm.TokenCounter)),
		wire.Bind(new(appAccount.Mailer), new(*mail.ResendMailer)),
		wire.Bind(new(appAccount.PasswordHasher), new(*auth.BcryptHasher)),
		wire.Bind(new(appAccount.TokenIssuer), new(*auth.TokenIssuer)),
		wire.Bind(new(scheduler.Purger), new(*appAccount.Service)),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil, nil
}
