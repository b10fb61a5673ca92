package domain

import (
	"github.com/feedify/backend/internal/domain/account"
	"github.com/feedify/backend/internal/domain/feedback"
	"github.com/feedify/backend/internal/domain/notification"
	"github.com/feedify/backend/internal/domain/space"
	"github.com/google/wire"
)

// ProviderSet 领域服务 ProviderSet
var ProviderSet = wire.NewSet(
	account.NewService,
	space.NewService,
	feedback.NewService,
	notification.NewService,
)
