package application

import (
	"github.com/feedify/backend/internal/application/account"
	"github.com/feedify/backend/internal/application/feedback"
	"github.com/feedify/backend/internal/application/notification"
	"github.com/feedify/backend/internal/application/space"
	"github.com/feedify/backend/internal/application/summary"
	"github.com/google/wire"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	notification.ProviderSet,
	summary.ProviderSet,
	account.ProviderSet,
	space.ProviderSet,
	feedback.ProviderSet,
)
