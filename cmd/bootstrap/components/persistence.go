package components

import (
	"servicebook/internal/infra/notify"
	"servicebook/internal/usecase/shared"

	"go.uber.org/fx"
)

// PersistenceModule builds on the shared.DocumentStore provided by the store
// module; everything else persists through it.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			notify.NewStoreNotifier,
			fx.As(new(shared.Notifier)),
		),
	),
)
