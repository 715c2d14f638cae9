package bootstrap

import (
	"servicebook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StoreModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.EventsModule,
	components.HandlerModule,
)
