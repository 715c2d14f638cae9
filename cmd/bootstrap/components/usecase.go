package components

import (
	"servicebook/internal/pkg/clock"
	"servicebook/internal/usecase"
	"servicebook/internal/usecase/commands"
	"servicebook/internal/usecase/events"
	"servicebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	usecaseEventsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewPaymentUseCase,
		usecase.NewAuthUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewPrincipalVerifier,
	),
)

var usecaseEventsModule = fx.Module("usecase/events",
	fx.Provide(
		events.NewIndexMaintainer,
		events.NewUnreadCounter,
	),
)
