package components

import (
	"context"
	"log/slog"

	"servicebook/internal/infra/eventbus"
	"servicebook/internal/pkg/config"
	"servicebook/internal/usecase/events"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventConsumer,
	),
	fx.Invoke(runEventConsumer),
)

func NewEventConsumer(
	cfg config.Config,
	bookings events.BookingCreatedConsumer,
	chats events.ChatMessageCreatedConsumer,
	logger *slog.Logger,
) *eventbus.Consumer {
	return eventbus.NewConsumer(cfg.Events, bookings, chats, logger)
}

func runEventConsumer(lc fx.Lifecycle, consumer *eventbus.Consumer, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := consumer.Run(ctx); err != nil {
					logger.Error("event consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return consumer.Close()
		},
	})
}
