package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"servicebook/internal/infra"
	"servicebook/internal/pkg/config"
	"servicebook/internal/usecase/events"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

const (
	fetchBackoff = time.Second
	maxBackoff   = 30 * time.Second
)

// reader is the part of *kafka.Reader the consumer loop needs.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer feeds the booking-created and chat-message-created topics into
// their event consumers. A message is committed only once it was handled or
// found undecodable, so shutdown or a crash redelivers it.
type Consumer struct {
	cfg      config.EventsConfig
	bookings events.BookingCreatedConsumer
	chats    events.ChatMessageCreatedConsumer
	readers  map[string]reader
	backoff  time.Duration
	logger   *slog.Logger
}

func NewConsumer(
	cfg config.EventsConfig,
	bookings events.BookingCreatedConsumer,
	chats events.ChatMessageCreatedConsumer,
	logger *slog.Logger,
) *Consumer {
	c := &Consumer{
		cfg:      cfg,
		bookings: bookings,
		chats:    chats,
		readers:  map[string]reader{},
		backoff:  fetchBackoff,
		logger:   logger,
	}
	if cfg.KafkaEnabled() {
		for _, topic := range []string{cfg.BookingCreatedTopic, cfg.ChatMessageTopic} {
			c.readers[topic] = newReader(cfg, topic)
		}
	}
	return c
}

func newReader(cfg config.EventsConfig, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          topic,
		GroupID:        cfg.KafkaGroupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}

// Run blocks until ctx is cancelled or a reader fails permanently.
func (c *Consumer) Run(ctx context.Context) error {
	if len(c.readers) == 0 {
		c.logger.Info("kafka brokers not configured, event consumer idle")
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for topic, r := range c.readers {
		g.Go(func() error {
			return c.consume(ctx, topic, r)
		})
	}
	return g.Wait()
}

func (c *Consumer) consume(ctx context.Context, topic string, r reader) error {
	c.logger.Info("event consumer started", "topic", topic, "group_id", c.cfg.KafkaGroupID)
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Warn("fetch message failed", "topic", topic, "error", err)
			if !sleep(ctx, fetchBackoff) {
				return nil
			}
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			c.logger.Info("event consumer stopping with message unhandled", "topic", topic, "offset", msg.Offset)
			return nil
		}

		if err := r.CommitMessages(context.WithoutCancel(ctx), msg); err != nil {
			c.logger.Error("commit message failed", "topic", topic, "offset", msg.Offset, "error", err)
		}
	}
}

// handle retries failures with a capped backoff until the message is handled
// or ctx ends; the error is non-nil only in the latter case. Undecodable
// messages are logged and count as handled.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	wait := c.backoff
	for attempt := 1; ; attempt++ {
		err := c.Dispatch(ctx, msg.Topic, msg.Value)
		if err == nil {
			return nil
		}
		if infra.IsKind(err, infra.KindDecodeFailed) {
			c.logger.Error("dropping undecodable event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
			return nil
		}
		c.logger.Warn("event handling failed", "topic", msg.Topic, "offset", msg.Offset, "attempt", attempt, "error", err)
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
		wait = min(2*wait, maxBackoff)
	}
}

// Dispatch decodes one JSON envelope and routes it by topic.
func (c *Consumer) Dispatch(ctx context.Context, topic string, value []byte) error {
	switch topic {
	case c.cfg.BookingCreatedTopic:
		var ev events.BookingCreated
		if err := json.Unmarshal(value, &ev); err != nil {
			return infra.WrapRepoErr(c.logger, infra.KindDecodeFailed, "decode booking created", err)
		}
		return c.bookings.OnBookingCreated(ctx, ev)
	case c.cfg.ChatMessageTopic:
		var ev events.ChatMessageCreated
		if err := json.Unmarshal(value, &ev); err != nil {
			return infra.WrapRepoErr(c.logger, infra.KindDecodeFailed, "decode chat message", err)
		}
		return c.chats.OnChatMessageCreated(ctx, ev)
	default:
		return infra.WrapRepoErr(c.logger, infra.KindDecodeFailed, "no consumer for topic "+topic, nil)
	}
}

func (c *Consumer) Close() error {
	var errList []error
	for _, r := range c.readers {
		if err := r.Close(); err != nil {
			errList = append(errList, err)
		}
	}
	if len(errList) == 0 {
		return nil
	}
	return infra.WrapRepoErr(c.logger, infra.KindBrokerError, "close kafka readers", errors.Join(errList...))
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
