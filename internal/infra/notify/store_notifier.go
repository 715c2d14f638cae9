package notify

import (
	"context"
	"time"

	"servicebook/internal/pkg/clock"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"
)

// Record is the document written under notifications/{uid}/{id}.
type Record struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	BookingID    string `json:"bookingId"`
	IsRead       bool   `json:"isRead"`
	Timestamp    int64  `json:"timestamp"`
	CreatedAtISO string `json:"createdAtIso"`
}

// StoreNotifier appends notifications to the document store, where client
// apps pick them up.
type StoreNotifier struct {
	store shared.DocumentStore
	clock clock.Clock
}

var _ shared.Notifier = (*StoreNotifier)(nil)

func NewStoreNotifier(store shared.DocumentStore, clk clock.Clock) *StoreNotifier {
	return &StoreNotifier{store: store, clock: clk}
}

func (n *StoreNotifier) Notify(ctx context.Context, msg shared.Notification) error {
	if msg.Recipient == "" {
		return errs.New("notification has no recipient")
	}
	now := n.clock.Now()
	id := n.store.NewKey()
	rec := Record{
		ID:           id,
		Type:         string(msg.Type),
		Title:        msg.Title,
		Message:      msg.Body,
		BookingID:    msg.BookingID,
		IsRead:       false,
		Timestamp:    now.UnixMilli(),
		CreatedAtISO: now.UTC().Format(time.RFC3339Nano),
	}
	if err := n.store.Update(ctx, shared.WriteSet{shared.NotificationPath(msg.Recipient, id): rec}); err != nil {
		return errs.Wrapf(err, "notify %s", msg.Recipient)
	}
	return nil
}
