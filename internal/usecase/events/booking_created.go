package events

import (
	"context"
	"log/slog"
	"strings"

	"servicebook/internal/domain/user"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"
)

// BookingCreated is delivered at least once for every new bookings/{id}.
type BookingCreated struct {
	BookingID string         `json:"bookingId"`
	Record    map[string]any `json:"record"`
}

type BookingCreatedConsumer interface {
	OnBookingCreated(ctx context.Context, ev BookingCreated) error
}

type indexMaintainer struct {
	store  shared.DocumentStore
	logger *slog.Logger
}

// NewIndexMaintainer backfills userBookings entries the request path may
// have missed. Reruns write nothing.
func NewIndexMaintainer(store shared.DocumentStore, logger *slog.Logger) BookingCreatedConsumer {
	return &indexMaintainer{store: store, logger: logger}
}

func (m *indexMaintainer) OnBookingCreated(ctx context.Context, ev BookingCreated) error {
	if ev.BookingID == "" || ev.Record == nil {
		return nil
	}
	customerID := stringField(ev.Record, "customerId")
	workerID := stringField(ev.Record, "workerId")
	if customerID == "" || workerID == "" {
		m.logger.Error("booking missing workerId/customerId",
			"booking_id", ev.BookingID, "customer_id", customerID, "worker_id", workerID)
		return nil
	}

	entries := []string{
		shared.UserBookingPath(user.RoleWorker, workerID, ev.BookingID),
		shared.UserBookingPath(user.RoleCustomer, customerID, ev.BookingID),
	}
	ws := shared.WriteSet{}
	for _, path := range entries {
		snap, err := m.store.Get(ctx, path)
		if err != nil {
			return errs.Internal(err, "read booking index")
		}
		if !snap.Exists() {
			ws[path] = true
		}
	}
	if len(ws) == 0 {
		return nil
	}
	if err := m.store.Update(ctx, ws); err != nil {
		return errs.Internal(err, "write booking index")
	}
	m.logger.Info("booking index repaired", "booking_id", ev.BookingID, "entries", len(ws))
	return nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
