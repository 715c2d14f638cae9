package shared

import "context"

type NotificationType string

const (
	NotifyBookingRequest        NotificationType = "booking_request"
	NotifyQuoteRequested        NotificationType = "quote_requested"
	NotifyQuoteDeclinedByWorker NotificationType = "quote_declined_by_worker"
	NotifyQuoteAcceptedByWorker NotificationType = "quote_accepted_by_worker"
	NotifyInvoiceSent           NotificationType = "invoice_sent"
	NotifyQuoteDeclined         NotificationType = "quote_declined"
	NotifyQuoteAccepted         NotificationType = "quote_accepted"
	NotifyPaymentPaid           NotificationType = "payment_paid"
)

type Notification struct {
	Recipient string
	Type      NotificationType
	Title     string
	Body      string
	BookingID string
}

// Notifier delivers a per-user message. Callers treat failures as
// non-fatal.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
