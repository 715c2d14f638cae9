//go:build unit || e2e

package builder

import (
	"servicebook/internal/domain/booking"
)

const (
	CustomerUID = "cust-1"
	WorkerUID   = "work-1"
	StrangerUID = "stranger-1"
	BookingID   = "bk-1"
	BaseMillis  = int64(1_760_000_000_000)
)

type BookingBuilder struct {
	ID           string
	CustomerID   string
	CustomerName string
	WorkerID     string
	ServiceName  string
	LocationText string
	Description  string
	Status       booking.Status
	CreatedAt    int64
	Invoice      *booking.Invoice
	Intents      map[string]booking.PaymentIntent
	Payment      *booking.Payment
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:           BookingID,
		CustomerID:   CustomerUID,
		CustomerName: "Nimal Perera",
		WorkerID:     WorkerUID,
		ServiceName:  "Plumbing",
		LocationText: "Colombo",
		Description:  "Leaking kitchen sink",
		Status:       booking.StatusPending,
		CreatedAt:    BaseMillis,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) InStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

// WithInvoice attaches a sent invoice with the given subtotal.
func (b *BookingBuilder) WithInvoice(subtotal float64) *BookingBuilder {
	b.Invoice = &booking.Invoice{
		InspectionFee: subtotal,
		Subtotal:      subtotal,
		ValidUntil:    b.CreatedAt + 3*86_400_000,
		SentAt:        b.CreatedAt,
		WorkerName:    "Sunil Silva",
	}
	return b
}

func (b *BookingBuilder) WithIntent(in booking.PaymentIntent) *BookingBuilder {
	if b.Intents == nil {
		b.Intents = map[string]booking.PaymentIntent{}
	}
	b.Intents[in.IntentID] = in
	return b
}

func (b *BookingBuilder) Build() *booking.Booking {
	return &booking.Booking{
		BookingID:          b.ID,
		CustomerID:         b.CustomerID,
		CustomerName:       b.CustomerName,
		WorkerID:           b.WorkerID,
		ServiceName:        b.ServiceName,
		LocationText:       b.LocationText,
		ProblemDescription: b.Description,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.CreatedAt,
		Invoice:            b.Invoice,
		PaymentIntent:      b.Intents,
		Payment:            b.Payment,
	}
}

func Float(v float64) *float64 {
	return &v
}

// ColomboFees is the reference invoice: 1000 + 2*600 + 600 = 2800.
func ColomboFees() booking.FeeInput {
	return booking.FeeInput{
		InspectionFee: Float(1000),
		LaborHours:    Float(2),
		LaborPrice:    Float(600),
		Materials:     Float(600),
	}
}
