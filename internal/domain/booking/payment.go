package booking

import (
	"math"
	"sort"
)

type IntentStatus string

const (
	IntentStarted IntentStatus = "started"
	IntentPaid    IntentStatus = "paid"
)

const PaymentStatusPaid = "paid"

type PaymentIntent struct {
	IntentID  string       `json:"intentId"`
	Amount    string       `json:"amount"`
	Currency  string       `json:"currency"`
	Status    IntentStatus `json:"status"`
	CreatedAt int64        `json:"createdAt"`
	PaidAt    int64        `json:"paidAt,omitempty"`
	PaymentID string       `json:"paymentId,omitempty"`
}

// Payment is both the booking's payment snapshot and a payments/{id} entry.
type Payment struct {
	Status     string `json:"status"`
	Provider   string `json:"provider"`
	PaymentID  string `json:"paymentId"`
	OrderID    string `json:"orderId"`
	IntentID   string `json:"intentId,omitempty"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	StatusCode string `json:"statusCode"`
	PaidAt     int64  `json:"paidAt"`
}

// AdvanceAmount is percent of the invoice subtotal, formatted with two
// decimals.
func AdvanceAmount(subtotal, percent float64) (string, error) {
	v := subtotal * percent / 100
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return "", ErrInvalidAdvance
	}
	return FormatAmount(v), nil
}

// LatestIntent returns the intent with the greatest createdAt. Ties go to
// the greatest key so the choice is stable.
func (b *Booking) LatestIntent() (PaymentIntent, bool) {
	if len(b.PaymentIntent) == 0 {
		return PaymentIntent{}, false
	}
	keys := make([]string, 0, len(b.PaymentIntent))
	for k := range b.PaymentIntent {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var (
		best    PaymentIntent
		bestKey string
		found   bool
	)
	for _, k := range keys {
		in := b.PaymentIntent[k]
		if !found || in.CreatedAt >= best.CreatedAt {
			best, bestKey, found = in, k, true
		}
	}
	if best.IntentID == "" {
		best.IntentID = bestKey
	}
	return best, true
}

// StartPayment opens a new intent for the advance amount.
func (b *Booking) StartPayment(uid, intentID string, percent float64, currency string, now int64) (PaymentIntent, Patch, error) {
	if !b.IsCustomer(uid) {
		return PaymentIntent{}, nil, ErrNotBookingCustomer
	}
	if b.IsPaid() {
		return PaymentIntent{}, nil, ErrAlreadyPaid
	}
	if b.Invoice == nil {
		return PaymentIntent{}, nil, ErrNoInvoice
	}
	if !b.CanPay() {
		return PaymentIntent{}, nil, ErrInvalidTransition
	}
	amount, err := AdvanceAmount(b.Invoice.Subtotal, percent)
	if err != nil {
		return PaymentIntent{}, nil, err
	}
	in := PaymentIntent{
		IntentID:  intentID,
		Amount:    amount,
		Currency:  currency,
		Status:    IntentStarted,
		CreatedAt: now,
	}
	return in, Patch{
		"paymentIntent/" + intentID: in,
		"updatedAt":                 now,
	}, nil
}

// ConfirmPayment builds the terminal write for a verified gateway callback.
// The caller must have checked CanPay against the same snapshot.
func (b *Booking) ConfirmPayment(p Payment, now int64) Patch {
	if in, ok := b.LatestIntent(); ok {
		p.IntentID = in.IntentID
	}
	p.Status = PaymentStatusPaid
	p.PaidAt = now

	patch := Patch{
		"status":                  string(StatusPaymentPaid),
		"updatedAt":               now,
		"payment":                 p,
		"payments/" + p.PaymentID: p,
	}
	if p.IntentID != "" {
		prefix := "paymentIntent/" + p.IntentID + "/"
		patch[prefix+"status"] = string(IntentPaid)
		patch[prefix+"paidAt"] = now
		patch[prefix+"paymentId"] = p.PaymentID
	}
	return patch
}
