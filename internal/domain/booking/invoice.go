package booking

import (
	"fmt"
	"math"

	"servicebook/internal/pkg/errs"
	"servicebook/internal/pkg/patch"
)

const (
	DefaultValidDays = 3
	dayMillis        = 86_400_000
	DefaultWorker    = "Worker"
)

// FeeInput carries the raw invoice components. A nil field means the caller
// omitted it.
type FeeInput struct {
	InspectionFee *float64
	LaborHours    *float64
	LaborPrice    *float64
	Materials     *float64
}

type Fees struct {
	InspectionFee float64
	LaborHours    float64
	LaborPrice    float64
	Materials     float64
}

func (in FeeInput) Validate() (Fees, error) {
	fields := []struct {
		name string
		val  *float64
	}{
		{"inspectionFee", in.InspectionFee},
		{"laborHours", in.LaborHours},
		{"laborPrice", in.LaborPrice},
		{"materials", in.Materials},
	}
	for _, f := range fields {
		if f.val == nil {
			return Fees{}, errs.Validation(fmt.Sprintf("%s is required", f.name))
		}
		v := *f.val
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Fees{}, errs.Validation(fmt.Sprintf("%s must be a finite number", f.name))
		}
		if v < 0 {
			return Fees{}, errs.Validation(fmt.Sprintf("%s must be >= 0", f.name))
		}
	}
	return Fees{
		InspectionFee: *in.InspectionFee,
		LaborHours:    *in.LaborHours,
		LaborPrice:    *in.LaborPrice,
		Materials:     *in.Materials,
	}, nil
}

func (f Fees) Subtotal() float64 {
	return f.InspectionFee + f.LaborHours*f.LaborPrice + f.Materials
}

// ValidDays falls back to DefaultValidDays for a missing, non-finite or
// non-positive value.
func ValidDays(v *float64) float64 {
	d := patch.Coalesce(v, DefaultValidDays)
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return DefaultValidDays
	}
	return d
}

func ValidUntil(now int64, validDays *float64) int64 {
	return now + int64(ValidDays(validDays)*dayMillis)
}

type Invoice struct {
	InspectionFee float64 `json:"inspectionFee"`
	LaborHours    float64 `json:"laborHours"`
	LaborPrice    float64 `json:"laborPrice"`
	Materials     float64 `json:"materials"`
	Notes         string  `json:"notes"`
	Subtotal      float64 `json:"subtotal"`
	ValidUntil    int64   `json:"validUntil"`
	SentAt        int64   `json:"sentAt"`
	WorkerName    string  `json:"workerName"`
}

type InvoiceDraft struct {
	InspectionFee float64 `json:"inspectionFee"`
	LaborHours    float64 `json:"laborHours"`
	LaborPrice    float64 `json:"laborPrice"`
	Materials     float64 `json:"materials"`
	Notes         string  `json:"notes"`
	Subtotal      float64 `json:"subtotal"`
	ValidDays     float64 `json:"validDays"`
	SavedAt       int64   `json:"savedAt"`
}

// SaveDraft stores worker-side invoice numbers without changing status.
// Drafts are only accepted while an invoice could still be sent.
func (b *Booking) SaveDraft(uid string, fees Fees, notes string, validDays *float64, now int64) (InvoiceDraft, Patch, error) {
	if _, err := b.CheckTransition(ActionSendInvoice, uid); err != nil {
		return InvoiceDraft{}, nil, err
	}
	draft := InvoiceDraft{
		InspectionFee: fees.InspectionFee,
		LaborHours:    fees.LaborHours,
		LaborPrice:    fees.LaborPrice,
		Materials:     fees.Materials,
		Notes:         notes,
		Subtotal:      fees.Subtotal(),
		ValidDays:     ValidDays(validDays),
		SavedAt:       now,
	}
	return draft, Patch{
		"invoiceDraft": draft,
		"updatedAt":    now,
	}, nil
}

// SendInvoice moves the booking to invoice_sent and clears any draft.
func (b *Booking) SendInvoice(uid, workerName string, fees Fees, notes string, validDays *float64, now int64) (Invoice, Patch, error) {
	t, err := b.CheckTransition(ActionSendInvoice, uid)
	if err != nil {
		return Invoice{}, nil, err
	}
	if workerName == "" {
		workerName = DefaultWorker
	}
	inv := Invoice{
		InspectionFee: fees.InspectionFee,
		LaborHours:    fees.LaborHours,
		LaborPrice:    fees.LaborPrice,
		Materials:     fees.Materials,
		Notes:         notes,
		Subtotal:      fees.Subtotal(),
		ValidUntil:    ValidUntil(now, validDays),
		SentAt:        now,
		WorkerName:    workerName,
	}
	return inv, Patch{
		"status":       string(t.To),
		"updatedAt":    now,
		"invoice":      inv,
		"invoiceDraft": nil,
	}, nil
}

// FormatAmount renders a currency amount the way the gateway expects it.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", math.Round(v*100)/100)
}
