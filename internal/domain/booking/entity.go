package booking

// Booking is the document stored at bookings/{bookingId}. Optional scalar
// fields are pointers so an absent value round-trips as null.
type Booking struct {
	BookingID          string  `json:"bookingId"`
	CustomerID         string  `json:"customerId"`
	CustomerName       string  `json:"customerName,omitempty"`
	WorkerID           string  `json:"workerId"`
	ServiceID          string  `json:"serviceId,omitempty"`
	ServiceName        string  `json:"serviceName"`
	LocationText       string  `json:"locationText"`
	ProblemDescription string  `json:"problemDescription"`
	ScheduledDate      *string `json:"scheduledDate"`
	ScheduledTime      *string `json:"scheduledTime"`
	ScheduledAt        *int64  `json:"scheduledAt"`
	DateMode           *string `json:"dateMode"`
	Photos             Photos  `json:"photos,omitempty"`
	Status             Status  `json:"status"`
	CreatedAt          int64   `json:"createdAt"`
	UpdatedAt          int64   `json:"updatedAt"`

	QuotationRequest *QuotationRequest        `json:"quotationRequest,omitempty"`
	QuoteRequest     *QuoteRequest            `json:"quoteRequest,omitempty"`
	WorkerDecision   *WorkerDecision          `json:"workerDecision,omitempty"`
	InvoiceDraft     *InvoiceDraft            `json:"invoiceDraft,omitempty"`
	Invoice          *Invoice                 `json:"invoice,omitempty"`
	QuoteResponse    *QuoteResponse           `json:"quoteResponse,omitempty"`
	Payment          *Payment                 `json:"payment,omitempty"`
	Payments         map[string]Payment       `json:"payments,omitempty"`
	PaymentIntent    map[string]PaymentIntent `json:"paymentIntent,omitempty"`
}

type QuotationRequest struct {
	RequestedAt int64  `json:"requestedAt"`
	RequestNote string `json:"requestNote,omitempty"`
}

type QuoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RequestedAt int64  `json:"requestedAt"`
}

type WorkerDecision struct {
	Decision  Decision `json:"decision"`
	Note      string   `json:"note"`
	DecidedAt int64    `json:"decidedAt"`
}

type QuoteResponse struct {
	CustomerDecision Decision `json:"customerDecision"`
	Reason           string   `json:"reason"`
	DecidedAt        int64    `json:"decidedAt"`
}

// Patch is a set of field writes relative to the booking root. A nil value
// removes the field.
type Patch map[string]any

func (b *Booking) IsCustomer(uid string) bool {
	return uid != "" && b.CustomerID == uid
}

func (b *Booking) IsWorker(uid string) bool {
	return uid != "" && b.WorkerID == uid
}

// IsParty reports whether uid is either side of the booking.
func (b *Booking) IsParty(uid string) bool {
	return b.IsCustomer(uid) || b.IsWorker(uid)
}

// IsPaid is true once either the status or the payment snapshot says so.
func (b *Booking) IsPaid() bool {
	if b.Status == StatusPaymentPaid {
		return true
	}
	return b.Payment != nil && b.Payment.Status == PaymentStatusPaid
}

// DecideAsWorker records the worker's answer to a quotation request.
func (b *Booking) DecideAsWorker(uid string, d Decision, note string, now int64) (Patch, error) {
	action := ActionWorkerAccept
	if d == DecisionDeclined {
		action = ActionWorkerDecline
	}
	t, err := b.CheckTransition(action, uid)
	if err != nil {
		return nil, err
	}
	return Patch{
		"status":    string(t.To),
		"updatedAt": now,
		"workerDecision": WorkerDecision{
			Decision:  d,
			Note:      note,
			DecidedAt: now,
		},
	}, nil
}

// DecideAsCustomer records the customer's answer to a sent invoice.
func (b *Booking) DecideAsCustomer(uid string, d Decision, reason string, now int64) (Patch, error) {
	action := ActionCustomerAccept
	if d == DecisionDeclined {
		action = ActionCustomerDecline
	}
	t, err := b.CheckTransition(action, uid)
	if err != nil {
		return nil, err
	}
	return Patch{
		"status":    string(t.To),
		"updatedAt": now,
		"quoteResponse": QuoteResponse{
			CustomerDecision: d,
			Reason:           reason,
			DecidedAt:        now,
		},
	}, nil
}
