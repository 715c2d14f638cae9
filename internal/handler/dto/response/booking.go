package response

import (
	"servicebook/internal/domain/booking"
	"servicebook/internal/usecase/commands"
	"servicebook/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	BookingID          string         `json:"bookingId"`
	CustomerID         string         `json:"customerId"`
	CustomerName       string         `json:"customerName,omitempty"`
	WorkerID           string         `json:"workerId"`
	ServiceID          string         `json:"serviceId,omitempty"`
	ServiceName        string         `json:"serviceName"`
	LocationText       string         `json:"locationText"`
	ProblemDescription string         `json:"problemDescription"`
	ScheduledDate      *string        `json:"scheduledDate"`
	ScheduledTime      *string        `json:"scheduledTime"`
	ScheduledAt        *int64         `json:"scheduledAt"`
	DateMode           *string        `json:"dateMode"`
	Photos             booking.Photos `json:"photos,omitempty"`
	Status             booking.Status `json:"status"`
	CreatedAt          int64          `json:"createdAt"`
	UpdatedAt          int64          `json:"updatedAt"`

	QuotationRequest *booking.QuotationRequest        `json:"quotationRequest,omitempty"`
	QuoteRequest     *booking.QuoteRequest            `json:"quoteRequest,omitempty"`
	WorkerDecision   *booking.WorkerDecision          `json:"workerDecision,omitempty"`
	InvoiceDraft     *booking.InvoiceDraft            `json:"invoiceDraft,omitempty"`
	Invoice          *booking.Invoice                 `json:"invoice,omitempty"`
	QuoteResponse    *booking.QuoteResponse           `json:"quoteResponse,omitempty"`
	Payment          *booking.Payment                 `json:"payment,omitempty"`
	Payments         map[string]booking.Payment       `json:"payments,omitempty"`
	PaymentIntent    map[string]booking.PaymentIntent `json:"paymentIntent,omitempty"`
}

func FromBooking(b *booking.Booking) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, b); err != nil {
		return nil, err
	}
	return &res, nil
}

type BookingListItemResponse struct {
	BookingID    string         `json:"bookingId"`
	Status       booking.Status `json:"status"`
	ServiceName  string         `json:"serviceName"`
	LocationText string         `json:"locationText"`
	CustomerID   string         `json:"customerId"`
	CustomerName string         `json:"customerName,omitempty"`
	WorkerID     string         `json:"workerId"`
	Subtotal     *float64       `json:"subtotal,omitempty"`
	CreatedAt    int64          `json:"createdAt"`
	UpdatedAt    int64          `json:"updatedAt"`
}

type BookingListResponse struct {
	Items     []*BookingListItemResponse `json:"items"`
	NextAfter string                     `json:"nextAfter,omitempty"`
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) (*BookingListResponse, error) {
	res := &BookingListResponse{Items: make([]*BookingListItemResponse, 0, len(items))}
	if err := copier.Copy(&res.Items, &items); err != nil {
		return nil, err
	}
	if next != nil {
		res.NextAfter = next.After
	}
	return res, nil
}

type CreatedResponse struct {
	OK        bool   `json:"ok"`
	BookingID string `json:"bookingId"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type PhotosResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

type DraftResponse struct {
	OK       bool    `json:"ok"`
	Subtotal float64 `json:"subtotal"`
}

type InvoiceResponse struct {
	OK         bool    `json:"ok"`
	Subtotal   float64 `json:"subtotal"`
	ValidUntil int64   `json:"validUntil"`
}

type CheckoutResponse struct {
	MerchantID  string `json:"merchant_id"`
	OrderID     string `json:"order_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Hash        string `json:"hash"`
	Items       string `json:"items"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
	NotifyURL   string `json:"notify_url"`
	CheckoutURL string `json:"checkoutUrl"`
}

type StartPaymentResponse struct {
	OK       bool             `json:"ok"`
	IntentID string           `json:"intentId"`
	Checkout CheckoutResponse `json:"checkout"`
}

func FromStartPayment(r *commands.StartPaymentResult) *StartPaymentResponse {
	return &StartPaymentResponse{
		OK:       true,
		IntentID: r.IntentID,
		Checkout: CheckoutResponse(r.Checkout),
	}
}
