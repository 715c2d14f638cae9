package commands

import (
	"fmt"
	"strconv"

	"servicebook/internal/domain/booking"
	"servicebook/internal/usecase/shared"
)

func bookingRequestNotice(b *booking.Booking) shared.Notification {
	return shared.Notification{
		Recipient: b.WorkerID,
		Type:      shared.NotifyBookingRequest,
		Title:     "New booking request",
		Body:      fmt.Sprintf("You have a new request for %s.", b.ServiceName),
		BookingID: b.BookingID,
	}
}

func quoteRequestedNotice(b *booking.Booking) shared.Notification {
	return shared.Notification{
		Recipient: b.WorkerID,
		Type:      shared.NotifyQuoteRequested,
		Title:     "New Quotation Request",
		Body:      fmt.Sprintf("You received a new quotation request for %s", b.ServiceName),
		BookingID: b.BookingID,
	}
}

func workerDecisionNotice(b *booking.Booking, d booking.Decision) shared.Notification {
	n := shared.Notification{Recipient: b.CustomerID, BookingID: b.BookingID}
	if d == booking.DecisionDeclined {
		n.Type = shared.NotifyQuoteDeclinedByWorker
		n.Title = "Quotation Request Declined"
		n.Body = "The worker declined your quotation request."
	} else {
		n.Type = shared.NotifyQuoteAcceptedByWorker
		n.Title = "Quotation Request Accepted"
		n.Body = "The worker accepted your request and will send a quotation."
	}
	return n
}

func invoiceSentNotice(b *booking.Booking, inv booking.Invoice, currency string) shared.Notification {
	return shared.Notification{
		Recipient: b.CustomerID,
		Type:      shared.NotifyInvoiceSent,
		Title:     "New Quotation Received",
		Body:      fmt.Sprintf("%s sent you a quotation for %s %s", inv.WorkerName, currency, strconv.FormatFloat(inv.Subtotal, 'f', -1, 64)),
		BookingID: b.BookingID,
	}
}

func customerDecisionNotice(b *booking.Booking, d booking.Decision) shared.Notification {
	n := shared.Notification{Recipient: b.WorkerID, BookingID: b.BookingID}
	if d == booking.DecisionDeclined {
		n.Type = shared.NotifyQuoteDeclined
		n.Title = "Quote Declined"
		n.Body = "Customer declined your quotation"
	} else {
		n.Type = shared.NotifyQuoteAccepted
		n.Title = "Quote Accepted!"
		n.Body = "Customer accepted your quotation"
	}
	return n
}

func paymentPaidNotice(b *booking.Booking, p booking.Payment) shared.Notification {
	return shared.Notification{
		Recipient: b.WorkerID,
		Type:      shared.NotifyPaymentPaid,
		Title:     "Advance Payment Received",
		Body:      fmt.Sprintf("Customer paid %s %s for %s", p.Currency, p.Amount, b.ServiceName),
		BookingID: b.BookingID,
	}
}
