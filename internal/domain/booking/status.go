package booking

type Status string

const (
	StatusPending               Status = "pending"
	StatusQuoteRequested        Status = "quote_requested"
	StatusQuoteDeclinedByWorker Status = "quote_declined_by_worker"
	StatusQuoteAcceptedByWorker Status = "quote_accepted_by_worker"
	StatusInvoiceSent           Status = "invoice_sent"
	StatusQuoteDeclined         Status = "quote_declined"
	StatusQuoteAccepted         Status = "quote_accepted"
	StatusPaymentPaid           Status = "payment_paid"
)

var AllStatuses = []Status{
	StatusPending,
	StatusQuoteRequested,
	StatusQuoteDeclinedByWorker,
	StatusQuoteAcceptedByWorker,
	StatusInvoiceSent,
	StatusQuoteDeclined,
	StatusQuoteAccepted,
	StatusPaymentPaid,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionDeclined Decision = "declined"
)

func NewDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionAccepted, DecisionDeclined:
		return d, nil
	default:
		return "", ErrInvalidDecision
	}
}
