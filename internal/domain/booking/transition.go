package booking

import "slices"

type Action string

const (
	ActionWorkerAccept    Action = "worker_accept"
	ActionWorkerDecline   Action = "worker_decline"
	ActionSendInvoice     Action = "send_invoice"
	ActionCustomerAccept  Action = "customer_accept"
	ActionCustomerDecline Action = "customer_decline"
	ActionConfirmPayment  Action = "confirm_payment"
)

type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorWorker   Actor = "worker"
	ActorGateway  Actor = "gateway"
)

type Transition struct {
	Action Action
	Actor  Actor
	From   []Status
	To     Status
}

var transitions = map[Action]Transition{
	ActionWorkerDecline: {
		Action: ActionWorkerDecline,
		Actor:  ActorWorker,
		From:   []Status{StatusQuoteRequested},
		To:     StatusQuoteDeclinedByWorker,
	},
	ActionWorkerAccept: {
		Action: ActionWorkerAccept,
		Actor:  ActorWorker,
		From:   []Status{StatusQuoteRequested},
		To:     StatusQuoteAcceptedByWorker,
	},
	ActionSendInvoice: {
		Action: ActionSendInvoice,
		Actor:  ActorWorker,
		From:   []Status{StatusQuoteAcceptedByWorker, StatusPending},
		To:     StatusInvoiceSent,
	},
	ActionCustomerDecline: {
		Action: ActionCustomerDecline,
		Actor:  ActorCustomer,
		From:   []Status{StatusInvoiceSent},
		To:     StatusQuoteDeclined,
	},
	ActionCustomerAccept: {
		Action: ActionCustomerAccept,
		Actor:  ActorCustomer,
		From:   []Status{StatusInvoiceSent},
		To:     StatusQuoteAccepted,
	},
	ActionConfirmPayment: {
		Action: ActionConfirmPayment,
		Actor:  ActorGateway,
		From:   []Status{StatusInvoiceSent, StatusQuoteAccepted},
		To:     StatusPaymentPaid,
	},
}

func TransitionFor(a Action) (Transition, bool) {
	t, ok := transitions[a]
	return t, ok
}

func (t Transition) Allows(s Status) bool {
	return slices.Contains(t.From, s)
}

// CheckTransition authorizes uid for action and then checks the current
// status. Ownership failures win over status failures.
func (b *Booking) CheckTransition(a Action, uid string) (Transition, error) {
	t, ok := transitions[a]
	if !ok {
		return Transition{}, ErrInvalidTransition
	}
	switch t.Actor {
	case ActorWorker:
		if !b.IsWorker(uid) {
			return Transition{}, ErrNotBookingWorker
		}
	case ActorCustomer:
		if !b.IsCustomer(uid) {
			return Transition{}, ErrNotBookingCustomer
		}
	}
	if !t.Allows(b.Status) {
		return Transition{}, ErrInvalidTransition
	}
	return t, nil
}

// CanPay reports whether a payment may be started or confirmed now.
func (b *Booking) CanPay() bool {
	return !b.IsPaid() && transitions[ActionConfirmPayment].Allows(b.Status)
}
