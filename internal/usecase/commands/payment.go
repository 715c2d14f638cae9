package commands

import (
	"context"
	"errors"
	"log/slog"

	"servicebook/internal/domain/booking"
	"servicebook/internal/domain/payment"
	"servicebook/internal/domain/user"
	"servicebook/internal/pkg/clock"
	"servicebook/internal/pkg/config"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"
)

// Checkout is what the client posts to the hosted payment page.
type Checkout struct {
	MerchantID  string
	OrderID     string
	Amount      string
	Currency    string
	Hash        string
	Items       string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
	CheckoutURL string
}

type StartPaymentResult struct {
	IntentID string
	Checkout Checkout
}

func (uc *bookingUseCaseImpl) StartPayment(ctx context.Context, actor user.Identity, bookingID string) (*StartPaymentResult, error) {
	if !uc.payment.HasMerchant() {
		uc.logger.Error("payment start refused: merchant credentials missing")
		return nil, ErrGatewayNotReady
	}
	b, err := loadBooking(ctx, uc.store, bookingID)
	if err != nil {
		return nil, err
	}
	intentID := uc.store.NewKey()
	intent, patch, err := b.StartPayment(actor.UID, intentID, uc.payment.AdvancePercent, uc.payment.Currency, clock.NowMillis(uc.clock))
	if err != nil {
		return nil, err
	}
	if err := commitPatch(ctx, uc.store, b, patch); err != nil {
		return nil, err
	}

	secret, _ := payment.NormalizeSecret(uc.payment.MerchantSecret)
	uc.logger.Info("payment started", "booking_id", b.BookingID, "intent_id", intentID, "amount", intent.Amount)
	return &StartPaymentResult{
		IntentID: intentID,
		Checkout: Checkout{
			MerchantID:  uc.payment.MerchantID,
			OrderID:     b.BookingID,
			Amount:      intent.Amount,
			Currency:    intent.Currency,
			Hash:        payment.CheckoutHash(uc.payment.MerchantID, b.BookingID, intent.Amount, intent.Currency, secret),
			Items:       b.ServiceName + " (advance)",
			ReturnURL:   uc.payment.ReturnURL,
			CancelURL:   uc.payment.CancelURL,
			NotifyURL:   uc.payment.NotifyURL,
			CheckoutURL: uc.payment.CheckoutURL,
		},
	}, nil
}

// PaymentCommands reconciles gateway notifications. Business outcomes are
// returned as codes; only infrastructure failures come back as errors.
type PaymentCommands interface {
	HandleCallback(ctx context.Context, fields map[string]string) (payment.Outcome, error)
}

type paymentUseCaseImpl struct {
	store    shared.DocumentStore
	notifier shared.Notifier
	clock    clock.Clock
	payment  config.PaymentConfig
	logger   *slog.Logger
}

func NewPaymentUseCase(
	store shared.DocumentStore,
	notifier shared.Notifier,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentUseCaseImpl{
		store:    store,
		notifier: notifier,
		clock:    clk,
		payment:  cfg.Payment,
		logger:   logger,
	}
}

const unknownOrder = "_unknown"

// callbackAudit is stored at paymentCallbacks/{orderId}/{auditId} for every
// notification, before any gating.
type callbackAudit struct {
	AuditID        string            `json:"auditId"`
	ReceivedAt     int64             `json:"receivedAt"`
	SignatureValid bool              `json:"signatureValid"`
	MerchantMatch  bool              `json:"merchantMatch"`
	SecretForm     string            `json:"secretForm"`
	LocalSignature string            `json:"localSignature"`
	Outcome        payment.Outcome   `json:"outcome"`
	Fields         map[string]string `json:"fields"`
}

func (uc *paymentUseCaseImpl) HandleCallback(ctx context.Context, fields map[string]string) (payment.Outcome, error) {
	cb := payment.ParseCallback(fields)
	now := clock.NowMillis(uc.clock)
	ver := cb.Verify(uc.payment.MerchantID, uc.payment.MerchantSecret)
	if !uc.payment.HasMerchant() {
		uc.logger.Error("payment callback refused: merchant credentials missing", "order_id", cb.OrderID)
	}

	audit := callbackAudit{
		AuditID:        uc.store.NewKey(),
		ReceivedAt:     now,
		SignatureValid: ver.Valid,
		MerchantMatch:  ver.MerchantMatch,
		SecretForm:     string(ver.SecretForm),
		LocalSignature: ver.LocalSignature,
		Fields:         cb.Raw,
	}
	auditOrder := cb.OrderID
	if !shared.SafeSegment(auditOrder) {
		auditOrder = unknownOrder
	}
	auditPath := shared.PaymentCallbackPath(auditOrder, audit.AuditID)
	if err := uc.store.Update(ctx, shared.WriteSet{auditPath: audit}); err != nil {
		return "", errs.Internal(err, "write payment callback audit")
	}

	outcome, err := uc.reconcile(ctx, cb, ver, now)
	if err != nil {
		return "", err
	}

	if err := uc.store.Update(ctx, shared.WriteSet{auditPath + "/outcome": string(outcome)}); err != nil {
		uc.logger.Warn("failed to record callback outcome", "order_id", cb.OrderID, "outcome", outcome, "error", err)
	}
	uc.logger.Info("payment callback handled", "order_id", cb.OrderID, "payment_id", cb.PaymentID, "outcome", outcome)
	return outcome, nil
}

func (uc *paymentUseCaseImpl) reconcile(ctx context.Context, cb payment.Callback, ver payment.Verification, now int64) (payment.Outcome, error) {
	if !ver.Valid {
		return payment.OutcomeInvalidSig, nil
	}
	if !cb.IsSuccess() {
		return payment.OutcomeNotSuccess, nil
	}

	b, err := loadBooking(ctx, uc.store, cb.OrderID)
	switch {
	case errors.Is(err, ErrBookingNotFound):
		return payment.OutcomeNoBooking, nil
	case errs.KindOf(err) == errs.KindValidation:
		return payment.OutcomeNoBooking, nil
	case err != nil:
		return "", err
	}
	if b.IsPaid() {
		return payment.OutcomeAlreadyPaid, nil
	}
	if !b.CanPay() {
		uc.logger.Warn("payment callback for booking that is not payable", "booking_id", b.BookingID, "status", b.Status)
		return payment.OutcomeNotPayable, nil
	}

	paymentID := cb.PaymentID
	if !shared.SafeSegment(paymentID) {
		if paymentID != "" {
			uc.logger.Warn("gateway payment id unusable as key", "order_id", cb.OrderID, "payment_id", paymentID)
		}
		paymentID = uc.store.NewKey()
	}
	p := booking.Payment{
		Provider:   payment.Provider,
		PaymentID:  paymentID,
		OrderID:    cb.OrderID,
		Amount:     cb.Amount,
		Currency:   cb.Currency,
		StatusCode: cb.StatusCode,
	}
	patch := b.ConfirmPayment(p, now)

	err = commitPatch(ctx, uc.store, b, patch)
	if errors.Is(err, ErrConcurrentUpdate) {
		// Lost a race; a duplicate delivery may have won it.
		again, lerr := loadBooking(ctx, uc.store, cb.OrderID)
		if lerr != nil {
			return "", lerr
		}
		if again.IsPaid() {
			return payment.OutcomeAlreadyPaid, nil
		}
		return payment.OutcomeNotPayable, nil
	}
	if err != nil {
		return "", err
	}

	confirmed, _ := patch["payment"].(booking.Payment)
	notifyBestEffort(ctx, uc.notifier, uc.logger, paymentPaidNotice(b, confirmed))
	return payment.OutcomeOK, nil
}
