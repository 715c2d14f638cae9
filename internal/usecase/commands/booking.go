package commands

import (
	"context"
	"errors"
	"log/slog"

	"servicebook/internal/domain/booking"
	"servicebook/internal/domain/user"
	"servicebook/internal/pkg/clock"
	"servicebook/internal/pkg/config"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"
)

var (
	ErrBookingNotFound  = errs.Mark(errors.New("booking not found"), errs.ErrNotFound)
	ErrWorkerNotFound   = errs.Mark(errors.New("worker not found"), errs.ErrNotFound)
	ErrConcurrentUpdate = errs.Mark(errors.New("booking was changed by another request, reload and retry"), errs.ErrPrecondition)
	ErrGatewayNotReady  = errs.Mark(errors.New("payment gateway is not configured"), errs.ErrInternal)
)

type CreateBookingRequest = booking.DirectRequestInput

type RequestQuoteRequest = booking.QuoteRequestInput

type InvoiceRequest struct {
	Fees      booking.FeeInput
	Notes     string
	ValidDays *float64
}

type CreateBookingResult struct {
	BookingID string
}

type AttachPhotosResult struct {
	Count int
}

type DraftResult struct {
	Subtotal float64
}

type SendInvoiceResult struct {
	Subtotal   float64
	ValidUntil int64
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor user.Identity, req CreateBookingRequest) (*CreateBookingResult, error)
	RequestQuote(ctx context.Context, actor user.Identity, req RequestQuoteRequest) (*CreateBookingResult, error)
	AttachPhotos(ctx context.Context, actor user.Identity, bookingID string, urls []string) (*AttachPhotosResult, error)
	WorkerDecision(ctx context.Context, actor user.Identity, bookingID, decision, note string) error
	SaveInvoiceDraft(ctx context.Context, actor user.Identity, bookingID string, req InvoiceRequest) (*DraftResult, error)
	SendInvoice(ctx context.Context, actor user.Identity, bookingID string, req InvoiceRequest) (*SendInvoiceResult, error)
	CustomerDecision(ctx context.Context, actor user.Identity, bookingID, decision, reason string) error
	StartPayment(ctx context.Context, actor user.Identity, bookingID string) (*StartPaymentResult, error)
}

type bookingUseCaseImpl struct {
	store    shared.DocumentStore
	notifier shared.Notifier
	clock    clock.Clock
	payment  config.PaymentConfig
	logger   *slog.Logger
}

func NewBookingUseCase(
	store shared.DocumentStore,
	notifier shared.Notifier,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		store:    store,
		notifier: notifier,
		clock:    clk,
		payment:  cfg.Payment,
		logger:   logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, actor user.Identity, req CreateBookingRequest) (*CreateBookingResult, error) {
	if !actor.IsCustomer() {
		return nil, booking.ErrCustomerOnly
	}
	r, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if _, ok, err := shared.LoadProfile(ctx, uc.store, user.RoleWorker, r.WorkerID); err != nil {
		return nil, errs.Internal(err, "load worker profile")
	} else if !ok {
		return nil, ErrWorkerNotFound
	}

	b := booking.NewDirectBooking(uc.store.NewKey(), actor.UID, actor.Profile.FullName(""), r, clock.NowMillis(uc.clock))
	if err := uc.create(ctx, b); err != nil {
		return nil, err
	}
	uc.notify(ctx, bookingRequestNotice(b))
	return &CreateBookingResult{BookingID: b.BookingID}, nil
}

func (uc *bookingUseCaseImpl) RequestQuote(ctx context.Context, actor user.Identity, req RequestQuoteRequest) (*CreateBookingResult, error) {
	if !actor.IsCustomer() {
		return nil, booking.ErrCustomerOnly
	}
	r, err := req.Validate()
	if err != nil {
		return nil, err
	}

	b := booking.NewQuoteRequestBooking(uc.store.NewKey(), actor.UID, actor.Profile.FullName(""), r, clock.NowMillis(uc.clock))
	if err := uc.create(ctx, b); err != nil {
		return nil, err
	}
	uc.notify(ctx, quoteRequestedNotice(b))
	return &CreateBookingResult{BookingID: b.BookingID}, nil
}

// create writes the booking and both index entries together.
func (uc *bookingUseCaseImpl) create(ctx context.Context, b *booking.Booking) error {
	ws := shared.WriteSet{
		shared.BookingPath(b.BookingID):                                      b,
		shared.UserBookingPath(user.RoleCustomer, b.CustomerID, b.BookingID): true,
		shared.UserBookingPath(user.RoleWorker, b.WorkerID, b.BookingID):     true,
	}
	if err := uc.store.Update(ctx, ws); err != nil {
		return errs.Internal(err, "create booking")
	}
	uc.logger.Info("booking created", "booking_id", b.BookingID, "status", b.Status, "customer_id", b.CustomerID, "worker_id", b.WorkerID)
	return nil
}

func (uc *bookingUseCaseImpl) AttachPhotos(ctx context.Context, actor user.Identity, bookingID string, urls []string) (*AttachPhotosResult, error) {
	cleaned, err := booking.CleanPhotoURLs(urls)
	if err != nil {
		return nil, err
	}
	b, err := loadBooking(ctx, uc.store, bookingID)
	if err != nil {
		return nil, err
	}
	patch, err := b.AttachPhotos(actor.UID, cleaned, clock.NowMillis(uc.clock))
	if err != nil {
		return nil, err
	}
	if err := commitPatch(ctx, uc.store, b, patch); err != nil {
		return nil, err
	}
	return &AttachPhotosResult{Count: len(cleaned)}, nil
}

func (uc *bookingUseCaseImpl) WorkerDecision(ctx context.Context, actor user.Identity, bookingID, decision, note string) error {
	d, err := booking.NewDecision(decision)
	if err != nil {
		return err
	}
	b, err := loadBooking(ctx, uc.store, bookingID)
	if err != nil {
		return err
	}
	patch, err := b.DecideAsWorker(actor.UID, d, note, clock.NowMillis(uc.clock))
	if err != nil {
		return err
	}
	if err := commitPatch(ctx, uc.store, b, patch); err != nil {
		return err
	}
	uc.logger.Info("worker decided", "booking_id", b.BookingID, "decision", d)
	uc.notify(ctx, workerDecisionNotice(b, d))
	return nil
}

func (uc *bookingUseCaseImpl) SaveInvoiceDraft(ctx context.Context, actor user.Identity, bookingID string, req InvoiceRequest) (*DraftResult, error) {
	fees, err := req.Fees.Validate()
	if err != nil {
		return nil, err
	}
	b, err := loadBooking(ctx, uc.store, bookingID)
	if err != nil {
		return nil, err
	}
	draft, patch, err := b.SaveDraft(actor.UID, fees, req.Notes, req.ValidDays, clock.NowMillis(uc.clock))
	if err != nil {
		return nil, err
	}
	if err := commitPatch(ctx, uc.store, b, patch); err != nil {
		return nil, err
	}
	return &DraftResult{Subtotal: draft.Subtotal}, nil
}

func (uc *bookingUseCaseImpl) SendInvoice(ctx context.Context, actor user.Identity, bookingID string, req InvoiceRequest) (*SendInvoiceResult, error) {
	fees, err := req.Fees.Validate()
	if err != nil {
		return nil, err
	}
	b, err := loadBooking(ctx, uc.store, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := b.CheckTransition(booking.ActionSendInvoice, actor.UID); err != nil {
		return nil, err
	}

	workerName := booking.DefaultWorker
	if p, ok, err := shared.LoadProfile(ctx, uc.store, user.RoleWorker, b.WorkerID); err != nil {
		uc.logger.Warn("worker profile lookup failed, using default name", "booking_id", b.BookingID, "error", err)
	} else if ok {
		workerName = p.FullName(booking.DefaultWorker)
	}

	inv, patch, err := b.SendInvoice(actor.UID, workerName, fees, req.Notes, req.ValidDays, clock.NowMillis(uc.clock))
	if err != nil {
		return nil, err
	}
	if err := commitPatch(ctx, uc.store, b, patch); err != nil {
		return nil, err
	}
	uc.logger.Info("invoice sent", "booking_id", b.BookingID, "subtotal", inv.Subtotal)
	uc.notify(ctx, invoiceSentNotice(b, inv, uc.payment.Currency))
	return &SendInvoiceResult{Subtotal: inv.Subtotal, ValidUntil: inv.ValidUntil}, nil
}

func (uc *bookingUseCaseImpl) CustomerDecision(ctx context.Context, actor user.Identity, bookingID, decision, reason string) error {
	d, err := booking.NewDecision(decision)
	if err != nil {
		return err
	}
	b, err := loadBooking(ctx, uc.store, bookingID)
	if err != nil {
		return err
	}
	patch, err := b.DecideAsCustomer(actor.UID, d, reason, clock.NowMillis(uc.clock))
	if err != nil {
		return err
	}
	if err := commitPatch(ctx, uc.store, b, patch); err != nil {
		return err
	}
	uc.logger.Info("customer decided", "booking_id", b.BookingID, "decision", d)
	uc.notify(ctx, customerDecisionNotice(b, d))
	return nil
}

func (uc *bookingUseCaseImpl) notify(ctx context.Context, n shared.Notification) {
	notifyBestEffort(ctx, uc.notifier, uc.logger, n)
}

func loadBooking(ctx context.Context, store shared.DocumentStore, bookingID string) (*booking.Booking, error) {
	if bookingID == "" {
		return nil, errs.Validation("bookingId is required")
	}
	snap, err := store.Get(ctx, shared.BookingPath(bookingID))
	if err != nil {
		if errors.Is(err, shared.ErrInvalidPath) {
			return nil, errs.Validation("invalid bookingId")
		}
		return nil, errs.Internal(err, "load booking")
	}
	if !snap.Exists() {
		return nil, ErrBookingNotFound
	}
	var b booking.Booking
	if err := snap.Decode(&b); err != nil {
		return nil, errs.Internal(err, "decode booking")
	}
	if b.BookingID == "" {
		b.BookingID = bookingID
	}
	return &b, nil
}

// commitPatch applies patch only while the booking still has the status it
// was loaded with.
func commitPatch(ctx context.Context, store shared.DocumentStore, b *booking.Booking, patch booking.Patch) error {
	guard := shared.Guard{Path: shared.BookingStatusPath(b.BookingID), Expect: string(b.Status)}
	err := store.UpdateIf(ctx, guard, shared.Prefix(shared.BookingPath(b.BookingID), patch))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, shared.ErrGuardFailed):
		return ErrConcurrentUpdate
	default:
		return errs.Internal(err, "update booking")
	}
}

func notifyBestEffort(ctx context.Context, n shared.Notifier, logger *slog.Logger, msg shared.Notification) {
	if msg.Recipient == "" {
		return
	}
	if err := n.Notify(ctx, msg); err != nil {
		logger.Warn("notification failed", "type", msg.Type, "recipient", msg.Recipient, "booking_id", msg.BookingID, "error", err)
	}
}
