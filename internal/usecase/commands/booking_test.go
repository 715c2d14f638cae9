//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"servicebook/internal/domain/booking"
	"servicebook/internal/domain/payment"
	"servicebook/internal/domain/user"
	"servicebook/internal/infra/docstore"
	"servicebook/internal/pkg/clock"
	"servicebook/internal/pkg/config"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/testutil/builder"
	sharedmock "servicebook/internal/testutil/mock/shared"
	"servicebook/internal/usecase/commands"
	"servicebook/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	notifier *sharedmock.MockNotifier
	store    *docstore.MemoryStore
	clock    *clock.MockClock
	cfg      config.Config
	bookings commands.BookingCommands
	payments commands.PaymentCommands

	customer user.Identity
	worker   user.Identity
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.notifier = sharedmock.NewMockNotifier(s.ctrl)
	s.store = docstore.NewMemoryStore(docstore.DefaultMaxAttempts)
	s.clock = clock.NewMockClock(time.UnixMilli(builder.BaseMillis))
	s.cfg = config.NewTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.bookings = commands.NewBookingUseCase(s.store, s.notifier, s.clock, s.cfg, logger)
	s.payments = commands.NewPaymentUseCase(s.store, s.notifier, s.clock, s.cfg, logger)

	s.customer = user.Identity{UID: builder.CustomerUID, Role: user.RoleCustomer, Profile: user.Profile{"fullName": "Nimal Perera"}}
	s.worker = user.Identity{UID: builder.WorkerUID, Role: user.RoleWorker, Profile: user.Profile{"fullName": "Sunil Silva"}}
	s.Require().NoError(s.store.Update(s.ctx, shared.WriteSet{
		shared.ProfilePath(user.RoleCustomer, s.customer.UID): s.customer.Profile,
		shared.ProfilePath(user.RoleWorker, s.worker.UID):     s.worker.Profile,
	}))
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) expectNotice(recipient string, typ shared.NotificationType) *gomock.Call {
	return s.notifier.EXPECT().Notify(gomock.Any(), gomock.Cond(func(n shared.Notification) bool {
		return n.Recipient == recipient && n.Type == typ
	})).Return(nil)
}

func (s *BookingCommandsTestSuite) load(id string) *booking.Booking {
	snap, err := s.store.Get(s.ctx, shared.BookingPath(id))
	s.Require().NoError(err)
	s.Require().True(snap.Exists())
	var b booking.Booking
	s.Require().NoError(snap.Decode(&b))
	return &b
}

func (s *BookingCommandsTestSuite) raw(path string) any {
	snap, err := s.store.Get(s.ctx, path)
	s.Require().NoError(err)
	return snap.Value
}

func (s *BookingCommandsTestSuite) createDirect() string {
	s.expectNotice(builder.WorkerUID, shared.NotifyBookingRequest)
	res, err := s.bookings.CreateBooking(s.ctx, s.customer, commands.CreateBookingRequest{
		WorkerID:           builder.WorkerUID,
		ServiceName:        "Plumbing",
		LocationText:       "Colombo",
		ProblemDescription: "Leaking kitchen sink",
	})
	s.Require().NoError(err)
	return res.BookingID
}

func (s *BookingCommandsTestSuite) requestQuote() string {
	s.expectNotice(builder.WorkerUID, shared.NotifyQuoteRequested)
	res, err := s.bookings.RequestQuote(s.ctx, s.customer, commands.RequestQuoteRequest{
		WorkerID:     builder.WorkerUID,
		ServiceID:    "svc-plumbing",
		ServiceName:  "Plumbing",
		LocationText: "Colombo",
		Title:        "Fix sink",
	})
	s.Require().NoError(err)
	return res.BookingID
}

func (s *BookingCommandsTestSuite) invoice() commands.InvoiceRequest {
	return commands.InvoiceRequest{Fees: builder.ColomboFees(), Notes: "parts included"}
}

func (s *BookingCommandsTestSuite) callbackFields(orderID, amount, statusCode string) map[string]string {
	sig := payment.CallbackSignature(s.cfg.Payment.MerchantID, orderID, amount, "LKR", statusCode, s.cfg.Payment.MerchantSecret)
	return map[string]string{
		"merchant_id": s.cfg.Payment.MerchantID,
		"order_id":    orderID,
		"payment_id":  "320025071234",
		"amount":      amount,
		"currency":    "LKR",
		"status_code": statusCode,
		"md5sig":      sig,
		"method":      "VISA",
	}
}

func (s *BookingCommandsTestSuite) TestColomboPlumbingScenario() {
	id := s.createDirect()

	b := s.load(id)
	s.Equal(booking.StatusPending, b.Status)
	s.Equal("Nimal Perera", b.CustomerName)
	s.Equal(true, s.raw(shared.UserBookingPath(user.RoleCustomer, builder.CustomerUID, id)))
	s.Equal(true, s.raw(shared.UserBookingPath(user.RoleWorker, builder.WorkerUID, id)))

	s.clock.Add(time.Minute)
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Cond(func(n shared.Notification) bool {
		return n.Type == shared.NotifyInvoiceSent && n.Recipient == builder.CustomerUID &&
			n.Body == "Sunil Silva sent you a quotation for LKR 2800"
	})).Return(nil)
	sent, err := s.bookings.SendInvoice(s.ctx, s.worker, id, s.invoice())
	s.Require().NoError(err)
	s.Equal(2800.0, sent.Subtotal)
	s.Equal(s.clock.Now().UnixMilli()+3*86_400_000, sent.ValidUntil)

	s.expectNotice(builder.WorkerUID, shared.NotifyQuoteAccepted)
	s.Require().NoError(s.bookings.CustomerDecision(s.ctx, s.customer, id, "accepted", ""))
	s.Equal(booking.StatusQuoteAccepted, s.load(id).Status)

	start, err := s.bookings.StartPayment(s.ctx, s.customer, id)
	s.Require().NoError(err)
	s.Equal("560.00", start.Checkout.Amount)
	s.Equal(id, start.Checkout.OrderID)
	s.Equal(payment.CheckoutHash(s.cfg.Payment.MerchantID, id, "560.00", "LKR", s.cfg.Payment.MerchantSecret), start.Checkout.Hash)
	s.Equal(booking.IntentStarted, s.load(id).PaymentIntent[start.IntentID].Status)

	s.expectNotice(builder.WorkerUID, shared.NotifyPaymentPaid)
	outcome, err := s.payments.HandleCallback(s.ctx, s.callbackFields(id, "560.00", "2"))
	s.Require().NoError(err)
	s.Equal(payment.OutcomeOK, outcome)

	paid := s.load(id)
	s.Equal(booking.StatusPaymentPaid, paid.Status)
	s.Equal(booking.PaymentStatusPaid, paid.Payment.Status)
	s.Equal(start.IntentID, paid.Payment.IntentID)
	s.Equal(booking.IntentPaid, paid.PaymentIntent[start.IntentID].Status)
	s.Contains(paid.Payments, "320025071234")

	// Replays change nothing and notify nobody.
	outcome, err = s.payments.HandleCallback(s.ctx, s.callbackFields(id, "560.00", "2"))
	s.Require().NoError(err)
	s.Equal(payment.OutcomeAlreadyPaid, outcome)
	if diff := cmp.Diff(paid, s.load(id)); diff != "" {
		s.T().Errorf("replay mutated booking (-before +after):\n%s", diff)
	}
}

func (s *BookingCommandsTestSuite) TestQuoteFlow() {
	id := s.requestQuote()
	s.Equal(booking.StatusQuoteRequested, s.load(id).Status)

	s.expectNotice(builder.CustomerUID, shared.NotifyQuoteAcceptedByWorker)
	s.Require().NoError(s.bookings.WorkerDecision(s.ctx, s.worker, id, "accepted", "will visit"))

	b := s.load(id)
	s.Equal(booking.StatusQuoteAcceptedByWorker, b.Status)
	s.Equal("will visit", b.WorkerDecision.Note)

	draft, err := s.bookings.SaveInvoiceDraft(s.ctx, s.worker, id, s.invoice())
	s.Require().NoError(err)
	s.Equal(2800.0, draft.Subtotal)
	s.NotNil(s.load(id).InvoiceDraft)

	s.expectNotice(builder.CustomerUID, shared.NotifyInvoiceSent)
	_, err = s.bookings.SendInvoice(s.ctx, s.worker, id, s.invoice())
	s.Require().NoError(err)
	b = s.load(id)
	s.Nil(b.InvoiceDraft)
	s.Equal("Sunil Silva", b.Invoice.WorkerName)

	s.expectNotice(builder.WorkerUID, shared.NotifyQuoteDeclined)
	s.Require().NoError(s.bookings.CustomerDecision(s.ctx, s.customer, id, "declined", "too expensive"))
	s.Equal(booking.StatusQuoteDeclined, s.load(id).Status)

	_, err = s.bookings.StartPayment(s.ctx, s.customer, id)
	s.Require().ErrorIs(err, booking.ErrInvalidTransition)
}

func (s *BookingCommandsTestSuite) TestInvoiceRejectedWhileQuoteRequested() {
	id := s.requestQuote()
	before := s.load(id)

	_, err := s.bookings.SendInvoice(s.ctx, s.worker, id, s.invoice())

	s.Require().Error(err)
	s.Equal(errs.KindPrecondition, errs.KindOf(err))
	if diff := cmp.Diff(before, s.load(id)); diff != "" {
		s.T().Errorf("rejected invoice mutated booking (-before +after):\n%s", diff)
	}
}

func (s *BookingCommandsTestSuite) TestInvalidSignatureIsAuditedAndIgnored() {
	id := s.createDirect()
	s.expectNotice(builder.CustomerUID, shared.NotifyInvoiceSent)
	_, err := s.bookings.SendInvoice(s.ctx, s.worker, id, s.invoice())
	s.Require().NoError(err)
	before := s.load(id)

	fields := s.callbackFields(id, "560.00", "2")
	fields["amount"] = "1.00"
	outcome, err := s.payments.HandleCallback(s.ctx, fields)

	s.Require().NoError(err)
	s.Equal(payment.OutcomeInvalidSig, outcome)
	if diff := cmp.Diff(before, s.load(id)); diff != "" {
		s.T().Errorf("invalid callback mutated booking (-before +after):\n%s", diff)
	}
	audits, ok := s.raw("paymentCallbacks/" + id).(map[string]any)
	s.Require().True(ok)
	s.Require().Len(audits, 1)
	for _, a := range audits {
		rec := a.(map[string]any)
		s.Equal(false, rec["signatureValid"])
		s.Equal(string(payment.OutcomeInvalidSig), rec["outcome"])
		s.Equal("literal", rec["secretForm"])
		s.Equal("1.00", rec["fields"].(map[string]any)["amount"])
	}
}

func (s *BookingCommandsTestSuite) TestCallbackRejectedWithoutTrustedMerchant() {
	id := s.createDirect()
	s.expectNotice(builder.CustomerUID, shared.NotifyInvoiceSent)
	_, err := s.bookings.SendInvoice(s.ctx, s.worker, id, s.invoice())
	s.Require().NoError(err)

	s.Run("no secret configured", func() {
		cfg := config.NewTestConfig()
		cfg.Payment.MerchantSecret = ""
		uc := commands.NewPaymentUseCase(s.store, s.notifier, s.clock, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		fields := s.callbackFields(id, "1.00", "2")
		fields["md5sig"] = payment.CallbackSignature(cfg.Payment.MerchantID, id, "1.00", "LKR", "2", "")

		outcome, err := uc.HandleCallback(s.ctx, fields)

		s.Require().NoError(err)
		s.Equal(payment.OutcomeInvalidSig, outcome)
		s.Equal(booking.StatusInvoiceSent, s.load(id).Status)
	})
	s.Run("foreign merchant", func() {
		fields := s.callbackFields(id, "560.00", "2")
		fields["merchant_id"] = "9999999"
		fields["md5sig"] = payment.CallbackSignature("9999999", id, "560.00", "LKR", "2", s.cfg.Payment.MerchantSecret)

		outcome, err := s.payments.HandleCallback(s.ctx, fields)

		s.Require().NoError(err)
		s.Equal(payment.OutcomeInvalidSig, outcome)
		s.Equal(booking.StatusInvoiceSent, s.load(id).Status)
	})

	audits, ok := s.raw("paymentCallbacks/" + id).(map[string]any)
	s.Require().True(ok)
	s.Len(audits, 2)
	for _, a := range audits {
		s.Equal(false, a.(map[string]any)["signatureValid"])
	}
}

func (s *BookingCommandsTestSuite) TestUnsafeGatewayPaymentIDGetsStoreKey() {
	id := s.createDirect()
	s.expectNotice(builder.CustomerUID, shared.NotifyInvoiceSent)
	_, err := s.bookings.SendInvoice(s.ctx, s.worker, id, s.invoice())
	s.Require().NoError(err)
	s.expectNotice(builder.WorkerUID, shared.NotifyPaymentPaid)

	fields := s.callbackFields(id, "560.00", "2")
	fields["payment_id"] = "3200.25/07"
	outcome, err := s.payments.HandleCallback(s.ctx, fields)

	s.Require().NoError(err)
	s.Equal(payment.OutcomeOK, outcome)
	b := s.load(id)
	s.Equal(booking.StatusPaymentPaid, b.Status)
	entries, ok := s.raw("bookings/" + id + "/payments").(map[string]any)
	s.Require().True(ok)
	s.Require().Len(entries, 1)
	for key := range entries {
		s.True(shared.SafeSegment(key), key)
		s.Equal(key, b.Payment.PaymentID)
	}
}

func (s *BookingCommandsTestSuite) TestCallbackGating() {
	s.Run("not success", func() {
		outcome, err := s.payments.HandleCallback(s.ctx, s.callbackFields("bk-x", "560.00", "0"))
		s.Require().NoError(err)
		s.Equal(payment.OutcomeNotSuccess, outcome)
	})
	s.Run("no booking", func() {
		outcome, err := s.payments.HandleCallback(s.ctx, s.callbackFields("bk-missing", "560.00", "2"))
		s.Require().NoError(err)
		s.Equal(payment.OutcomeNoBooking, outcome)
	})
	s.Run("pending booking is not payable", func() {
		id := s.createDirect()
		outcome, err := s.payments.HandleCallback(s.ctx, s.callbackFields(id, "560.00", "2"))
		s.Require().NoError(err)
		s.Equal(payment.OutcomeNotPayable, outcome)
		s.Equal(booking.StatusPending, s.load(id).Status)
	})
	s.Run("odd order id still audited", func() {
		fields := s.callbackFields("a.b", "560.00", "2")
		outcome, err := s.payments.HandleCallback(s.ctx, fields)
		s.Require().NoError(err)
		s.Equal(payment.OutcomeNoBooking, outcome)
		s.NotNil(s.raw("paymentCallbacks/_unknown"))
	})
}

func (s *BookingCommandsTestSuite) TestPermissionsAndValidation() {
	id := s.createDirect()

	s.Run("worker cannot create bookings", func() {
		_, err := s.bookings.CreateBooking(s.ctx, s.worker, commands.CreateBookingRequest{})
		s.Require().ErrorIs(err, booking.ErrCustomerOnly)
	})
	s.Run("unknown worker", func() {
		_, err := s.bookings.CreateBooking(s.ctx, s.customer, commands.CreateBookingRequest{
			WorkerID: "nobody", ServiceName: "Plumbing", LocationText: "Colombo", ProblemDescription: "x",
		})
		s.Require().ErrorIs(err, commands.ErrWorkerNotFound)
		s.Equal(errs.KindNotFound, errs.KindOf(err))
	})
	s.Run("validation comes before lookups", func() {
		_, err := s.bookings.CreateBooking(s.ctx, s.customer, commands.CreateBookingRequest{WorkerID: "nobody"})
		s.Equal(errs.KindValidation, errs.KindOf(err))
	})
	s.Run("missing booking", func() {
		err := s.bookings.WorkerDecision(s.ctx, s.worker, "missing", "accepted", "")
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})
	s.Run("bad decision", func() {
		err := s.bookings.WorkerDecision(s.ctx, s.worker, id, "maybe", "")
		s.Require().ErrorIs(err, booking.ErrInvalidDecision)
	})
	s.Run("customer cannot send invoice", func() {
		_, err := s.bookings.SendInvoice(s.ctx, s.customer, id, s.invoice())
		s.Require().ErrorIs(err, booking.ErrNotBookingWorker)
	})
	s.Run("photos by owner while pending", func() {
		res, err := s.bookings.AttachPhotos(s.ctx, s.customer, id, []string{"https://cdn/1.jpg", "HTTP://cdn/2.jpg"})
		s.Require().NoError(err)
		s.Equal(2, res.Count)
		s.Equal(booking.Photos{"0": "https://cdn/1.jpg", "1": "HTTP://cdn/2.jpg"}, s.load(id).Photos)
	})
	s.Run("payment without invoice", func() {
		_, err := s.bookings.StartPayment(s.ctx, s.customer, id)
		s.Require().ErrorIs(err, booking.ErrNoInvoice)
	})
}

func (s *BookingCommandsTestSuite) TestStartPaymentWithoutMerchant() {
	cfg := config.NewTestConfig()
	cfg.Payment.MerchantSecret = ""
	uc := commands.NewBookingUseCase(s.store, s.notifier, s.clock, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := uc.StartPayment(s.ctx, s.customer, "anything")

	s.Require().ErrorIs(err, commands.ErrGatewayNotReady)
	s.Equal(errs.KindInternal, errs.KindOf(err))
}

func (s *BookingCommandsTestSuite) TestNotifierFailureDoesNotFailTransition() {
	id := s.requestQuote()
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errs.New("push backend down"))

	err := s.bookings.WorkerDecision(s.ctx, s.worker, id, "declined", "")

	s.Require().NoError(err)
	s.Equal(booking.StatusQuoteDeclinedByWorker, s.load(id).Status)
}

func (s *BookingCommandsTestSuite) TestContestedDecisionHasOneWinner() {
	id := s.requestQuote()
	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision := "accepted"
			if i%2 == 1 {
				decision = "declined"
			}
			results <- s.bookings.WorkerDecision(s.ctx, s.worker, id, decision, "")
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		s.Equal(errs.KindPrecondition, errs.KindOf(err))
	}
	s.Equal(1, wins)
}

// racingStore flips the booking status between load and guarded write.
type racingStore struct {
	shared.DocumentStore
	once   sync.Once
	status string
}

func (r *racingStore) UpdateIf(ctx context.Context, g shared.Guard, ws shared.WriteSet) error {
	r.once.Do(func() {
		_ = r.DocumentStore.Update(ctx, shared.WriteSet{g.Path: r.status})
	})
	return r.DocumentStore.UpdateIf(ctx, g, ws)
}

func (s *BookingCommandsTestSuite) TestGuardLossIsReported() {
	id := s.requestQuote()
	racer := &racingStore{DocumentStore: s.store, status: string(booking.StatusQuoteDeclinedByWorker)}
	uc := commands.NewBookingUseCase(racer, s.notifier, s.clock, s.cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := uc.WorkerDecision(s.ctx, s.worker, id, "accepted", "")

	s.Require().ErrorIs(err, commands.ErrConcurrentUpdate)
	s.Equal(booking.StatusQuoteDeclinedByWorker, s.load(id).Status)
}

func (s *BookingCommandsTestSuite) TestDuplicateCallbackRaceReportsAlreadyPaid() {
	id := s.createDirect()
	s.expectNotice(builder.CustomerUID, shared.NotifyInvoiceSent)
	_, err := s.bookings.SendInvoice(s.ctx, s.worker, id, s.invoice())
	s.Require().NoError(err)

	racer := &racingStore{DocumentStore: s.store, status: string(booking.StatusPaymentPaid)}
	uc := commands.NewPaymentUseCase(racer, s.notifier, s.clock, s.cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	outcome, err := uc.HandleCallback(s.ctx, s.callbackFields(id, "560.00", "2"))

	s.Require().NoError(err)
	s.Equal(payment.OutcomeAlreadyPaid, outcome)
}
