//go:build unit || e2e

package bootstrap_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"servicebook/cmd/bootstrap"
	"servicebook/cmd/bootstrap/components"
	"servicebook/internal/domain/booking"
	"servicebook/internal/domain/payment"
	"servicebook/internal/domain/user"
	resdto "servicebook/internal/handler/dto/response"
	"servicebook/internal/handler/middleware"
	"servicebook/internal/pkg/config"
	"servicebook/internal/pkg/jwt"
	"servicebook/internal/testutil/httptest"
	"servicebook/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

const (
	customerUID = "cust-1"
	workerUID   = "work-1"
)

// AppSuite drives the assembled application over HTTP. configure picks the
// store backend.
type AppSuite struct {
	suite.Suite
	configure func(t *testing.T, cfg *config.Config)

	cfg    config.Config
	router *gin.Engine
	store  shared.DocumentStore
	tokens *jwt.Service
}

func (s *AppSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = config.NewTestConfig()
	if s.configure != nil {
		s.configure(s.T(), &s.cfg)
	}

	app := fx.New(
		fx.Supply(s.cfg),
		fx.Provide(gin.New),
		bootstrap.LoggerModule,
		bootstrap.StoreModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.EventsModule,
		components.HandlerModule,
		fx.Populate(&s.router, &s.store, &s.tokens),
		fx.NopLogger,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Require().NoError(app.Start(ctx))
	s.T().Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	})

	s.Require().NoError(s.store.Update(context.Background(), shared.WriteSet{
		shared.ProfilePath(user.RoleCustomer, customerUID): map[string]any{"fullName": "Nimal Perera"},
		shared.ProfilePath(user.RoleWorker, workerUID):     map[string]any{"fullName": "Sunil Silva"},
	}))
}

func (s *AppSuite) token(uid string) string {
	tok, err := s.tokens.GenerateToken(uid, time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *AppSuite) status(id string) booking.Status {
	snap, err := s.store.Get(context.Background(), shared.BookingStatusPath(id))
	s.Require().NoError(err)
	v, _ := snap.Value.(string)
	return booking.Status(v)
}

func (s *AppSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AppSuite) TestLoginInfo() {
	s.Run("customer portal", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login-info",
			map[string]any{"expectedRole": "customer"}, s.token(customerUID))

		var res resdto.LoginInfoResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("customer", res.Role)
		s.Equal("Nimal Perera", res.Profile["fullName"])
	})

	s.Run("wrong portal", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login-info",
			map[string]any{"expectedRole": "worker"}, s.token(customerUID))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "This account is not a worker account.")
	})

	s.Run("no profile", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login-info", nil, s.token("ghost"))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "No user profile found in database")
	})

	s.Run("forged token", func() {
		forged, err := jwt.NewService("other-secret", "").GenerateToken(customerUID, time.Hour)
		s.Require().NoError(err)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login-info", nil, forged)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AppSuite) TestBookToPaid() {
	customer, worker := s.token(customerUID), s.token(workerUID)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", map[string]any{
		"workerId":           workerUID,
		"serviceName":        "Plumbing",
		"locationText":       "Colombo",
		"problemDescription": "Leaking kitchen sink",
	}, customer)
	var created resdto.CreatedResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	id := created.BookingID
	s.Equal(booking.StatusPending, s.status(id))

	// only the worker on the booking may invoice
	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id+"/invoice/send",
		map[string]any{"inspectionFee": 1000}, customer)
	httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id+"/invoice/send", map[string]any{
		"inspectionFee": 1000, "laborHours": 2, "laborPrice": 600, "materials": 600,
	}, worker)
	var invoice resdto.InvoiceResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &invoice)
	s.Equal(2800.0, invoice.Subtotal)
	s.Equal(booking.StatusInvoiceSent, s.status(id))

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id+"/customer-decision",
		map[string]any{"decision": "accepted"}, customer)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id+"/payment/start", nil, customer)
	var start resdto.StartPaymentResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &start)
	s.Equal("560.00", start.Checkout.Amount)
	s.Equal(id, start.Checkout.OrderID)

	form := url.Values{
		"merchant_id": {s.cfg.Payment.MerchantID},
		"order_id":    {id},
		"payment_id":  {"320025071234"},
		"amount":      {"560.00"},
		"currency":    {"LKR"},
		"status_code": {"2"},
		"md5sig": {payment.CallbackSignature(s.cfg.Payment.MerchantID, id, "560.00", "LKR", "2",
			s.cfg.Payment.MerchantSecret)},
	}
	rec = httptest.PerformFormRequest(s.T(), s.router, "/api/payments/notify", form, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(string(payment.OutcomeOK), rec.Body.String())
	s.Equal(booking.StatusPaymentPaid, s.status(id))

	rec = httptest.PerformFormRequest(s.T(), s.router, "/api/payments/notify", form, nil)
	s.Equal(string(payment.OutcomeAlreadyPaid), rec.Body.String())

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+id, nil, worker)
	var got resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
	s.Equal(booking.StatusPaymentPaid, got.Status)
	s.Require().NotNil(got.Payment)
	s.Equal(booking.PaymentStatusPaid, got.Payment.Status)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?limit=10", nil, customer)
	var list resdto.BookingListResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
	s.Require().Len(list.Items, 1)
	s.Equal(id, list.Items[0].BookingID)

	snap, err := s.store.Get(context.Background(), shared.Join("notifications", customerUID))
	s.Require().NoError(err)
	s.True(snap.Exists(), "customer should have been notified of the invoice")
}

func (s *AppSuite) TestEventHooks() {
	hook := map[string]string{middleware.HookTokenHeader: s.cfg.Events.HookToken}
	ctx := context.Background()

	s.Run("booking created writes missing index entries", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/internal/events/booking-created", map[string]any{
			"bookingId": "bk-ext",
			"record":    map[string]any{"customerId": customerUID, "workerId": workerUID},
		}, hook)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		snap, err := s.store.Get(ctx, shared.UserBookingPath(user.RoleWorker, workerUID, "bk-ext"))
		s.Require().NoError(err)
		s.Equal(true, snap.Value)
	})

	s.Run("chat message bumps the receiver's unread count", func() {
		s.Require().NoError(s.store.Update(ctx, shared.WriteSet{
			shared.ChatThreadPath("t-1") + "/participants": map[string]any{customerUID: true, workerUID: true},
		}))
		for range 2 {
			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/internal/events/chat-message-created", map[string]any{
				"threadId": "t-1", "messageId": "m-1", "senderId": customerUID, "text": "are you coming?",
			}, hook)
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}

		snap, err := s.store.Get(ctx, shared.UserThreadPath(workerUID, "t-1")+"/unreadCount")
		s.Require().NoError(err)
		s.Equal(2.0, snap.Value)
	})

	s.Run("hooks need the shared token", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/internal/events/booking-created",
			map[string]any{"bookingId": "x", "record": map[string]any{}}, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid hook token")
	})
}
