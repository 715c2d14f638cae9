//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"servicebook/internal/domain/booking"
	"servicebook/internal/domain/user"
	"servicebook/internal/handler/api"
	resdto "servicebook/internal/handler/dto/response"
	"servicebook/internal/handler/middleware"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/testutil"
	"servicebook/internal/testutil/builder"
	"servicebook/internal/testutil/httptest"
	commandsmock "servicebook/internal/testutil/mock/commands"
	queriesmock "servicebook/internal/testutil/mock/queries"
	"servicebook/internal/usecase/commands"
	"servicebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	customer = user.Identity{UID: builder.CustomerUID, Role: user.RoleCustomer, Profile: user.Profile{"fullName": "Nimal Perera"}}
	worker   = user.Identity{UID: builder.WorkerUID, Role: user.RoleWorker, Profile: user.Profile{"fullName": "Sunil Silva"}}
)

// as stands in for the auth middleware.
func as(id user.Identity, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", id)
		h(c)
	}
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/bookings", as(customer, s.handler.CreateBooking))
	s.router.GET("/bookings", as(customer, s.handler.ListMyBookings))
	s.router.POST("/bookings/quote/request", as(customer, s.handler.RequestQuote))
	s.router.GET("/bookings/:id", as(customer, s.handler.GetBooking))
	s.router.POST("/bookings/:id/photos", as(customer, s.handler.AttachPhotos))
	s.router.POST("/bookings/:id/worker-decision", as(worker, s.handler.WorkerDecision))
	s.router.POST("/bookings/:id/invoice/draft", as(worker, s.handler.SaveInvoiceDraft))
	s.router.POST("/bookings/:id/invoice/send", as(worker, s.handler.SendInvoice))
	s.router.POST("/bookings/:id/customer-decision", as(customer, s.handler.CustomerDecision))
	s.router.POST("/bookings/:id/payment/start", as(customer, s.handler.StartPayment))
	s.router.POST("/anonymous/bookings", s.handler.CreateBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func createBody() map[string]any {
	return map[string]any{
		"workerId":           builder.WorkerUID,
		"serviceName":        "Plumbing",
		"locationText":       "Colombo",
		"problemDescription": "Leaking kitchen sink",
		"scheduledDate":      "2026-10-20",
		"scheduledAt":        1760950800000,
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("success: 201 with booking id", func() {
		at := 1760950800000.0
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), customer, commands.CreateBookingRequest{
			WorkerID:           builder.WorkerUID,
			ServiceName:        "Plumbing",
			LocationText:       "Colombo",
			ProblemDescription: "Leaking kitchen sink",
			ScheduleInput:      booking.ScheduleInput{ScheduledDate: "2026-10-20", ScheduledAt: &at},
		}).Return(&commands.CreateBookingResult{BookingID: builder.BookingID}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", createBody(), "")

		var res resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(builder.BookingID, res.BookingID)
		s.True(res.OK)
	})

	s.Run("error kinds map to status codes", func() {
		cases := []struct {
			name   string
			err    error
			status int
			msg    string
		}{
			{"validation", errs.Validation("serviceName is required"), http.StatusBadRequest, "serviceName is required"},
			{"not a customer", booking.ErrCustomerOnly, http.StatusForbidden, ""},
			{"unknown worker", commands.ErrWorkerNotFound, http.StatusNotFound, "worker not found"},
			{"store down", errs.Internal(errors.New("dial tcp"), "create booking"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), createBody(), testutil.Field("serviceName", ""))
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), customer, gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "")

				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
			})
		}
	})

	s.Run("error: malformed json", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", "not an object", "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: no identity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/anonymous/bookings", createBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *BookingHandlerTestSuite) TestRequestQuote() {
	s.mockCommands.EXPECT().RequestQuote(gomock.Any(), customer, commands.RequestQuoteRequest{
		WorkerID: builder.WorkerUID, ServiceID: "svc-1", ServiceName: "Plumbing", LocationText: "Colombo", Title: "Fix sink",
	}).Return(&commands.CreateBookingResult{BookingID: "bk-9"}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/quote/request", map[string]any{
		"workerId": builder.WorkerUID, "serviceId": "svc-1", "serviceName": "Plumbing", "locationText": "Colombo", "title": "Fix sink",
	}, "")

	var res resdto.CreatedResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
	s.Equal("bk-9", res.BookingID)
}

func (s *BookingHandlerTestSuite) TestAttachPhotos() {
	urls := []string{"https://cdn.example/1.jpg"}
	s.mockCommands.EXPECT().AttachPhotos(gomock.Any(), customer, builder.BookingID, urls).
		Return(&commands.AttachPhotosResult{Count: 1}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/photos", map[string]any{"photoUrls": urls}, "")

	var res resdto.PhotosResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Equal(1, res.Count)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/photos", map[string]any{}, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
}

func (s *BookingHandlerTestSuite) TestDecisions() {
	s.Run("worker decision passes note", func() {
		s.mockCommands.EXPECT().WorkerDecision(gomock.Any(), worker, builder.BookingID, "accepted", "on my way").Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/worker-decision",
			map[string]any{"decision": "accepted", "note": "on my way"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("customer decision passes reason", func() {
		s.mockCommands.EXPECT().CustomerDecision(gomock.Any(), customer, builder.BookingID, "declined", "too expensive").Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/customer-decision",
			map[string]any{"decision": "declined", "reason": "too expensive"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("lost race is a conflict", func() {
		s.mockCommands.EXPECT().WorkerDecision(gomock.Any(), worker, builder.BookingID, "declined", "").Return(commands.ErrConcurrentUpdate)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/worker-decision",
			map[string]any{"decision": "declined"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "reload and retry")
	})

	s.Run("missing decision", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/customer-decision", map[string]any{"reason": "x"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestInvoice() {
	body := map[string]any{"inspectionFee": 1000, "laborHours": 2, "laborPrice": 600, "materials": 600, "notes": "parts"}
	expected := commands.InvoiceRequest{Fees: builder.ColomboFees(), Notes: "parts"}

	s.Run("draft", func() {
		s.mockCommands.EXPECT().SaveInvoiceDraft(gomock.Any(), worker, builder.BookingID, expected).
			Return(&commands.DraftResult{Subtotal: 2800}, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/invoice/draft", body, "")

		var res resdto.DraftResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(2800.0, res.Subtotal)
	})

	s.Run("send", func() {
		s.mockCommands.EXPECT().SendInvoice(gomock.Any(), worker, builder.BookingID, expected).
			Return(&commands.SendInvoiceResult{Subtotal: 2800, ValidUntil: builder.BaseMillis}, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/invoice/send", body, "")

		var res resdto.InvoiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(builder.BaseMillis, res.ValidUntil)
	})

	s.Run("wrong status", func() {
		s.mockCommands.EXPECT().SendInvoice(gomock.Any(), worker, builder.BookingID, gomock.Any()).Return(nil, booking.ErrInvalidTransition)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/invoice/send", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *BookingHandlerTestSuite) TestStartPayment() {
	s.mockCommands.EXPECT().StartPayment(gomock.Any(), customer, builder.BookingID).Return(&commands.StartPaymentResult{
		IntentID: "pi-1",
		Checkout: commands.Checkout{MerchantID: "1211149", OrderID: builder.BookingID, Amount: "560.00", Currency: "LKR", Hash: "ABC"},
	}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bk-1/payment/start", nil, "")

	var res resdto.StartPaymentResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Equal("pi-1", res.IntentID)
	s.Equal("560.00", res.Checkout.Amount)
	s.Equal(builder.BookingID, res.Checkout.OrderID)
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	b := builder.NewBookingBuilder().WithInvoice(2800).Build()
	s.mockQueries.EXPECT().GetBooking(gomock.Any(), customer, builder.BookingID).Return(b, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/bk-1", nil, "")

	var res resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Equal(b.BookingID, res.BookingID)
	s.Equal(b.Status, res.Status)
	s.Equal("Nimal Perera", res.CustomerName)
	s.Require().NotNil(res.Invoice)
	s.Equal(2800.0, res.Invoice.Subtotal)

	s.mockQueries.EXPECT().GetBooking(gomock.Any(), customer, "bk-2").Return(nil, queries.ErrNotParty)
	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/bk-2", nil, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
}

func (s *BookingHandlerTestSuite) TestListMyBookings() {
	subtotal := 2800.0
	items := []*queries.BookingListItem{
		{BookingID: "bk-2", Status: booking.StatusInvoiceSent, ServiceName: "Plumbing", Subtotal: &subtotal, CreatedAt: 2},
		{BookingID: "bk-1", Status: booking.StatusPending, ServiceName: "Plumbing", CreatedAt: 1},
	}
	s.mockQueries.EXPECT().ListMyBookings(gomock.Any(), customer, &queries.Cursor{After: "abc"}, 2).
		Return(items, &queries.Cursor{After: "next"}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?after=abc&limit=2", nil, "")

	var res resdto.BookingListResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Require().Len(res.Items, 2)
	s.Equal("bk-2", res.Items[0].BookingID)
	s.Equal(booking.StatusInvoiceSent, res.Items[0].Status)
	s.Equal(&subtotal, res.Items[0].Subtotal)
	s.Equal("next", res.NextAfter)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=500", nil, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
}
