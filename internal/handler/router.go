package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"servicebook/internal/handler/api"
	"servicebook/internal/handler/middleware"
	"servicebook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Booking *api.BookingHandler
	Payment *api.PaymentHandler
	Events  *api.EventHookHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		auth.Use(authMiddleware.RequireAuth())
		addRoutes(auth, []route{
			{Method: http.MethodPost, Path: "/login-info", Handler: h.Auth.LoginInfo},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMyBookings},
				{Method: http.MethodPost, Path: "/quote/request", Handler: h.Booking.RequestQuote},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.GetBooking},
				{Method: http.MethodPost, Path: "/:id/photos", Handler: h.Booking.AttachPhotos},
				{Method: http.MethodPost, Path: "/:id/worker-decision", Handler: h.Booking.WorkerDecision},
				{Method: http.MethodPost, Path: "/:id/invoice/draft", Handler: h.Booking.SaveInvoiceDraft},
				{Method: http.MethodPost, Path: "/:id/invoice/send", Handler: h.Booking.SendInvoice},
				{Method: http.MethodPost, Path: "/:id/customer-decision", Handler: h.Booking.CustomerDecision},
				{Method: http.MethodPost, Path: "/:id/payment/start", Handler: h.Booking.StartPayment},
			})
		}

		// called by the gateway, authenticated by signature
		addRoutes(apiGroup.Group("/payments"), []route{
			{Method: http.MethodPost, Path: "/notify", Handler: h.Payment.Notify},
		})
	}

	hookAuth := []gin.HandlerFunc{middleware.RequireHookToken(cfg.Events.HookToken)}
	addRoutes(engine.Group("/internal/events"), []route{
		{Method: http.MethodPost, Path: "/booking-created", Handler: h.Events.BookingCreated, Mw: hookAuth},
		{Method: http.MethodPost, Path: "/chat-message-created", Handler: h.Events.ChatMessageCreated, Mw: hookAuth},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
