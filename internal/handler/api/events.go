package api

import (
	"net/http"

	reqdto "servicebook/internal/handler/dto/request"
	resdto "servicebook/internal/handler/dto/response"
	"servicebook/internal/handler/httperr"
	"servicebook/internal/usecase/events"

	"github.com/gin-gonic/gin"
)

// EventHookHandler receives store triggers over HTTP when no broker is
// configured. Delivery is at least once; handlers are idempotent.
type EventHookHandler struct {
	bookings events.BookingCreatedConsumer
	chats    events.ChatMessageCreatedConsumer
}

func NewEventHookHandler(bookings events.BookingCreatedConsumer, chats events.ChatMessageCreatedConsumer) *EventHookHandler {
	return &EventHookHandler{bookings: bookings, chats: chats}
}

// @Summary Booking created trigger
// @Tags internal
// @Accept json
// @Produce json
// @Param X-Hook-Token header string true "Shared hook token"
// @Param request body reqdto.BookingCreatedHook true "Created booking"
// @Success 200 {object} resdto.OKResponse
// @Router /internal/events/booking-created [post]
func (h *EventHookHandler) BookingCreated(c *gin.Context) {
	var req reqdto.BookingCreatedHook
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if err := h.bookings.OnBookingCreated(c.Request.Context(), req.ToEvent()); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OKResponse{OK: true})
}

// @Summary Chat message created trigger
// @Tags internal
// @Accept json
// @Produce json
// @Param X-Hook-Token header string true "Shared hook token"
// @Param request body reqdto.ChatMessageCreatedHook true "Created message"
// @Success 200 {object} resdto.OKResponse
// @Router /internal/events/chat-message-created [post]
func (h *EventHookHandler) ChatMessageCreated(c *gin.Context) {
	var req reqdto.ChatMessageCreatedHook
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if err := h.chats.OnChatMessageCreated(c.Request.Context(), req.ToEvent()); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OKResponse{OK: true})
}
