package request

import "servicebook/internal/usecase/events"

type BookingCreatedHook struct {
	BookingID string         `json:"bookingId" binding:"required"`
	Record    map[string]any `json:"record" binding:"required"`
}

func (r BookingCreatedHook) ToEvent() events.BookingCreated {
	return events.BookingCreated{BookingID: r.BookingID, Record: r.Record}
}

type ChatMessageCreatedHook struct {
	ThreadID  string  `json:"threadId" binding:"required"`
	MessageID string  `json:"messageId"`
	SenderID  string  `json:"senderId"`
	Text      string  `json:"text"`
	CreatedAt float64 `json:"createdAt"`
	Type      string  `json:"type"`
}

func (r ChatMessageCreatedHook) ToEvent() events.ChatMessageCreated {
	return events.ChatMessageCreated(r)
}
