package shared

import (
	"strings"

	"servicebook/internal/domain/user"
)

// SafeSegment reports whether s can be used as one path segment.
func SafeSegment(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/.#$[]")
}

func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func BookingPath(bookingID string) string {
	return Join("bookings", bookingID)
}

func BookingStatusPath(bookingID string) string {
	return Join("bookings", bookingID, "status")
}

func UserBookingPath(role user.Role, uid, bookingID string) string {
	return Join("userBookings", role.Namespace(), uid, bookingID)
}

func UserBookingsPath(role user.Role, uid string) string {
	return Join("userBookings", role.Namespace(), uid)
}

func ProfilePath(role user.Role, uid string) string {
	return Join("users", role.Namespace(), uid)
}

func NotificationPath(uid, id string) string {
	return Join("notifications", uid, id)
}

func ChatThreadPath(threadID string) string {
	return Join("chatThreads", threadID)
}

func UserThreadPath(uid, threadID string) string {
	return Join("userThreads", uid, threadID)
}

func PaymentCallbackPath(orderID, auditID string) string {
	return Join("paymentCallbacks", orderID, auditID)
}

// Prefix rewrites relative field paths under root.
func Prefix(root string, fields map[string]any) WriteSet {
	ws := make(WriteSet, len(fields))
	for k, v := range fields {
		ws[Join(root, k)] = v
	}
	return ws
}
