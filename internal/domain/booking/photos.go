package booking

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxPhotos      = 3
	MaxPhotoURLLen = 1200
)

var photoURLPattern = regexp.MustCompile(`(?i)^https?://`)

// Photos maps slot "0".."2" to a URL.
type Photos map[string]string

// CleanPhotoURLs trims, drops empty entries and checks count, length and
// scheme.
func CleanPhotoURLs(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, u := range raw {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out = append(out, u)
	}
	if len(out) == 0 {
		return nil, ErrPhotosEmpty
	}
	if len(out) > MaxPhotos {
		return nil, ErrTooManyPhotos
	}
	for _, u := range out {
		if len(u) > MaxPhotoURLLen {
			return nil, ErrPhotoURLTooLong
		}
		if !photoURLPattern.MatchString(u) {
			return nil, ErrInvalidPhotoURL
		}
	}
	return out, nil
}

// AttachPhotos replaces all three photo slots. Only the owning customer may
// do this and only while the booking is pending.
func (b *Booking) AttachPhotos(uid string, urls []string, now int64) (Patch, error) {
	if !b.IsCustomer(uid) {
		return nil, ErrNotBookingCustomer
	}
	if b.Status != StatusPending {
		return nil, ErrNotPending
	}
	p := Patch{"updatedAt": now}
	for i := 0; i < MaxPhotos; i++ {
		key := "photos/" + strconv.Itoa(i)
		if i < len(urls) {
			p[key] = urls[i]
		} else {
			p[key] = nil
		}
	}
	return p, nil
}
