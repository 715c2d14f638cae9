package booking

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"servicebook/internal/pkg/errs"
	"servicebook/internal/pkg/patch"
)

const (
	MaxWorkerIDLen      = 128
	MaxServiceIDLen     = 128
	MaxServiceNameLen   = 120
	MaxLocationLen      = 200
	MaxDescriptionLen   = 5000
	MaxRequestNoteLen   = 5000
	MaxTitleLen         = 200
	MaxScheduledDateLen = 20
	MaxScheduledTimeLen = 10
	MaxDateModeLen      = 20

	DefaultCustomer = "Customer"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Schedule holds the optional scheduling hints shared by both creation flows.
type Schedule struct {
	Date *string
	Time *string
	At   *int64
	Mode *string
}

type ScheduleInput struct {
	ScheduledDate string
	ScheduledTime string
	ScheduledAt   *float64
	DateMode      string
}

func (in ScheduleInput) Validate() (Schedule, error) {
	var s Schedule
	date, err := optional("scheduledDate", in.ScheduledDate, MaxScheduledDateLen)
	if err != nil {
		return s, err
	}
	if date != nil && !datePattern.MatchString(*date) {
		return s, errs.Validation("scheduledDate must be YYYY-MM-DD")
	}
	tm, err := optional("scheduledTime", in.ScheduledTime, MaxScheduledTimeLen)
	if err != nil {
		return s, err
	}
	if tm != nil && !timePattern.MatchString(*tm) {
		return s, errs.Validation("scheduledTime must be HH:mm")
	}
	mode, err := optional("dateMode", in.DateMode, MaxDateModeLen)
	if err != nil {
		return s, err
	}
	if in.ScheduledAt != nil {
		v := *in.ScheduledAt
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return s, errs.Validation("scheduledAt must be a positive timestamp")
		}
		at := int64(v)
		s.At = &at
	}
	s.Date, s.Time, s.Mode = date, tm, mode
	return s, nil
}

// DirectRequestInput is a Flow A request: the customer books a named worker.
type DirectRequestInput struct {
	WorkerID           string
	ServiceName        string
	LocationText       string
	ProblemDescription string
	RequestNote        string
	ScheduleInput
}

type DirectRequest struct {
	WorkerID           string
	ServiceName        string
	LocationText       string
	ProblemDescription string
	RequestNote        string
	Schedule           Schedule
}

func (in DirectRequestInput) Validate() (DirectRequest, error) {
	var (
		r   DirectRequest
		err error
	)
	if r.WorkerID, err = required("workerId", in.WorkerID, MaxWorkerIDLen); err != nil {
		return r, err
	}
	if r.ServiceName, err = required("serviceName", in.ServiceName, MaxServiceNameLen); err != nil {
		return r, err
	}
	if r.LocationText, err = required("locationText", in.LocationText, MaxLocationLen); err != nil {
		return r, err
	}
	if r.ProblemDescription, err = required("problemDescription", in.ProblemDescription, MaxDescriptionLen); err != nil {
		return r, err
	}
	if r.RequestNote, err = capped("requestNote", in.RequestNote, MaxRequestNoteLen); err != nil {
		return r, err
	}
	if r.Schedule, err = in.ScheduleInput.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// NewDirectBooking creates a pending Flow A booking.
func NewDirectBooking(id, customerID, customerName string, r DirectRequest, now int64) *Booking {
	if customerName == "" {
		customerName = DefaultCustomer
	}
	return &Booking{
		BookingID:          id,
		CustomerID:         customerID,
		CustomerName:       customerName,
		WorkerID:           r.WorkerID,
		ServiceName:        r.ServiceName,
		LocationText:       r.LocationText,
		ProblemDescription: r.ProblemDescription,
		ScheduledDate:      r.Schedule.Date,
		ScheduledTime:      r.Schedule.Time,
		ScheduledAt:        r.Schedule.At,
		DateMode:           r.Schedule.Mode,
		Status:             StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
		QuotationRequest: &QuotationRequest{
			RequestedAt: now,
			RequestNote: r.RequestNote,
		},
	}
}

// QuoteRequestInput is a Flow B request: the customer asks a worker for a
// quote on a listed service.
type QuoteRequestInput struct {
	WorkerID     string
	ServiceID    string
	ServiceName  string
	LocationText string
	Title        string
	Description  string
	ScheduleInput
}

type QuoteRequestDetails struct {
	WorkerID     string
	ServiceID    string
	ServiceName  string
	LocationText string
	Title        string
	Description  string
	Schedule     Schedule
}

func (in QuoteRequestInput) Validate() (QuoteRequestDetails, error) {
	var (
		r   QuoteRequestDetails
		err error
	)
	if r.WorkerID, err = required("workerId", in.WorkerID, MaxWorkerIDLen); err != nil {
		return r, err
	}
	if r.ServiceID, err = required("serviceId", in.ServiceID, MaxServiceIDLen); err != nil {
		return r, err
	}
	if r.ServiceName, err = required("serviceName", in.ServiceName, MaxServiceNameLen); err != nil {
		return r, err
	}
	if r.LocationText, err = required("locationText", in.LocationText, MaxLocationLen); err != nil {
		return r, err
	}
	if r.Title, err = required("title", in.Title, MaxTitleLen); err != nil {
		return r, err
	}
	if r.Description, err = capped("description", in.Description, MaxDescriptionLen); err != nil {
		return r, err
	}
	if r.Schedule, err = in.ScheduleInput.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// NewQuoteRequestBooking creates a Flow B booking in quote_requested.
func NewQuoteRequestBooking(id, customerID, customerName string, r QuoteRequestDetails, now int64) *Booking {
	if customerName == "" {
		customerName = DefaultCustomer
	}
	return &Booking{
		BookingID:          id,
		CustomerID:         customerID,
		CustomerName:       customerName,
		WorkerID:           r.WorkerID,
		ServiceID:          r.ServiceID,
		ServiceName:        r.ServiceName,
		LocationText:       r.LocationText,
		ProblemDescription: r.Description,
		ScheduledDate:      r.Schedule.Date,
		ScheduledTime:      r.Schedule.Time,
		ScheduledAt:        r.Schedule.At,
		DateMode:           r.Schedule.Mode,
		Status:             StatusQuoteRequested,
		CreatedAt:          now,
		UpdatedAt:          now,
		QuoteRequest: &QuoteRequest{
			Title:       r.Title,
			Description: r.Description,
			RequestedAt: now,
		},
	}
}

func required(field, v string, limit int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errs.Validation(fmt.Sprintf("%s is required", field))
	}
	return capped(field, v, limit)
}

func capped(field, v string, limit int) (string, error) {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) > limit {
		return "", errs.Validation(fmt.Sprintf("%s is too long (max %d)", field, limit))
	}
	return v, nil
}

func optional(field, v string, limit int) (*string, error) {
	v, err := capped(field, v, limit)
	if err != nil {
		return nil, err
	}
	return patch.NilIfZero(v), nil
}
