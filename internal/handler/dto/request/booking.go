package request

import (
	"servicebook/internal/domain/booking"
	"servicebook/internal/usecase/commands"
)

type ScheduleRequest struct {
	ScheduledDate string   `json:"scheduledDate"`
	ScheduledTime string   `json:"scheduledTime"`
	ScheduledAt   *float64 `json:"scheduledAt"`
	DateMode      string   `json:"dateMode"`
}

func (r ScheduleRequest) toInput() booking.ScheduleInput {
	return booking.ScheduleInput{
		ScheduledDate: r.ScheduledDate,
		ScheduledTime: r.ScheduledTime,
		ScheduledAt:   r.ScheduledAt,
		DateMode:      r.DateMode,
	}
}

type CreateBookingRequest struct {
	WorkerID           string `json:"workerId"`
	ServiceName        string `json:"serviceName"`
	LocationText       string `json:"locationText"`
	ProblemDescription string `json:"problemDescription"`
	RequestNote        string `json:"requestNote"`
	ScheduleRequest
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		WorkerID:           r.WorkerID,
		ServiceName:        r.ServiceName,
		LocationText:       r.LocationText,
		ProblemDescription: r.ProblemDescription,
		RequestNote:        r.RequestNote,
		ScheduleInput:      r.toInput(),
	}
}

type RequestQuoteRequest struct {
	WorkerID     string `json:"workerId"`
	ServiceID    string `json:"serviceId"`
	ServiceName  string `json:"serviceName"`
	LocationText string `json:"locationText"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ScheduleRequest
}

func (r RequestQuoteRequest) ToCommand() commands.RequestQuoteRequest {
	return commands.RequestQuoteRequest{
		WorkerID:      r.WorkerID,
		ServiceID:     r.ServiceID,
		ServiceName:   r.ServiceName,
		LocationText:  r.LocationText,
		Title:         r.Title,
		Description:   r.Description,
		ScheduleInput: r.toInput(),
	}
}

type AttachPhotosRequest struct {
	PhotoURLs []string `json:"photoUrls" binding:"required"`
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Note     string `json:"note"`
	Reason   string `json:"reason"`
}

type InvoiceRequest struct {
	InspectionFee *float64 `json:"inspectionFee"`
	LaborHours    *float64 `json:"laborHours"`
	LaborPrice    *float64 `json:"laborPrice"`
	Materials     *float64 `json:"materials"`
	Notes         string   `json:"notes"`
	ValidDays     *float64 `json:"validDays"`
}

func (r InvoiceRequest) ToCommand() commands.InvoiceRequest {
	return commands.InvoiceRequest{
		Fees: booking.FeeInput{
			InspectionFee: r.InspectionFee,
			LaborHours:    r.LaborHours,
			LaborPrice:    r.LaborPrice,
			Materials:     r.Materials,
		},
		Notes:     r.Notes,
		ValidDays: r.ValidDays,
	}
}

type ListBookingsQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
