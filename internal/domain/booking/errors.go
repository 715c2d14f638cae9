package booking

import (
	"errors"

	"servicebook/internal/pkg/errs"
)

var (
	ErrNotBookingCustomer = errs.Mark(errors.New("you are not the customer on this booking"), errs.ErrPermission)
	ErrNotBookingWorker   = errs.Mark(errors.New("you are not the worker on this booking"), errs.ErrPermission)
	ErrCustomerOnly       = errs.Mark(errors.New("only customers can perform this action"), errs.ErrPermission)

	ErrInvalidTransition = errs.Mark(errors.New("booking is not in a status that allows this action"), errs.ErrPrecondition)
	ErrNotPending        = errs.Mark(errors.New("booking is not pending"), errs.ErrPrecondition)
	ErrNoInvoice         = errs.Mark(errors.New("booking has no invoice"), errs.ErrPrecondition)
	ErrAlreadyPaid       = errs.Mark(errors.New("booking is already paid"), errs.ErrPrecondition)

	ErrInvalidDecision = errs.Mark(errors.New("decision must be accepted or declined"), errs.ErrValidation)
	ErrPhotosEmpty     = errs.Mark(errors.New("photoUrls is empty"), errs.ErrValidation)
	ErrTooManyPhotos   = errs.Mark(errors.New("maximum 3 photos allowed"), errs.ErrValidation)
	ErrPhotoURLTooLong = errs.Mark(errors.New("a photo URL is too long"), errs.ErrValidation)
	ErrInvalidPhotoURL = errs.Mark(errors.New("invalid photo URL"), errs.ErrValidation)
	ErrInvalidAdvance  = errs.Mark(errors.New("advance amount must be positive"), errs.ErrValidation)
)
