package guest

import "errors"

var (
	ErrValidation      = errors.New("guest name and email are required")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("only the booking's requester may invite guests")
	ErrAlreadyInvited  = errors.New("guest already invited to this booking")
)
