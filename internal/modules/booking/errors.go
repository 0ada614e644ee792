package booking

import "errors"

var (
	ErrInvalidRange     = errors.New("start time must be before end time")
	ErrPastTime         = errors.New("booking starts in the past")
	ErrTooFarAhead      = errors.New("booking starts beyond the advance window")
	ErrCooldownConflict = errors.New("another booking within the cooldown window")
	ErrTooLateToCancel  = errors.New("past the cancellation deadline")
	ErrQuotaExceeded    = errors.New("monthly cancellation limit reached")
	ErrNoAvailability   = errors.New("no available room instance")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrNotFound         = errors.New("booking not found")
	ErrNotConfirmed     = errors.New("booking is not confirmed")
)
