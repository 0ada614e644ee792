package credits

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient credits")
	ErrAccountNotFound   = errors.New("credit account not found")
)
