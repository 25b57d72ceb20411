package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cannot checkout an empty cart")
	ErrInvalidName       = errors.New("customer name must not be empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidDocument   = errors.New("document number must have at least 6 digits")
	ErrInvalidPhone      = errors.New("phone number must have at least 7 digits")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrInvalidCardNumber = errors.New("card number must have 16 digits")
	ErrInvalidCardExpiry = errors.New("card expiry must be MM/AA with a valid month")
	ErrInvalidCardCVV    = errors.New("card cvv must have 3 or 4 digits")
	ErrMissingAddress    = errors.New("shipping address is required")
	ErrMissingCity       = errors.New("shipping city is required")
)
