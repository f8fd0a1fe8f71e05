package domain

import "errors"

// Expected rejection outcomes of the booking core. The HTTP layer maps
// these to 4xx responses; anything else is treated as a storage failure.
var (
	ErrInvalidRange       = errors.New("return date must be after pickup date")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrVehicleUnavailable = errors.New("vehicle is not available for booking")
	ErrConflict           = errors.New("vehicle is already reserved for the requested dates")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")
)
