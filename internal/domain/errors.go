package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the emissions pipeline. Handlers map these to HTTP
// status codes with errors.Is; everything else is a 500.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrDeliveryNotFound   = errors.New("delivery not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrShipmentNotFound   = errors.New("shipment not found")
)

// MissingField reports an absent required field as a validation error.
func MissingField(name string) error {
	return fmt.Errorf("%w: missing required field %q", ErrValidation, name)
}

// LookupError reports a route-lookup collaborator failure for a specific
// address, so callers can tell which end of the route failed to resolve.
type LookupError struct {
	Address string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("could not resolve address %q: %v", e.Address, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
