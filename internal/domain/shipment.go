package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const shipmentAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewShipmentID generates a shipment token of the form
// SHIP-<unix millis>-<6 random alphanumerics>. Used when the caller does not
// supply a shipment id of its own.
func NewShipmentID() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = shipmentAlphabet[rand.IntN(len(shipmentAlphabet))]
	}
	return fmt.Sprintf("SHIP-%d-%s", time.Now().UnixMilli(), suffix)
}
