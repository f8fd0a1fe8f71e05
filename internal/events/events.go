package events

import (
	"encoding/json"
	"time"
)

const (
	EventBookingCreated   = "BookingCreated"
	EventBookingUpdated   = "BookingUpdated"
	EventBookingCancelled = "BookingCancelled"
	EventVehicleSold      = "VehicleSold"
)

// Envelope is the wire format of every broadcast event. Subscribers use
// the vehicle id to refresh their cached availability views.
type Envelope struct {
	EventID      string          `json:"event_id"` // uuid
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"` // 1
	OccurredAt   time.Time       `json:"occurred_at"`   // RFC3339
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type BookingEventPayload struct {
	BookingID  int32  `json:"booking_id"`
	VehicleID  int32  `json:"vehicle_id"`
	UserID     int32  `json:"user_id"`
	PickupDate string `json:"pickup_date"`
	ReturnDate string `json:"return_date"`
	Status     string `json:"status"`
}

type VehicleSoldPayload struct {
	SaleID     int32 `json:"sale_id"`
	VehicleID  int32 `json:"vehicle_id"`
	BuyerID    int32 `json:"buyer_id"`
	PriceCents int32 `json:"price_cents"`
}
