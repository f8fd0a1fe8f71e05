package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type Booking struct {
	ID         int32  `json:"id"`
	VehicleID  int32  `json:"vehicle_id"`
	UserID     int32  `json:"user_id"`
	ResellerID *int32 `json:"reseller_id,omitempty"`

	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`

	// Financial snapshot, captured at creation from the vehicle's rate and
	// the reseller's terms. All amounts in cents.
	DailyRateCents     int32   `json:"daily_rate_cents"`
	SubtotalCents      int32   `json:"subtotal_cents"`
	UpchargePercentage float64 `json:"upcharge_percentage"`
	UpchargeCents      int32   `json:"upcharge_cents"`
	CommissionRate     float64 `json:"commission_rate"`
	CommissionCents    int32   `json:"commission_cents"`
	TotalCostCents     int32   `json:"total_cost_cents"`

	Status    BookingStatus `json:"status"`
	CreatedOn string        `json:"created_on"`
	UpdatedOn string        `json:"updated_on"`
}

// Period returns the booking's reserved interval.
func (b *Booking) Period() Interval {
	return Interval{Start: b.PickupDate, End: b.ReturnDate}
}

// Active reports whether the booking currently holds a ledger entry.
// Cancelled and completed bookings do not block the vehicle.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
