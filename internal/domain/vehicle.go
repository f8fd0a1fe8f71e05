package domain

type OfferingType string

const (
	OfferingTypeSale   OfferingType = "SALE"
	OfferingTypeRental OfferingType = "RENTAL"
	OfferingTypeBoth   OfferingType = "BOTH"
)

type Vehicle struct {
	ID             int32        `json:"id"`
	Make           string       `json:"make"`
	Model          string       `json:"model"`
	Year           int32        `json:"year"`
	OfferingType   OfferingType `json:"offering_type"`
	DailyRateCents int32        `json:"daily_rate_cents"`
	SalePriceCents int32        `json:"sale_price_cents"`
	IsAvailable    bool         `json:"is_available"`
	Reservations   []Reservation `json:"reservations,omitempty"`
	CreatedOn      string       `json:"created_on"`
	UpdatedOn      string       `json:"updated_on"`
}

// Reservation is one committed entry of the vehicle's reservation ledger.
type Reservation struct {
	BookingID int32    `json:"booking_id"`
	Period    Interval `json:"period"`
}

// Bookable reports whether the vehicle participates in booking at all.
// Sale-only vehicles and vehicles flagged unavailable never do,
// regardless of ledger state.
func (v *Vehicle) Bookable() bool {
	return v.IsAvailable && v.OfferingType != OfferingTypeSale
}

// Sellable reports whether the vehicle can be sold.
func (v *Vehicle) Sellable() bool {
	return v.IsAvailable && v.OfferingType != OfferingTypeRental
}

// HasConflict reports whether the candidate interval overlaps any ledger
// entry other than excludeBookingID (0 means exclude nothing; used so a
// booking's own entry does not self-conflict on date changes).
func (v *Vehicle) HasConflict(candidate Interval, excludeBookingID int32) bool {
	for _, r := range v.Reservations {
		if excludeBookingID != 0 && r.BookingID == excludeBookingID {
			continue
		}
		if r.Period.Overlaps(candidate) {
			return true
		}
	}
	return false
}
