package domain

// Sale records a completed vehicle purchase. Selling a vehicle flags it
// unavailable, which removes it from booking permanently.
type Sale struct {
	ID         int32  `json:"id"`
	VehicleID  int32  `json:"vehicle_id"`
	BuyerID    int32  `json:"buyer_id"`
	ResellerID *int32 `json:"reseller_id,omitempty"`
	PriceCents int32  `json:"price_cents"`
	CreatedOn  string `json:"created_on"`
}
