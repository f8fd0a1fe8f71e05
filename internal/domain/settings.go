package domain

// Setting is one key/value row of the site settings table.
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedOn string `json:"updated_on"`
}

// Well-known setting keys.
const (
	SettingDefaultUpchargePercentage = "default_upcharge_percentage"
	SettingCurrency                  = "currency"
	SettingMaxBookingDays            = "max_booking_days"
)
