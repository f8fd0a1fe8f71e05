package domain

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleReseller UserRole = "RESELLER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Role         UserRole `json:"role"`

	// Reseller terms. CommissionRate is a percentage of the booking
	// subtotal (0-50); TotalCommissionsCents is a running accumulator
	// adjusted on booking creation and cancellation.
	CommissionRate        float64 `json:"commission_rate,omitempty"`
	TotalCommissionsCents int32   `json:"total_commissions_cents,omitempty"`

	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
