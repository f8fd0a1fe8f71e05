package utils

import (
	"math"

	"drivehub-backend/internal/domain"
)

// BookingQuote is the financial breakdown of a booking. All amounts in
// cents. The commission is the reseller's share of the subtotal; it never
// increases the customer price. The upcharge is the customer-facing
// markup a reseller may add on top of the subtotal.
type BookingQuote struct {
	Days               int32
	DailyRateCents     int32
	SubtotalCents      int32
	UpchargePercentage float64
	UpchargeCents      int32
	CommissionRate     float64
	CommissionCents    int32
	TotalCostCents     int32
}

// roundCents rounds a fractional cent amount half away from zero.
// Applied exactly once per derived amount so repeated recomputation of a
// quote always yields identical figures.
func roundCents(v float64) int32 {
	return int32(math.Round(v))
}

// Percentage computes pct percent of an amount in cents, rounded to the
// nearest cent.
func Percentage(amountCents int32, pct float64) int32 {
	return roundCents(float64(amountCents) * pct / 100)
}

// QuoteBooking computes the full financial snapshot for a booking of the
// given interval. commissionRate is zero when no reseller is attached;
// upchargePct is zero when the reseller adds no markup.
func QuoteBooking(period domain.Interval, dailyRateCents int32, commissionRate, upchargePct float64) BookingQuote {
	days := period.Days()
	subtotal := dailyRateCents * days

	q := BookingQuote{
		Days:           days,
		DailyRateCents: dailyRateCents,
		SubtotalCents:  subtotal,
		TotalCostCents: subtotal,
	}

	if upchargePct > 0 {
		q.UpchargePercentage = upchargePct
		q.UpchargeCents = Percentage(subtotal, upchargePct)
		q.TotalCostCents = subtotal + q.UpchargeCents
	}

	if commissionRate > 0 {
		q.CommissionRate = commissionRate
		q.CommissionCents = Percentage(subtotal, commissionRate)
	}

	return q
}

// ApplyQuote copies a quote's financial fields onto a booking.
func ApplyQuote(b *domain.Booking, q BookingQuote) {
	b.DailyRateCents = q.DailyRateCents
	b.SubtotalCents = q.SubtotalCents
	b.UpchargePercentage = q.UpchargePercentage
	b.UpchargeCents = q.UpchargeCents
	b.CommissionRate = q.CommissionRate
	b.CommissionCents = q.CommissionCents
	b.TotalCostCents = q.TotalCostCents
}
