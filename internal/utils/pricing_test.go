package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drivehub-backend/internal/domain"
)

func interval(t *testing.T, start, end string) domain.Interval {
	t.Helper()
	s, err := time.Parse(domain.DateFormat, start)
	assert.NoError(t, err)
	e, err := time.Parse(domain.DateFormat, end)
	assert.NoError(t, err)
	i, err := domain.NewInterval(s, e)
	assert.NoError(t, err)
	return i
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, int32(4500), Percentage(30000, 15))
	assert.Equal(t, int32(0), Percentage(30000, 0))
	// Half a cent rounds away from zero.
	assert.Equal(t, int32(23), Percentage(150, 15)) // 22.5
	assert.Equal(t, int32(-23), Percentage(-150, 15))
}

func TestQuoteBooking(t *testing.T) {
	// 10 days at $30.00/day.
	period := interval(t, "2026-06-01", "2026-06-11")

	t.Run("DirectBooking", func(t *testing.T) {
		q := QuoteBooking(period, 3000, 0, 0)
		assert.Equal(t, int32(10), q.Days)
		assert.Equal(t, int32(30000), q.SubtotalCents)
		assert.Equal(t, int32(0), q.CommissionCents)
		assert.Equal(t, int32(0), q.UpchargeCents)
		assert.Equal(t, int32(30000), q.TotalCostCents)
	})

	t.Run("ResellerWithUpcharge", func(t *testing.T) {
		// 15% commission on the subtotal, 10% customer-facing upcharge.
		q := QuoteBooking(period, 3000, 15, 10)
		assert.Equal(t, int32(30000), q.SubtotalCents)
		assert.Equal(t, int32(4500), q.CommissionCents)
		assert.Equal(t, int32(3000), q.UpchargeCents)
		assert.Equal(t, int32(33000), q.TotalCostCents)
		// Commission is carved out of the subtotal, never added to the
		// customer price.
		assert.Equal(t, q.SubtotalCents+q.UpchargeCents, q.TotalCostCents)
	})

	t.Run("CommissionWithoutUpcharge", func(t *testing.T) {
		q := QuoteBooking(period, 3000, 15, 0)
		assert.Equal(t, int32(4500), q.CommissionCents)
		assert.Equal(t, int32(30000), q.TotalCostCents)
	})

	t.Run("Deterministic", func(t *testing.T) {
		// Requoting the same inputs must reproduce identical figures.
		a := QuoteBooking(period, 3333, 12.5, 7.5)
		b := QuoteBooking(period, 3333, 12.5, 7.5)
		assert.Equal(t, a, b)
	})
}

func TestApplyQuote(t *testing.T) {
	period := interval(t, "2026-06-01", "2026-06-06")
	b := &domain.Booking{}
	ApplyQuote(b, QuoteBooking(period, 2000, 10, 5))

	assert.Equal(t, int32(2000), b.DailyRateCents)
	assert.Equal(t, int32(10000), b.SubtotalCents)
	assert.Equal(t, 5.0, b.UpchargePercentage)
	assert.Equal(t, int32(500), b.UpchargeCents)
	assert.Equal(t, 10.0, b.CommissionRate)
	assert.Equal(t, int32(1000), b.CommissionCents)
	assert.Equal(t, int32(10500), b.TotalCostCents)
}
