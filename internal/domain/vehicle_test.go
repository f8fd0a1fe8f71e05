package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicle_Bookable(t *testing.T) {
	tests := []struct {
		name         string
		offeringType OfferingType
		isAvailable  bool
		want         bool
	}{
		{"RentalAvailable", OfferingTypeRental, true, true},
		{"BothAvailable", OfferingTypeBoth, true, true},
		{"SaleOnly", OfferingTypeSale, true, false},
		{"RentalUnavailable", OfferingTypeRental, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Vehicle{OfferingType: tt.offeringType, IsAvailable: tt.isAvailable}
			assert.Equal(t, tt.want, v.Bookable())
		})
	}
}

func TestVehicle_Sellable(t *testing.T) {
	assert.True(t, (&Vehicle{OfferingType: OfferingTypeSale, IsAvailable: true}).Sellable())
	assert.True(t, (&Vehicle{OfferingType: OfferingTypeBoth, IsAvailable: true}).Sellable())
	assert.False(t, (&Vehicle{OfferingType: OfferingTypeRental, IsAvailable: true}).Sellable())
	assert.False(t, (&Vehicle{OfferingType: OfferingTypeSale, IsAvailable: false}).Sellable())
}

func TestVehicle_HasConflict(t *testing.T) {
	v := &Vehicle{
		ID:          1,
		IsAvailable: true,
		Reservations: []Reservation{
			{BookingID: 10, Period: Interval{Start: date("2026-06-10"), End: date("2026-06-20")}},
			{BookingID: 11, Period: Interval{Start: date("2026-07-01"), End: date("2026-07-05")}},
		},
	}

	t.Run("OverlapDetected", func(t *testing.T) {
		assert.True(t, v.HasConflict(Interval{Start: date("2026-06-15"), End: date("2026-06-25")}, 0))
	})

	t.Run("TouchingEndpointConflicts", func(t *testing.T) {
		assert.True(t, v.HasConflict(Interval{Start: date("2026-06-20"), End: date("2026-06-25")}, 0))
	})

	t.Run("GapIsFree", func(t *testing.T) {
		assert.False(t, v.HasConflict(Interval{Start: date("2026-06-21"), End: date("2026-06-30")}, 0))
	})

	t.Run("OwnEntryExcluded", func(t *testing.T) {
		// Shifting booking 10 within its own window must not self-conflict.
		assert.False(t, v.HasConflict(Interval{Start: date("2026-06-12"), End: date("2026-06-22")}, 10))
		// But it still conflicts with the other booking.
		assert.True(t, v.HasConflict(Interval{Start: date("2026-06-25"), End: date("2026-07-02")}, 10))
	})
}
