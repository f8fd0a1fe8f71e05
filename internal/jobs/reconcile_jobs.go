package jobs

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/metrics"
)

// ReconcileReservations repairs drift between the bookings table and the
// vehicle reservation ledger. Only pending and confirmed bookings may
// hold a ledger entry; every such booking must hold exactly one.
func (jr *JobRunner) ReconcileReservations() {
	jr.runWithRecovery("ReconcileReservations", func() {
		ctx := context.Background()

		// Drop ledger entries whose booking is gone, cancelled or completed.
		orphanQuery := `
			DELETE FROM vehicle_reservations vr
			WHERE NOT EXISTS (
				SELECT 1 FROM bookings b
				WHERE b.id = vr.booking_id
				  AND b.status IN ('PENDING', 'CONFIRMED')
			)
		`
		res, err := jr.db.ExecContext(ctx, orphanQuery)
		if err != nil {
			logger.Error("Failed to remove orphaned reservations", "error", err)
			return
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			logger.Warn("Removed orphaned reservations", "count", n)
			for i := int64(0); i < n; i++ {
				metrics.IncReconciliationRepair("orphan_removed")
			}
		}

		// Restore entries for active bookings that lost theirs.
		restoreQuery := `
			INSERT INTO vehicle_reservations (vehicle_id, booking_id, start_date, end_date)
			SELECT b.vehicle_id, b.id, b.pickup_date, b.return_date
			FROM bookings b
			WHERE b.status IN ('PENDING', 'CONFIRMED')
			  AND NOT EXISTS (
				SELECT 1 FROM vehicle_reservations vr WHERE vr.booking_id = b.id
			  )
		`
		res, err = jr.db.ExecContext(ctx, restoreQuery)
		if err != nil {
			logger.Error("Failed to restore missing reservations", "error", err)
			return
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			logger.Warn("Restored missing reservations", "count", n)
			for i := int64(0); i < n; i++ {
				metrics.IncReconciliationRepair("missing_restored")
			}
		}
	})
}

// ExpirePendingBookings cancels bookings that are still PENDING after
// their pickup date has passed. Each expiry goes through the booking
// service's cancel path, which releases the ledger entry, reverses any
// reseller commission exactly once and notifies the customer.
func (jr *JobRunner) ExpirePendingBookings() {
	jr.runWithRecovery("ExpirePendingBookings", func() {
		ctx := context.Background()

		rows, err := jr.db.QueryContext(ctx,
			`SELECT id FROM bookings WHERE status = 'PENDING' AND pickup_date < $1`,
			time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to list stale pending bookings", "error", err)
			return
		}

		var ids []int32
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan stale pending booking", "error", err)
				rows.Close()
				return
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			logger.Error("Error iterating stale pending bookings", "error", err)
			return
		}
		rows.Close()

		var expired int
		for _, id := range ids {
			if _, err := jr.services.Booking.CancelBooking(ctx, 0, domain.UserRoleAdmin, id); err != nil {
				logger.Error("Failed to expire pending booking", "booking_id", id, "error", err)
				continue
			}
			metrics.IncReconciliationRepair("pending_expired")
			expired++
		}
		if expired > 0 {
			logger.Info("Expired pending bookings", "count", expired)
		}
	})
}
