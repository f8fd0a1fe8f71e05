package cache

import "time"

const (
	// Cached vehicle document including its reservation ledger: vehicle:{id}
	KeyVehicle = "vehicle:%d"
)

var (
	// TTLVehicle bounds staleness when an invalidation is lost; every
	// successful booking mutation invalidates explicitly.
	TTLVehicle = 5 * time.Minute
)
