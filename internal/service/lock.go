package service

import "sync"

// vehicleLocker hands out one mutex per vehicle so the whole
// check-then-commit section of a booking mutation runs exclusively for
// that vehicle. Two concurrent requests for overlapping dates therefore
// never both observe "available"; the second one re-reads the ledger
// after the first committed.
//
// The map keeps one mutex per vehicle ever locked for the life of the
// process; entries are never evicted, so its size is bounded by the
// vehicle table, not by traffic.
type vehicleLocker struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func newVehicleLocker() *vehicleLocker {
	return &vehicleLocker{locks: make(map[int32]*sync.Mutex)}
}

// lock acquires the mutex for vehicleID and returns its unlock func.
func (l *vehicleLocker) lock(vehicleID int32) func() {
	l.mu.Lock()
	m, ok := l.locks[vehicleID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[vehicleID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
