package domain

import "time"

// DateFormat is the wire format for all calendar dates.
const DateFormat = "2006-01-02"

// Interval is a closed date range [Start, End]: both endpoints are
// reserved days.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval builds an interval, requiring a strictly later end date.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidRange
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two closed ranges share at least one day.
// Touching endpoints count as overlap: a return day cannot double as the
// next renter's pickup day.
func (i Interval) Overlaps(o Interval) bool {
	return !i.Start.After(o.End) && !i.End.Before(o.Start)
}

// Days returns the number of whole rental days between pickup and return.
func (i Interval) Days() int32 {
	return int32(i.End.Sub(i.Start).Hours() / 24)
}
