package domain

import (
	"errors"
	"fmt"
	"time"
)

// Canonical timestamp layout. Older data files were written without seconds;
// parsing accepts both but writing always uses the canonical form.
const (
	TimeLayout       = "2006-01-02 15:04:05"
	legacyTimeLayout = "2006-01-02 15:04"
)

// ErrMalformedTimestamp reports a stored timestamp that matches neither the
// canonical nor the legacy layout.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime decodes a stored timestamp, trying the canonical with-seconds
// layout first and the legacy no-seconds layout second.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(legacyTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}

// Rental is a single time-metered rental transaction. It starts active and
// transitions to closed exactly once; the closed cost is frozen and never
// recomputed from wall-clock time.
type Rental struct {
	id        string
	memberID  string
	itemID    string
	policy    PricePolicy
	startTime string
	endTime   string
	active    bool
	totalCost float64
}

func NewRental(id, memberID, itemID string, policy PricePolicy, start time.Time) *Rental {
	return &Rental{
		id:        id,
		memberID:  memberID,
		itemID:    itemID,
		policy:    policy,
		startTime: FormatTime(start),
		active:    true,
	}
}

// RestoreRental rebuilds a rental from a stored record. Only the persistence
// layer uses this.
func RestoreRental(id, memberID, itemID string, policy PricePolicy, startTime, endTime string, active bool, totalCost float64) *Rental {
	return &Rental{
		id:        id,
		memberID:  memberID,
		itemID:    itemID,
		policy:    policy,
		startTime: startTime,
		endTime:   endTime,
		active:    active,
		totalCost: totalCost,
	}
}

func (r *Rental) ID() string          { return r.id }
func (r *Rental) MemberID() string    { return r.memberID }
func (r *Rental) ItemID() string      { return r.itemID }
func (r *Rental) Policy() PricePolicy { return r.policy }
func (r *Rental) StartTime() string   { return r.startTime }
func (r *Rental) EndTime() string     { return r.endTime }
func (r *Rental) Active() bool        { return r.active }
func (r *Rental) TotalCost() float64  { return r.totalCost }

// CostAt computes the taxameter-style cost at the given instant. A closed
// rental returns its frozen total. For an active rental the elapsed seconds
// between start and now are converted to fractional hours and priced through
// the policy. Negative elapsed time is clamped to zero, and a start time
// failing both timestamp layouts degrades to a zero cost instead of
// propagating an error into pricing.
func (r *Rental) CostAt(basePerHour float64, now time.Time) float64 {
	if !r.active && r.totalCost > 0 {
		return r.totalCost
	}

	start, err := ParseTime(r.startTime)
	if err != nil {
		return 0
	}
	end := now
	if !r.active {
		end, err = ParseTime(r.endTime)
		if err != nil {
			return 0
		}
	}

	seconds := end.Sub(start).Seconds()
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600.0

	if r.policy == nil {
		return basePerHour * hours
	}
	return r.policy.Price(basePerHour, hours)
}

// Close ends the rental, freezing the final cost. Closing is one-way; the
// ledger guarantees Close is called at most once per rental.
func (r *Rental) Close(finalCost float64, now time.Time) {
	r.active = false
	r.endTime = FormatTime(now)
	r.totalCost = finalCost
}

// Clone returns a copy, safe to hand out across the ledger boundary.
func (r *Rental) Clone() *Rental {
	c := *r
	return &c
}
