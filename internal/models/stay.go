package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

var (
	ErrBadDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrCheckOutOrder = errors.New("check-out must be after check-in")
)

// Stay is a half-open [CheckIn, CheckOut) date range. Both bounds are calendar
// days at UTC midnight; a valid stay spans at least one night.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseStay parses and validates a pair of ISO dates. The ordering check
// implies nights >= 1, so zero-night requests are rejected here.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := time.ParseInLocation(DateLayout, checkIn, time.UTC)
	if err != nil {
		return Stay{}, fmt.Errorf("%w: %q", ErrBadDate, checkIn)
	}
	out, err := time.ParseInLocation(DateLayout, checkOut, time.UTC)
	if err != nil {
		return Stay{}, fmt.Errorf("%w: %q", ErrBadDate, checkOut)
	}
	s := Stay{CheckIn: in, CheckOut: out}
	if !out.After(in) {
		return Stay{}, ErrCheckOutOrder
	}
	return s, nil
}

// Nights is the number of whole days between check-in and check-out.
func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open stays share at least one night.
// A check-out on day D and a check-in on day D do not overlap, so
// back-to-back turnover is legal.
func (s Stay) Overlaps(other Stay) bool {
	return Overlaps(s.CheckIn, s.CheckOut, other.CheckIn, other.CheckOut)
}

// Overlaps is the half-open interval predicate used everywhere availability is
// decided, in Go and mirrored in SQL. Kept as an explicit comparison so the
// semantics are testable outside storage.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
