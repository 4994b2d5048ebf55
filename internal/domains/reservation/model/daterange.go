package model

import (
	"fmt"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"time"
)

// DateRange is the half-open stay interval [CheckIn, CheckOut) in
// calendar dates. A checkout and a next checkin on the same date do
// not overlap. Both endpoints are normalized to UTC midnight of their
// calendar date, so ranges built from parsed strings, database rows,
// and the app-timezone clock all compare on the calendar date alone.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	checkIn = truncateToDay(checkIn)
	checkOut = truncateToDay(checkOut)

	if !checkOut.After(checkIn) {
		return DateRange{}, failure.InvalidRange(fmt.Sprintf( // nolint:wrapcheck
			"check-out %s must be after check-in %s",
			checkOut.Format(constant.DayFormat),
			checkIn.Format(constant.DayFormat),
		))
	}

	return DateRange{CheckIn: checkIn, CheckOut: checkOut}, nil
}

func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(constant.DayFormat, checkIn)
	if err != nil {
		return DateRange{}, failure.InvalidRange(fmt.Sprintf("invalid check-in date %q", checkIn)) // nolint:wrapcheck
	}

	out, err := time.Parse(constant.DayFormat, checkOut)
	if err != nil {
		return DateRange{}, failure.InvalidRange(fmt.Sprintf("invalid check-out date %q", checkOut)) // nolint:wrapcheck
	}

	return NewDateRange(in, out)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Contains reports whether day falls inside the range. The checkout
// date itself is excluded.
func (r DateRange) Contains(day time.Time) bool {
	day = truncateToDay(day)

	return !day.Before(r.CheckIn) && day.Before(r.CheckOut)
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.CheckIn.Format(constant.DayFormat), r.CheckOut.Format(constant.DayFormat))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
