package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodge/internal/domains/reservation/model"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func mustRange(t *testing.T, checkIn, checkOut string) model.DateRange {
	t.Helper()

	r, err := model.NewDateRange(day(checkIn), day(checkOut))
	require.NoError(t, err)

	return r
}

func TestNewDateRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  bool
	}{
		{
			name:     "valid range",
			checkIn:  day("2026-03-10"),
			checkOut: day("2026-03-12"),
			wantErr:  false,
		},
		{
			name:     "single night",
			checkIn:  day("2026-03-10"),
			checkOut: day("2026-03-11"),
			wantErr:  false,
		},
		{
			name:     "equal dates rejected",
			checkIn:  day("2026-03-10"),
			checkOut: day("2026-03-10"),
			wantErr:  true,
		},
		{
			name:     "checkout before checkin rejected",
			checkIn:  day("2026-03-12"),
			checkOut: day("2026-03-10"),
			wantErr:  true,
		},
		{
			name:     "time of day ignored",
			checkIn:  day("2026-03-10").Add(23 * time.Hour),
			checkOut: day("2026-03-11").Add(1 * time.Hour),
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := model.NewDateRange(tt.checkIn, tt.checkOut)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsKind(err, failure.KindInvalidRange))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 0, r.CheckIn.Hour())
			assert.Equal(t, 0, r.CheckOut.Hour())
		})
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{
			name:     "valid strings",
			checkIn:  "2026-03-10",
			checkOut: "2026-03-12",
			wantErr:  false,
		},
		{
			name:     "malformed checkin",
			checkIn:  "10-03-2026",
			checkOut: "2026-03-12",
			wantErr:  true,
		},
		{
			name:     "malformed checkout",
			checkIn:  "2026-03-10",
			checkOut: "not-a-date",
			wantErr:  true,
		},
		{
			name:     "inverted order",
			checkIn:  "2026-03-12",
			checkOut: "2026-03-10",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.ParseDateRange(tt.checkIn, tt.checkOut)

			if tt.wantErr {
				assert.True(t, failure.IsKind(err, failure.KindInvalidRange))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	tests := []struct {
		name  string
		a     [2]string
		b     [2]string
		wants bool
	}{
		{
			name:  "partial overlap",
			a:     [2]string{"2026-03-10", "2026-03-14"},
			b:     [2]string{"2026-03-12", "2026-03-16"},
			wants: true,
		},
		{
			name:  "identical ranges",
			a:     [2]string{"2026-03-10", "2026-03-14"},
			b:     [2]string{"2026-03-10", "2026-03-14"},
			wants: true,
		},
		{
			name:  "contained range",
			a:     [2]string{"2026-03-10", "2026-03-20"},
			b:     [2]string{"2026-03-12", "2026-03-14"},
			wants: true,
		},
		{
			name:  "back to back stays share a day without overlap",
			a:     [2]string{"2026-03-10", "2026-03-12"},
			b:     [2]string{"2026-03-12", "2026-03-14"},
			wants: false,
		},
		{
			name:  "back to back reversed",
			a:     [2]string{"2026-03-12", "2026-03-14"},
			b:     [2]string{"2026-03-10", "2026-03-12"},
			wants: false,
		},
		{
			name:  "disjoint ranges",
			a:     [2]string{"2026-03-10", "2026-03-12"},
			b:     [2]string{"2026-03-20", "2026-03-22"},
			wants: false,
		},
		{
			name:  "single night inside longer stay",
			a:     [2]string{"2026-03-10", "2026-03-11"},
			b:     [2]string{"2026-03-05", "2026-03-20"},
			wants: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustRange(t, tt.a[0], tt.a[1])
			b := mustRange(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.wants, a.Overlaps(b))
			assert.Equal(t, tt.wants, b.Overlaps(a))
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	r := mustRange(t, "2026-03-10", "2026-03-13")

	assert.True(t, r.Contains(day("2026-03-10")))
	assert.True(t, r.Contains(day("2026-03-12")))
	assert.False(t, r.Contains(day("2026-03-13")))
	assert.False(t, r.Contains(day("2026-03-09")))
	assert.True(t, r.Contains(day("2026-03-11").Add(15*time.Hour)))
}

func TestDateRangeLocationNormalization(t *testing.T) {
	jakarta := time.FixedZone("UTC+7", 7*60*60)

	stay := mustRange(t, "2026-03-10", "2026-03-12")

	assert.True(t, stay.Contains(time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta)))
	assert.True(t, stay.Contains(time.Date(2026, 3, 11, 0, 0, 0, 0, jakarta)))
	assert.False(t, stay.Contains(time.Date(2026, 3, 12, 0, 0, 0, 0, jakarta)))
	assert.False(t, stay.Contains(time.Date(2026, 3, 9, 23, 0, 0, 0, jakarta)))

	next, err := model.NewDateRange(
		time.Date(2026, 3, 12, 0, 0, 0, 0, jakarta),
		time.Date(2026, 3, 14, 0, 0, 0, 0, jakarta),
	)
	require.NoError(t, err)

	assert.False(t, stay.Overlaps(next))
	assert.False(t, next.Overlaps(stay))
}

func TestDateRangeContainsAppToday(t *testing.T) {
	today := timezone.Today()

	stay, err := model.ParseDateRange(
		today.Format(constant.DayFormat),
		today.AddDate(0, 0, 2).Format(constant.DayFormat),
	)
	require.NoError(t, err)

	assert.True(t, stay.Contains(timezone.Today()), "a stay starting today must contain today")

	future, err := model.ParseDateRange(
		today.AddDate(0, 0, 1).Format(constant.DayFormat),
		today.AddDate(0, 0, 3).Format(constant.DayFormat),
	)
	require.NoError(t, err)

	assert.False(t, future.Contains(timezone.Today()))
}

func TestDateRangeNights(t *testing.T) {
	assert.Equal(t, 1, mustRange(t, "2026-03-10", "2026-03-11").Nights())
	assert.Equal(t, 4, mustRange(t, "2026-03-10", "2026-03-14").Nights())
}

func TestDateRangeString(t *testing.T) {
	assert.Equal(t, "[2026-03-10, 2026-03-12)", mustRange(t, "2026-03-10", "2026-03-12").String())
}
