// Package schedule holds the calendar primitives the scheduler and the
// availability search share: a clock pinned to the clinic's fixed UTC
// offset, weekday naming, and the string-comparison predicates valid for
// the zero-padded "YYYY-MM-DD" / "HH:MM" wire formats.
package schedule

import (
	"fmt"
	"time"
)

// Weekday names as stored in a doctor's diasDisponibles set.
var weekdayNames = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock resolves "today" and weekdays under a single fixed UTC offset so
// date logic is deterministic regardless of the host timezone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(utcOffsetHours int) *Clock {
	name := fmt.Sprintf("UTC%+d", utcOffsetHours)
	return &Clock{
		loc: time.FixedZone(name, utcOffsetHours*3600),
		now: time.Now,
	}
}

// NewClockAt returns a clock frozen at the given instant, for tests.
func NewClockAt(utcOffsetHours int, at time.Time) *Clock {
	c := NewClock(utcOffsetHours)
	c.now = func() time.Time { return at }
	return c
}

func (c *Clock) Location() *time.Location { return c.loc }

func (c *Clock) Now() time.Time { return c.now() }

// Today returns the current date in the clinic zone as "YYYY-MM-DD".
func (c *Clock) Today() string {
	return c.now().In(c.loc).Format(DateLayout)
}

// NowTime returns the current time of day in the clinic zone as "HH:MM".
func (c *Clock) NowTime() string {
	return c.now().In(c.loc).Format(TimeLayout)
}

// WeekdayOf maps a "YYYY-MM-DD" date to its Spanish weekday name. The date's
// UTC midnight is evaluated in the clinic zone, which with a negative offset
// lands on the previous civil day; doctor weekday sets are interpreted under
// this same convention everywhere, so the shift cancels out.
func (c *Clock) WeekdayOf(fecha string) (string, error) {
	t, err := time.Parse(DateLayout, fecha)
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", fecha, err)
	}
	return weekdayNames[t.In(c.loc).Weekday()], nil
}

// IsPastDate reports whether fecha is strictly before today in the clinic
// zone. Lexicographic comparison is valid for the fixed-width ISO format.
func (c *Clock) IsPastDate(fecha string) bool {
	return fecha < c.Today()
}

// SlotInstant combines a date and an "HH:MM" time into an instant in the
// clinic zone.
func (c *Clock) SlotInstant(fecha, hora string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, fecha+" "+hora, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing slot %q %q: %w", fecha, hora, err)
	}
	return t, nil
}

// WithinTimeRange reports whether hora falls inside [start, end], all three
// zero-padded "HH:MM" strings.
func WithinTimeRange(hora, start, end string) bool {
	return hora >= start && hora <= end
}

// ValidDate reports whether fecha is a well-formed "YYYY-MM-DD" date.
func ValidDate(fecha string) bool {
	_, err := time.Parse(DateLayout, fecha)
	return err == nil
}

// ValidTime reports whether hora is a well-formed zero-padded "HH:MM" time.
func ValidTime(hora string) bool {
	_, err := time.Parse(TimeLayout, hora)
	return err == nil && len(hora) == len(TimeLayout)
}
