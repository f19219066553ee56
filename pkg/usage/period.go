package usage

import (
	"fmt"
	"time"
)

// Config controls which time zone governs the calendar-month usage period.
// The zone is explicit configuration rather than an assumption: billing
// disputes hinge on where the month boundary falls.
type Config struct {
	Timezone string `env:"USAGE_TIMEZONE" envDefault:"UTC"` // IANA zone name governing period boundaries.
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid usage timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Period returns the first and last instant of the calendar month containing
// now, in the given location. The window is derived on every read and never
// stored, so counters conceptually reset the moment a query crosses a month
// boundary.
func Period(now time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
