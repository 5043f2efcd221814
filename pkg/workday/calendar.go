package workday

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/username/workday-calendar/pkg/dateutil"
)

// ErrInvalidConfiguration is returned for out-of-range or missing calendar settings
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Calendar computes workday increments against a configurable schedule.
//
// Configure it fully before calling GetWorkdayIncrement; a Calendar must not
// be mutated while a computation is in flight.
type Calendar struct {
	start     TimeOfDay
	stop      TimeOfDay
	windowSet bool
	holidays  map[string]time.Time
	recurring map[RecurringHoliday]struct{}
	logger    *zap.Logger
}

// NewCalendar creates an empty calendar. A nil logger disables logging.
func NewCalendar(logger *zap.Logger) *Calendar {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Calendar{
		holidays:  make(map[string]time.Time),
		recurring: make(map[RecurringHoliday]struct{}),
		logger:    logger,
	}
}

// SetHoliday marks the calendar day of date as a holiday
func (c *Calendar) SetHoliday(date time.Time) {
	c.holidays[dateutil.DateKey(date)] = dateutil.StartOfDay(date)
}

// SetRecurringHoliday marks month/day as a holiday in every year.
// February 29 is accepted and only matches in leap years.
func (c *Calendar) SetRecurringHoliday(month, day int) error {
	r := RecurringHoliday{Month: time.Month(month), Day: day}
	if err := ValidateRecurring(r); err != nil {
		return err
	}

	c.recurring[r] = struct{}{}
	return nil
}

// SetWorkdayStartAndStop sets the daily working window
func (c *Calendar) SetWorkdayStartAndStop(startHours, startMinutes, stopHours, stopMinutes int) error {
	start := TimeOfDay{Hour: startHours, Minute: startMinutes}
	stop := TimeOfDay{Hour: stopHours, Minute: stopMinutes}
	if err := ValidateWindow(start, stop); err != nil {
		return err
	}

	c.start, c.stop, c.windowSet = start, stop, true
	return nil
}

// Holidays returns the exact-date holidays in chronological order
func (c *Calendar) Holidays() []time.Time {
	dates := make([]time.Time, 0, len(c.holidays))
	for _, d := range c.holidays {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// RecurringHolidays returns the recurring holidays ordered by month and day
func (c *Calendar) RecurringHolidays() []RecurringHoliday {
	out := make([]RecurringHoliday, 0, len(c.recurring))
	for r := range c.recurring {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// Schedule returns an immutable snapshot of the current configuration
func (c *Calendar) Schedule() (*Schedule, error) {
	if !c.windowSet {
		return nil, fmt.Errorf("%w: workday start and stop are not set", ErrInvalidConfiguration)
	}
	return NewSchedule(c.start, c.stop, c.Holidays(), c.RecurringHolidays())
}

// GetWorkdayIncrement adds increment working windows to start. A fractional
// part is a fraction of one window; a negative increment moves backward.
// The result is rounded to whole minutes, down when moving forward and up
// when moving backward. A zero increment returns start unchanged.
func (c *Calendar) GetWorkdayIncrement(start time.Time, increment decimal.Decimal) (time.Time, error) {
	schedule, err := c.Schedule()
	if err != nil {
		return time.Time{}, err
	}

	if increment.IsZero() {
		return start, nil
	}

	dir := Forward
	if increment.IsNegative() {
		dir = Backward
	}

	cursor := NewCursor(start, schedule.WindowLength(), increment)
	c.logger.Debug("Starting workday increment",
		zap.Time("start", start),
		zap.String("increment", increment.String()),
		zap.Stringer("direction", dir),
		zap.String("budget_minutes", cursor.RemainingMinutes().String()))

	for !cursor.Done() {
		cursor.At = schedule.MoveToWorkingDay(cursor.At, dir)
		cursor = schedule.ProcessIncrement(cursor, dir)

		c.logger.Debug("Window consumed",
			zap.Time("cursor", cursor.At),
			zap.String("remaining_minutes", cursor.RemainingMinutes().StringFixed(4)))
	}

	return RoundToMinute(cursor.At, dir), nil
}

// GetWorkdayIncrementFloat is GetWorkdayIncrement for a float64 increment
func (c *Calendar) GetWorkdayIncrementFloat(start time.Time, increment float64) (time.Time, error) {
	return c.GetWorkdayIncrement(start, decimal.NewFromFloat(increment))
}
