package workday

import (
	"fmt"
	"time"

	"github.com/username/workday-calendar/pkg/dateutil"
)

// TimeOfDay is a minute-precision offset within a day
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Duration returns the offset from midnight
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

// On places the time of day on the calendar day of date
func (t TimeOfDay) On(date time.Time) time.Time {
	return dateutil.AddDays(date, 0, t.Hour, t.Minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// RecurringHoliday is a month/day pair that is a holiday in every year
type RecurringHoliday struct {
	Month time.Month
	Day   int
}

func (r RecurringHoliday) String() string {
	return fmt.Sprintf("%02d-%02d", int(r.Month), r.Day)
}

// Direction is the direction the cursor travels in
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// dayStep is the number of calendar days one skip moves the cursor
func (d Direction) dayStep() int {
	if d == Backward {
		return -1
	}
	return 1
}

// signed orients a non-negative duration along the direction of travel
func (d Direction) signed(v time.Duration) time.Duration {
	if d == Backward {
		return -v
	}
	return v
}

// Schedule is an immutable working-hours window plus holiday sets.
// Build it with NewSchedule or Calendar.Schedule.
type Schedule struct {
	start     TimeOfDay
	stop      TimeOfDay
	holidays  map[string]struct{}
	recurring map[RecurringHoliday]struct{}
}

// NewSchedule validates the window and copies the holiday sets
func NewSchedule(start, stop TimeOfDay, holidays []time.Time, recurring []RecurringHoliday) (*Schedule, error) {
	if err := ValidateWindow(start, stop); err != nil {
		return nil, err
	}

	s := &Schedule{
		start:     start,
		stop:      stop,
		holidays:  make(map[string]struct{}, len(holidays)),
		recurring: make(map[RecurringHoliday]struct{}, len(recurring)),
	}
	for _, h := range holidays {
		s.holidays[dateutil.DateKey(h)] = struct{}{}
	}
	for _, r := range recurring {
		if err := ValidateRecurring(r); err != nil {
			return nil, err
		}
		s.recurring[r] = struct{}{}
	}
	return s, nil
}

// Start returns the beginning of the working window
func (s *Schedule) Start() TimeOfDay { return s.start }

// Stop returns the end of the working window
func (s *Schedule) Stop() TimeOfDay { return s.stop }

// WindowLength returns the length of one working window
func (s *Schedule) WindowLength() time.Duration {
	return s.stop.Duration() - s.start.Duration()
}

// IsWorkingDay reports whether date is neither a weekend day, an exact-date
// holiday nor a recurring holiday. The time of day is ignored.
func (s *Schedule) IsWorkingDay(date time.Time) bool {
	if dateutil.IsWeekend(date) {
		return false
	}
	if _, ok := s.holidays[dateutil.DateKey(date)]; ok {
		return false
	}
	_, ok := s.recurring[RecurringHoliday{Month: date.Month(), Day: date.Day()}]
	return !ok
}

// IsWithinWorkingHours reports whether the time of day of t lies in the
// window. Forward uses [start, stop), Backward uses (start, stop], so an
// instant on the edge the cursor is about to cross counts as outside.
func (s *Schedule) IsWithinWorkingHours(t time.Time, dir Direction) bool {
	tod := dateutil.TimeOfDay(t)
	if dir == Backward {
		return tod > s.start.Duration() && tod <= s.stop.Duration()
	}
	return tod >= s.start.Duration() && tod < s.stop.Duration()
}

// entryEdge is where the cursor lands when it enters a new day
func (s *Schedule) entryEdge(dir Direction) TimeOfDay {
	if dir == Backward {
		return s.stop
	}
	return s.start
}

// ValidateWindow reports whether start-stop is a usable daily working window.
// Errors wrap ErrInvalidConfiguration.
func ValidateWindow(start, stop TimeOfDay) error {
	if start.Hour < 0 || start.Hour > 23 || stop.Hour < 0 || stop.Hour > 23 {
		return fmt.Errorf("%w: hours must be between 0 and 23, got start %d stop %d",
			ErrInvalidConfiguration, start.Hour, stop.Hour)
	}
	if !start.valid() || !stop.valid() {
		return fmt.Errorf("%w: minutes must be between 0 and 59, got start %d stop %d",
			ErrInvalidConfiguration, start.Minute, stop.Minute)
	}
	if start.Duration() >= stop.Duration() {
		return fmt.Errorf("%w: workday start %s must be before stop %s",
			ErrInvalidConfiguration, start, stop)
	}
	return nil
}

// ValidateRecurring reports whether r names a month/day that exists in some
// year. Errors wrap ErrInvalidConfiguration.
func ValidateRecurring(r RecurringHoliday) error {
	if r.Month < time.January || r.Month > time.December {
		return fmt.Errorf("%w: recurring holiday month must be between 1 and 12, got %d",
			ErrInvalidConfiguration, int(r.Month))
	}
	if maxDay := dateutil.MaxDaysInMonth(r.Month); r.Day < 1 || r.Day > maxDay {
		return fmt.Errorf("%w: recurring holiday day must be between 1 and %d for %s, got %d",
			ErrInvalidConfiguration, maxDay, r.Month, r.Day)
	}
	return nil
}
