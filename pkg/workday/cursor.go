package workday

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/workday-calendar/pkg/dateutil"
)

// tick is the nudge applied past an exhausted window edge
const tick = time.Nanosecond

var nanosPerMinute = decimal.NewFromInt(int64(time.Minute))

// Cursor is the in-progress state of an increment computation
type Cursor struct {
	At time.Time
	// Remaining is the signed budget still to consume, in nanoseconds.
	Remaining decimal.Decimal
}

// NewCursor starts a computation at start with a budget of increment windows
func NewCursor(start time.Time, window time.Duration, increment decimal.Decimal) Cursor {
	return Cursor{
		At:        start,
		Remaining: decimal.NewFromInt(int64(window)).Mul(increment),
	}
}

// Done reports whether the budget is exhausted
func (c Cursor) Done() bool {
	return c.Remaining.IsZero()
}

// RemainingMinutes returns the budget in minutes
func (c Cursor) RemainingMinutes() decimal.Decimal {
	return c.Remaining.Div(nanosPerMinute)
}

// MoveToWorkingDay snaps t to the nearest working instant in the direction
// of travel. An instant outside the window jumps to the closest edge, then
// non-working days are skipped a whole day at a time. Loops forever if no
// working day is ever reached.
func (s *Schedule) MoveToWorkingDay(t time.Time, dir Direction) time.Time {
	if !s.IsWithinWorkingHours(t, dir) {
		t = s.moveToWorkingHoursWindow(t, dir)
	}

	edge := s.entryEdge(dir)
	for !s.IsWorkingDay(t) {
		t = dateutil.AddDays(t, dir.dayStep(), edge.Hour, edge.Minute)
	}
	return t
}

// moveToWorkingHoursWindow expects t outside the window for dir
func (s *Schedule) moveToWorkingHoursWindow(t time.Time, dir Direction) time.Time {
	tod := dateutil.TimeOfDay(t)

	switch dir {
	case Backward:
		if tod > s.stop.Duration() {
			return s.stop.On(t)
		}
		return dateutil.AddDays(t, -1, s.stop.Hour, s.stop.Minute)
	default:
		if tod < s.start.Duration() {
			return s.start.On(t)
		}
		return dateutil.AddDays(t, 1, s.start.Hour, s.start.Minute)
	}
}

// windowRemaining is the time between t and the window edge ahead of it
func (s *Schedule) windowRemaining(t time.Time, dir Direction) time.Duration {
	tod := dateutil.TimeOfDay(t)
	if dir == Backward {
		return tod - s.start.Duration()
	}
	return s.stop.Duration() - tod
}

// ProcessIncrement consumes as much of the budget as the current window
// allows. The cursor must already sit on a working instant. When the window
// is too short the cursor ends one tick past its edge so the next
// normalization leaves the exhausted window.
func (s *Schedule) ProcessIncrement(c Cursor, dir Direction) Cursor {
	available := s.windowRemaining(c.At, dir)
	availableNanos := decimal.NewFromInt(int64(available))

	if availableNanos.GreaterThanOrEqual(c.Remaining.Abs()) {
		// IntPart truncates toward zero, which agrees with the rounding
		// applied to the final result in either direction.
		return Cursor{
			At:        c.At.Add(time.Duration(c.Remaining.IntPart())),
			Remaining: decimal.Zero,
		}
	}

	consumed := dir.signed(available)
	return Cursor{
		At:        c.At.Add(consumed).Add(dir.signed(tick)),
		Remaining: c.Remaining.Sub(decimal.NewFromInt(int64(consumed))),
	}
}

// RoundToMinute drops the sub-minute part of t when moving forward and
// rounds it up to the next whole minute when moving backward.
func RoundToMinute(t time.Time, dir Direction) time.Time {
	fraction := dateutil.SubMinute(t)
	if fraction == 0 {
		return t
	}
	if dir == Backward {
		return t.Add(time.Minute - fraction)
	}
	return t.Add(-fraction)
}
