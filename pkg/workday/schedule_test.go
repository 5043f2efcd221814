package workday

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func minutes(n int64) decimal.Decimal {
	return decimal.NewFromInt(n * int64(time.Minute))
}

func testSchedule(t *testing.T) *Schedule {
	t.Helper()

	s, err := NewSchedule(
		TimeOfDay{Hour: 8},
		TimeOfDay{Hour: 16},
		[]time.Time{at(2004, time.May, 27, 0, 0)},
		[]RecurringHoliday{{Month: time.May, Day: 17}, {Month: time.February, Day: 29}},
	)
	if err != nil {
		t.Fatalf("NewSchedule() error = %v", err)
	}
	return s
}

func TestSchedule_IsWorkingDay(t *testing.T) {
	s := testSchedule(t)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Monday", at(2004, time.May, 24, 12, 0), true},
		{"Saturday", at(2004, time.May, 22, 12, 0), false},
		{"Sunday", at(2004, time.May, 23, 12, 0), false},
		{"Recurring holiday", at(2004, time.May, 17, 9, 0), false},
		{"Recurring holiday next year", at(2005, time.May, 17, 9, 0), false},
		{"Exact holiday with time of day", at(2004, time.May, 27, 23, 59), false},
		{"Exact holiday does not recur", at(2005, time.May, 27, 9, 0), true},
		{"February 29 in leap year", at(2008, time.February, 29, 9, 0), false},
		{"February 28 in leap year", at(2008, time.February, 28, 9, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsWorkingDay(tt.date); got != tt.want {
				t.Errorf("IsWorkingDay(%v) = %v, want %v",
					tt.date.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestSchedule_IsWithinWorkingHours(t *testing.T) {
	s := testSchedule(t)
	day := at(2004, time.May, 24, 0, 0)

	tests := []struct {
		name         string
		time         time.Time
		wantForward  bool
		wantBackward bool
	}{
		{"At start", day.Add(8 * time.Hour), true, false},
		{"At stop", day.Add(16 * time.Hour), false, true},
		{"Midday", day.Add(12 * time.Hour), true, true},
		{"Just after start", day.Add(8*time.Hour + time.Nanosecond), true, true},
		{"Just before stop", day.Add(16*time.Hour - time.Nanosecond), true, true},
		{"Before start", day.Add(7*time.Hour + 59*time.Minute), false, false},
		{"After stop", day.Add(16*time.Hour + time.Minute), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsWithinWorkingHours(tt.time, Forward); got != tt.wantForward {
				t.Errorf("IsWithinWorkingHours(%v, forward) = %v, want %v", tt.time, got, tt.wantForward)
			}
			if got := s.IsWithinWorkingHours(tt.time, Backward); got != tt.wantBackward {
				t.Errorf("IsWithinWorkingHours(%v, backward) = %v, want %v", tt.time, got, tt.wantBackward)
			}
		})
	}
}

func TestSchedule_MoveToWorkingDay(t *testing.T) {
	s := testSchedule(t)

	tests := []struct {
		name  string
		input time.Time
		dir   Direction
		want  time.Time
	}{
		{"Forward before start", at(2004, time.May, 24, 4, 0), Forward, at(2004, time.May, 24, 8, 0)},
		{"Forward after stop", at(2004, time.May, 24, 18, 5), Forward, at(2004, time.May, 25, 8, 0)},
		{"Forward at stop", at(2004, time.May, 24, 16, 0), Forward, at(2004, time.May, 25, 8, 0)},
		{"Forward over weekend", at(2004, time.May, 21, 17, 0), Forward, at(2004, time.May, 24, 8, 0)},
		{"Forward skips weekend and holiday", at(2004, time.May, 16, 11, 0), Forward, at(2004, time.May, 18, 8, 0)},
		{"Forward inside window", at(2004, time.May, 26, 12, 0), Forward, at(2004, time.May, 26, 12, 0)},
		{"Backward after stop", at(2004, time.May, 24, 18, 5), Backward, at(2004, time.May, 24, 16, 0)},
		{"Backward at start", at(2004, time.May, 24, 8, 0), Backward, at(2004, time.May, 21, 16, 0)},
		{"Backward before start", at(2004, time.May, 24, 4, 0), Backward, at(2004, time.May, 21, 16, 0)},
		{"Backward skips holiday and weekend", at(2004, time.May, 18, 7, 0), Backward, at(2004, time.May, 14, 16, 0)},
		{"Backward inside window", at(2004, time.May, 26, 12, 0), Backward, at(2004, time.May, 26, 12, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.MoveToWorkingDay(tt.input, tt.dir)
			if !got.Equal(tt.want) {
				t.Errorf("MoveToWorkingDay(%v, %v) = %v, want %v", tt.input, tt.dir, got, tt.want)
			}
		})
	}
}

func TestSchedule_ProcessIncrement(t *testing.T) {
	s := testSchedule(t)

	tests := []struct {
		name          string
		cursor        Cursor
		dir           Direction
		wantAt        time.Time
		wantRemaining decimal.Decimal
	}{
		{
			name:          "Forward exhausts window",
			cursor:        Cursor{At: at(2004, time.May, 24, 15, 7), Remaining: minutes(120)},
			dir:           Forward,
			wantAt:        at(2004, time.May, 24, 16, 0).Add(time.Nanosecond),
			wantRemaining: minutes(67),
		},
		{
			name:          "Forward fits in window",
			cursor:        Cursor{At: at(2004, time.May, 25, 8, 0), Remaining: minutes(67)},
			dir:           Forward,
			wantAt:        at(2004, time.May, 25, 9, 7),
			wantRemaining: decimal.Zero,
		},
		{
			name:          "Forward fills window exactly",
			cursor:        Cursor{At: at(2004, time.May, 25, 8, 0), Remaining: minutes(480)},
			dir:           Forward,
			wantAt:        at(2004, time.May, 25, 16, 0),
			wantRemaining: decimal.Zero,
		},
		{
			name:          "Backward fills window exactly",
			cursor:        Cursor{At: at(2004, time.May, 24, 16, 0), Remaining: minutes(-480)},
			dir:           Backward,
			wantAt:        at(2004, time.May, 24, 8, 0),
			wantRemaining: decimal.Zero,
		},
		{
			name:          "Backward exhausts window",
			cursor:        Cursor{At: at(2004, time.May, 24, 16, 0), Remaining: minutes(-600)},
			dir:           Backward,
			wantAt:        at(2004, time.May, 24, 8, 0).Add(-time.Nanosecond),
			wantRemaining: minutes(-120),
		},
		{
			name:          "Fractional minutes",
			cursor:        Cursor{At: at(2004, time.May, 25, 8, 0), Remaining: decimal.RequireFromString("90000000000.5")},
			dir:           Forward,
			wantAt:        at(2004, time.May, 25, 8, 1).Add(30 * time.Second),
			wantRemaining: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ProcessIncrement(tt.cursor, tt.dir)
			if !got.At.Equal(tt.wantAt) {
				t.Errorf("ProcessIncrement() At = %v, want %v", got.At, tt.wantAt)
			}
			if !got.Remaining.Equal(tt.wantRemaining) {
				t.Errorf("ProcessIncrement() Remaining = %v, want %v", got.Remaining, tt.wantRemaining)
			}
		})
	}
}

func TestRoundToMinute(t *testing.T) {
	base := at(2004, time.May, 13, 10, 1)

	tests := []struct {
		name  string
		input time.Time
		dir   Direction
		want  time.Time
	}{
		{"Forward truncates", base.Add(59*time.Second + 999), Forward, base},
		{"Backward rounds up", base.Add(time.Nanosecond), Backward, base.Add(time.Minute)},
		{"Forward whole minute", base, Forward, base},
		{"Backward whole minute", base, Backward, base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundToMinute(tt.input, tt.dir); !got.Equal(tt.want) {
				t.Errorf("RoundToMinute(%v, %v) = %v, want %v", tt.input, tt.dir, got, tt.want)
			}
		})
	}
}

func TestNewCursor(t *testing.T) {
	c := NewCursor(at(2004, time.May, 24, 18, 3), 8*time.Hour, decimal.RequireFromString("-6.7470217"))

	want := decimal.RequireFromString("-3238.570416")
	if !c.RemainingMinutes().Equal(want) {
		t.Errorf("RemainingMinutes() = %v, want %v", c.RemainingMinutes(), want)
	}
	if c.Done() {
		t.Error("Done() = true, want false")
	}
}

func TestNewSchedule_Invalid(t *testing.T) {
	_, err := NewSchedule(TimeOfDay{Hour: 8}, TimeOfDay{Hour: 16}, nil,
		[]RecurringHoliday{{Month: time.April, Day: 31}})
	if err == nil {
		t.Fatal("NewSchedule() expected error for April 31, got nil")
	}

	_, err = NewSchedule(TimeOfDay{Hour: 16}, TimeOfDay{Hour: 8}, nil, nil)
	if err == nil {
		t.Fatal("NewSchedule() expected error for reversed window, got nil")
	}
}
