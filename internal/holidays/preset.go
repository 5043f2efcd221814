package holidays

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/us"
	"go.uber.org/zap"

	"github.com/username/workday-calendar/pkg/workday"
)

var presets = map[string][]*cal.Holiday{
	"us": us.Holidays,
	"de": de.Holidays,
}

// PresetNames lists the supported country presets
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetSource expands a country's public holidays into exact-date holidays
// for a set of years. Observed dates are used, so a holiday that falls on a
// weekend blocks the weekday it is moved to.
type PresetSource struct {
	name     string
	years    []int
	holidays []*cal.Holiday
	logger   *zap.Logger
}

// NewPresetSource creates a PresetSource for one of PresetNames
func NewPresetSource(name string, years []int, logger *zap.Logger) (*PresetSource, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	hs, ok := presets[key]
	if !ok {
		return nil, fmt.Errorf("unknown holiday preset %q, want one of %v", name, PresetNames())
	}

	return &PresetSource{
		name:     key,
		years:    years,
		holidays: hs,
		logger:   logger,
	}, nil
}

// Name returns the preset name
func (ps *PresetSource) Name() string {
	return "preset:" + ps.name
}

// Apply registers the preset's observed holidays for every configured year
func (ps *PresetSource) Apply(c *workday.Calendar) error {
	for _, year := range ps.years {
		for _, h := range ps.holidays {
			_, observed := h.Calc(year)
			if observed.IsZero() {
				// not celebrated in this year
				continue
			}
			c.SetHoliday(observed)
			ps.logger.Debug("Preset holiday added",
				zap.String("preset", ps.name),
				zap.String("holiday", h.Name),
				zap.Time("date", observed))
		}
	}
	return nil
}
