package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/username/workday-calendar/internal/holidays"
	"github.com/username/workday-calendar/pkg/dateutil"
	"github.com/username/workday-calendar/pkg/workday"
)

// Config represents application configuration
type Config struct {
	Workday  WorkdayConfig  `mapstructure:"workday"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Log      LogConfig      `mapstructure:"log"`
}

// WorkdayConfig represents the daily working window (HH:MM)
type WorkdayConfig struct {
	Start string `mapstructure:"start"`
	Stop  string `mapstructure:"stop"`
}

// HolidaysConfig represents holiday sources
type HolidaysConfig struct {
	Dates       []string `mapstructure:"dates"`     // YYYY-MM-DD
	Recurring   []string `mapstructure:"recurring"` // MM-DD or --MM-DD
	File        string   `mapstructure:"file"`
	Presets     []string `mapstructure:"presets"`
	PresetYears []int    `mapstructure:"preset_years"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the built-in demo configuration: 08:00-16:00, a recurring
// holiday on May 17 and a single holiday on 2004-05-27
func Default() *Config {
	return &Config{
		Workday: WorkdayConfig{Start: "08:00", Stop: "16:00"},
		Holidays: HolidaysConfig{
			Dates:     []string{"2004-05-27"},
			Recurring: []string{"05-17"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load loads configuration from file. An empty path returns Default().
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("WORKDAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Holidays.File = os.ExpandEnv(config.Holidays.File)
	config.Log.File = os.ExpandEnv(config.Log.File)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration. Errors wrap workday.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	start, err := c.Workday.StartTime()
	if err != nil {
		return err
	}
	stop, err := c.Workday.StopTime()
	if err != nil {
		return err
	}
	if err := workday.ValidateWindow(start, stop); err != nil {
		return fmt.Errorf("workday: %w", err)
	}

	for _, d := range c.Holidays.Dates {
		if _, err := time.Parse(dateutil.KeyLayout, d); err != nil {
			return fmt.Errorf("%w: holidays.dates: invalid date %q, want YYYY-MM-DD",
				workday.ErrInvalidConfiguration, d)
		}
	}

	for _, r := range c.Holidays.Recurring {
		month, day, err := holidays.ParseMonthDay(r)
		if err != nil {
			return fmt.Errorf("%w: holidays.recurring: %v", workday.ErrInvalidConfiguration, err)
		}
		if err := workday.ValidateRecurring(workday.RecurringHoliday{Month: month, Day: day}); err != nil {
			return fmt.Errorf("holidays.recurring %q: %w", r, err)
		}
	}

	if len(c.Holidays.Presets) > 0 && len(c.Holidays.PresetYears) == 0 {
		return fmt.Errorf("%w: holidays.preset_years is required when presets are set",
			workday.ErrInvalidConfiguration)
	}

	return nil
}

// StartTime returns the parsed workday start
func (w *WorkdayConfig) StartTime() (workday.TimeOfDay, error) {
	return parseTimeOfDay("workday.start", w.Start)
}

// StopTime returns the parsed workday stop
func (w *WorkdayConfig) StopTime() (workday.TimeOfDay, error) {
	return parseTimeOfDay("workday.stop", w.Stop)
}

func parseTimeOfDay(key, value string) (workday.TimeOfDay, error) {
	if value == "" {
		return workday.TimeOfDay{}, fmt.Errorf("%w: %s is required", workday.ErrInvalidConfiguration, key)
	}

	var h, m int
	_, err := fmt.Sscanf(value, "%d:%d", &h, &m)
	if err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return workday.TimeOfDay{}, fmt.Errorf("%w: %s must be HH:MM between 00:00 and 23:59, got %q",
			workday.ErrInvalidConfiguration, key, value)
	}
	return workday.TimeOfDay{Hour: h, Minute: m}, nil
}

// BuildCalendar creates a calendar with the configured window and every
// configured holiday source applied
func (c *Config) BuildCalendar(logger *zap.Logger) (*workday.Calendar, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start, err := c.Workday.StartTime()
	if err != nil {
		return nil, err
	}
	stop, err := c.Workday.StopTime()
	if err != nil {
		return nil, err
	}

	cal := workday.NewCalendar(logger)
	if err := cal.SetWorkdayStartAndStop(start.Hour, start.Minute, stop.Hour, stop.Minute); err != nil {
		return nil, err
	}

	for _, d := range c.Holidays.Dates {
		date, err := time.Parse(dateutil.KeyLayout, d)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holiday %q: %w", d, err)
		}
		cal.SetHoliday(date)
	}

	for _, r := range c.Holidays.Recurring {
		month, day, err := holidays.ParseMonthDay(r)
		if err != nil {
			return nil, err
		}
		if err := cal.SetRecurringHoliday(int(month), day); err != nil {
			return nil, err
		}
	}

	var sources []holidays.Source
	if c.Holidays.File != "" {
		fs := holidays.NewFileSource(c.Holidays.File, logger)
		if err := fs.Load(); err != nil {
			return nil, err
		}
		sources = append(sources, fs)
	}
	for _, name := range c.Holidays.Presets {
		ps, err := holidays.NewPresetSource(name, c.Holidays.PresetYears, logger)
		if err != nil {
			return nil, err
		}
		sources = append(sources, ps)
	}

	if err := holidays.NewCompositeSource(logger, sources...).Apply(cal); err != nil {
		return nil, err
	}

	logger.Info("Calendar configured",
		zap.Stringer("start", start),
		zap.Stringer("stop", stop),
		zap.Int("holidays", len(cal.Holidays())),
		zap.Int("recurring_holidays", len(cal.RecurringHolidays())))

	return cal, nil
}
