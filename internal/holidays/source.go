package holidays

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/username/workday-calendar/pkg/workday"
)

// Source supplies holidays to a workday calendar
type Source interface {
	// Apply registers the source's holidays on cal
	Apply(cal *workday.Calendar) error

	// Name identifies the source in logs and errors
	Name() string
}

// CompositeSource applies several sources in order
type CompositeSource struct {
	sources []Source
	logger  *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(logger *zap.Logger, sources ...Source) *CompositeSource {
	return &CompositeSource{
		sources: sources,
		logger:  logger,
	}
}

// Name returns the composite's name
func (cs *CompositeSource) Name() string {
	return "composite"
}

// Apply applies every source, stopping at the first failure
func (cs *CompositeSource) Apply(cal *workday.Calendar) error {
	for _, src := range cs.sources {
		before := len(cal.Holidays()) + len(cal.RecurringHolidays())
		if err := src.Apply(cal); err != nil {
			return fmt.Errorf("failed to apply holiday source %s: %w", src.Name(), err)
		}

		cs.logger.Debug("Holiday source applied",
			zap.String("source", src.Name()),
			zap.Int("added", len(cal.Holidays())+len(cal.RecurringHolidays())-before))
	}
	return nil
}
