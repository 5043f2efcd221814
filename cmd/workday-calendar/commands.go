package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/workday-calendar/pkg/dateutil"
)

func incrementCmd() *cobra.Command {
	var startStr string
	var incrementStr string

	cmd := &cobra.Command{
		Use:   "increment",
		Short: "Add a signed, fractional number of workdays to a timestamp",
		Example: `  workday-calendar increment --start "24-05-2004 18:03" --increment -6.7470217
  workday-calendar increment -c config.yaml --start 2004-05-24T19:03:00 --increment 44.723656`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(startStr)
			if err != nil {
				return fmt.Errorf("invalid start: %w", err)
			}
			increment, err := decimal.NewFromString(incrementStr)
			if err != nil {
				return fmt.Errorf("invalid increment %q: %w", incrementStr, err)
			}

			cfg, err := loadCalendarConfig()
			if err != nil {
				return err
			}
			cal, err := cfg.BuildCalendar(logger)
			if err != nil {
				return fmt.Errorf("failed to build calendar: %w", err)
			}

			result, err := cal.GetWorkdayIncrement(start, increment)
			if err != nil {
				return fmt.Errorf("failed to compute increment: %w", err)
			}

			logger.Info("Workday increment computed",
				zap.Time("start", start),
				zap.String("increment", increment.String()),
				zap.Time("result", result))

			fmt.Fprintln(out, formatIncrement(start, increment, result))
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Start timestamp (dd-MM-yyyy HH:mm or YYYY-MM-DD[THH:MM:SS])")
	cmd.Flags().StringVar(&incrementStr, "increment", "", "Signed decimal number of workdays")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("increment")

	return cmd
}

func checkCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show whether a day is a working day",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			cfg, err := loadCalendarConfig()
			if err != nil {
				return err
			}
			cal, err := cfg.BuildCalendar(logger)
			if err != nil {
				return fmt.Errorf("failed to build calendar: %w", err)
			}
			schedule, err := cal.Schedule()
			if err != nil {
				return err
			}

			status := "non-working day"
			if schedule.IsWorkingDay(date) {
				status = fmt.Sprintf("working day, %s-%s", schedule.Start(), schedule.Stop())
			}
			fmt.Fprintf(out, "%s is a %s\n", date.Format("02-01-2006 Mon"), status)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Day to check (dd-MM-yyyy or YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// formatIncrement renders "<start> with an addition of <increment> work days is <result>"
func formatIncrement(start time.Time, increment decimal.Decimal, result time.Time) string {
	return fmt.Sprintf("%s with an addition of %s work days is %s",
		start.Format(dateutil.DisplayLayout),
		increment.String(),
		result.Format(dateutil.DisplayLayout))
}
