package holidays

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/workday-calendar/pkg/dateutil"
	"github.com/username/workday-calendar/pkg/workday"
)

// EntryType is the kind of a holiday file entry
type EntryType int

const (
	EntryHoliday EntryType = iota + 1
	EntryRecurring
)

// Entry is one parsed line of a holiday file
type Entry struct {
	Type  EntryType
	Date  time.Time // EntryHoliday only
	Month time.Month
	Day   int
	Note  string
}

// FileSource reads holidays from a local text file
type FileSource struct {
	filePath string
	logger   *zap.Logger
	entries  []Entry
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
	}
}

// Name returns the file path
func (fs *FileSource) Name() string {
	return fs.filePath
}

// Entries returns the entries read by Load
func (fs *FileSource) Entries() []Entry {
	return fs.entries
}

// Load loads holiday entries from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	fs.entries = nil
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD holiday [note] or [--]MM-DD recurring [note]
		// Example: 2004-05-27 holiday Company day
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fs.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		note := ""
		if len(parts) == 3 {
			note = strings.TrimSpace(parts[2])
		}

		switch parts[1] {
		case "holiday":
			date, err := time.Parse(dateutil.KeyLayout, parts[0])
			if err != nil {
				fs.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
				continue
			}
			fs.entries = append(fs.entries, Entry{
				Type:  EntryHoliday,
				Date:  date,
				Month: date.Month(),
				Day:   date.Day(),
				Note:  note,
			})

		case "recurring":
			month, day, err := ParseMonthDay(parts[0])
			if err != nil {
				fs.logger.Warn("Failed to parse month/day", zap.String("date", parts[0]), zap.Error(err))
				continue
			}
			fs.entries = append(fs.entries, Entry{
				Type:  EntryRecurring,
				Month: month,
				Day:   day,
				Note:  note,
			})

		default:
			fs.logger.Warn("Unknown entry type", zap.String("type", parts[1]))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("entries", len(fs.entries)))

	return nil
}

// Apply registers the loaded entries on cal
func (fs *FileSource) Apply(cal *workday.Calendar) error {
	for _, e := range fs.entries {
		switch e.Type {
		case EntryHoliday:
			cal.SetHoliday(e.Date)
		case EntryRecurring:
			if err := cal.SetRecurringHoliday(int(e.Month), e.Day); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseMonthDay parses a recurring holiday written as MM-DD, optionally with
// the ISO 8601 "--" prefix (--MM-DD). The range is not checked here.
func ParseMonthDay(s string) (time.Month, int, error) {
	md := strings.TrimPrefix(s, "--")

	var month, day int
	if _, err := fmt.Sscanf(md, "%d-%d", &month, &day); err != nil {
		return 0, 0, fmt.Errorf("invalid month/day %q: %w", s, err)
	}
	if fmt.Sprintf("%02d-%02d", month, day) != md {
		return 0, 0, fmt.Errorf("invalid month/day %q: want MM-DD or --MM-DD", s)
	}
	return time.Month(month), day, nil
}
