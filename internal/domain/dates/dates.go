// Package dates holds the date/time normalization rules shared by the
// planner: the quarter-hour scheduling grid and a local-timezone-preserving
// string form compatible with datetime-local inputs.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuarterHourMinutes is the scheduling grid step.
const QuarterHourMinutes = 15

// DefaultEventDurationMinutes is applied when an event is created
// without an explicit end time.
const DefaultEventDurationMinutes = 30

// RoundToQuarterHour rounds the minutes of t to the nearest multiple of
// 15 (round half up), carrying a full hour forward when minutes round to
// 60. Seconds and sub-second precision are truncated. The location of t
// is preserved.
func RoundToQuarterHour(t time.Time) time.Time {
	minutes := (t.Minute() + QuarterHourMinutes/2) / QuarterHourMinutes * QuarterHourMinutes
	// time.Date normalizes minutes == 60 into the next hour, including
	// day and month carries.
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minutes, 0, 0, t.Location())
}

// FormatLocal renders t as YYYY-MM-DDTHH:MM using its own calendar
// fields. It never converts through UTC, so the rendered wall-clock
// time matches what the user sees regardless of host timezone.
func FormatLocal(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// ParseLocal parses a YYYY-MM-DDTHH:MM string into a time in the local
// zone. The string is split into its integer components and rebuilt
// field by field; feeding the combined string through a layout parser
// could silently interpret it as UTC.
func ParseLocal(s string) (time.Time, error) {
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid datetime %q: missing T separator", s)
	}

	dateFields := strings.Split(datePart, "-")
	if len(dateFields) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", datePart)
	}
	timeFields := strings.Split(timePart, ":")
	if len(timeFields) < 2 {
		return time.Time{}, fmt.Errorf("invalid time %q", timePart)
	}

	nums := make([]int, 0, 5)
	for _, f := range append(dateFields, timeFields[0], timeFields[1]) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid datetime %q: %w", s, err)
		}
		nums = append(nums, n)
	}

	year, month, day, hour, minute := nums[0], nums[1], nums[2], nums[3], nums[4]
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("datetime %q out of range", s)
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), nil
}

// ParseLocalRounded parses a datetime-local string and snaps it to the
// quarter-hour grid.
func ParseLocalRounded(s string) (time.Time, error) {
	t, err := ParseLocal(s)
	if err != nil {
		return time.Time{}, err
	}
	return RoundToQuarterHour(t), nil
}

// ParseDueDate parses a date-only YYYY-MM-DD string into the end of
// that local day (23:59:59). Due dates are date-only semantically; the
// end-of-day time keeps them classifiable against wall-clock instants.
func ParseDueDate(s string) (time.Time, error) {
	fields := strings.Split(s, "-")
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	nums := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		nums[i] = n
	}
	if nums[1] < 1 || nums[1] > 12 || nums[2] < 1 || nums[2] > 31 {
		return time.Time{}, fmt.Errorf("date %q out of range", s)
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 23, 59, 59, 0, time.Local), nil
}

// EndOfDay returns t normalized to 23:59:59 of its own day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// StartOfDay returns t truncated to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday 00:00:00 start and Sunday 23:59:59 end
// of the week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	day := t.Weekday()
	diff := int(day) - int(time.Monday)
	if day == time.Sunday {
		diff = 6
	}
	start := StartOfDay(t.AddDate(0, 0, -diff))
	end := EndOfDay(start.AddDate(0, 0, 6))
	return start, end
}

// ComputeEndTime returns start + durationMinutes, rounded to the
// quarter-hour grid and formatted. An empty start yields an empty
// string, mirroring an untouched form field.
func ComputeEndTime(start string, durationMinutes int) (string, error) {
	if start == "" {
		return "", nil
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultEventDurationMinutes
	}
	t, err := ParseLocal(start)
	if err != nil {
		return "", err
	}
	end := RoundToQuarterHour(t.Add(time.Duration(durationMinutes) * time.Minute))
	return FormatLocal(end), nil
}

// MinSelectableLocal returns now snapped to the quarter-hour grid and
// formatted, the lower bound offered to date pickers. Scheduling in the
// past is refused by policy at the input boundary, not by the data
// model.
func MinSelectableLocal(now time.Time) string {
	return FormatLocal(RoundToQuarterHour(now))
}
