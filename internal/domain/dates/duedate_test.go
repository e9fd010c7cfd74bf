package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/weekplanner/core/internal/domain/dates"
)

func TestClassifyDueDate(t *testing.T) {
	t.Parallel()

	// Mid-afternoon reference instant; classification must ignore the
	// clock time on both sides.
	now := local(2026, time.March, 10, 15, 30)
	due := func(dayOffset int) *time.Time {
		d := dates.EndOfDay(now.AddDate(0, 0, dayOffset))
		return &d
	}

	cases := []struct {
		name     string
		dueDate  *time.Time
		wantDays int
		want     dates.DueDateStatus
		wantMsg  string
	}{
		{"today", due(0), 0, dates.StatusDueSoon, "Vence hoy"},
		{"yesterday", due(-1), -1, dates.StatusOverdue, "Vencida ayer"},
		{"five days overdue", due(-5), -5, dates.StatusOverdue, "Vencida hace 5d"},
		{"tomorrow", due(1), 1, dates.StatusDueSoon, "Vence mañana"},
		{"in two days", due(2), 2, dates.StatusDueSoon, "Vence en 2d"},
		{"window edge", due(3), 3, dates.StatusDueSoon, "Vence en 3d"},
		{"past the window", due(4), 4, dates.StatusOnTime, "Vence en 4d"},
		{"in ten days", due(10), 10, dates.StatusOnTime, "Vence en 10d"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert := assert.New(t)

			info := dates.ClassifyDueDate(tc.dueDate, false, now)
			assert.Equal(tc.want, info.Status)
			assert.Equal(tc.wantDays, info.DaysUntilDue)
			assert.Equal(tc.wantMsg, info.Message)
			assert.NotEmpty(info.Style.Icon)
		})
	}
}

func TestClassifyDueDateNoDueDate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	now := local(2026, time.March, 10, 15, 30)

	info := dates.ClassifyDueDate(nil, false, now)
	assert.Equal(dates.StatusNoDueDate, info.Status)
	assert.Equal(0, info.DaysUntilDue)
	assert.Empty(info.Message)
	assert.Empty(info.Style.Icon)
}

func TestClassifyDueDateCompletedWins(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	now := local(2026, time.March, 10, 15, 30)

	// A completed task has no urgency no matter how overdue it is.
	overdue := dates.EndOfDay(now.AddDate(0, 0, -30))
	info := dates.ClassifyDueDate(&overdue, true, now)
	assert.Equal(dates.StatusNoDueDate, info.Status)
	assert.Empty(info.Message)
}

func TestClassifyDueDateIgnoresClockTime(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// Due at 23:59:59 today, checked one minute before midnight: still
	// "due today", never overdue.
	now := local(2026, time.March, 10, 23, 58)
	due := dates.EndOfDay(now)
	info := dates.ClassifyDueDate(&due, false, now)
	assert.Equal(dates.StatusDueSoon, info.Status)
	assert.Equal("Vence hoy", info.Message)

	// Due date stored at midnight rather than end of day classifies the
	// same way.
	early := dates.StartOfDay(now)
	info = dates.ClassifyDueDate(&early, false, now)
	assert.Equal(0, info.DaysUntilDue)
}

func TestClassifyDueDateDistinctStyleTiers(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	now := local(2026, time.March, 10, 12, 0)
	due := func(dayOffset int) *time.Time {
		d := dates.EndOfDay(now.AddDate(0, 0, dayOffset))
		return &d
	}

	overdue := dates.ClassifyDueDate(due(-2), false, now).Style
	today := dates.ClassifyDueDate(due(0), false, now).Style
	soon := dates.ClassifyDueDate(due(2), false, now).Style
	onTime := dates.ClassifyDueDate(due(9), false, now).Style

	assert.NotEqual(overdue, today)
	assert.NotEqual(today, soon)
	assert.NotEqual(soon, onTime)
}
