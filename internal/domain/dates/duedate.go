package dates

import (
	"fmt"
	"math"
	"time"
)

// DueDateStatus is the four-way urgency taxonomy for task due dates.
type DueDateStatus string

const (
	StatusOverdue   DueDateStatus = "overdue"
	StatusDueSoon   DueDateStatus = "due_soon"
	StatusOnTime    DueDateStatus = "on_time"
	StatusNoDueDate DueDateStatus = "no_due_date"
)

// DueSoonWindowDays is the lookahead before a due date during which
// urgency escalates to StatusDueSoon.
const DueSoonWindowDays = 3

// Style is a presentation hint attached to each classification tier.
type Style struct {
	Color      string `json:"color"`
	Background string `json:"bgColor"`
	Icon       string `json:"icon"`
}

var (
	styleOverdue = Style{Color: "text-red-700", Background: "bg-red-100", Icon: "⚠️"}
	styleToday   = Style{Color: "text-orange-700", Background: "bg-orange-100", Icon: "🔥"}
	styleDueSoon = Style{Color: "text-yellow-700", Background: "bg-yellow-100", Icon: "⏰"}
	styleOnTime  = Style{Color: "text-blue-700", Background: "bg-blue-100", Icon: "📅"}
)

// DueDateInfo is the result of classifying a task's due date.
type DueDateInfo struct {
	Status       DueDateStatus `json:"status"`
	DaysUntilDue int           `json:"daysUntilDue"`
	Message      string        `json:"message"`
	Style        Style         `json:"style"`
}

// ClassifyDueDate maps a due date and completion flag to an urgency
// category. Completed tasks and tasks without a due date are always
// StatusNoDueDate. The day difference is computed on calendar days:
// both sides are truncated to local midnight first, so a task due today
// yields 0 regardless of the current clock time.
func ClassifyDueDate(dueDate *time.Time, completed bool, now time.Time) DueDateInfo {
	if dueDate == nil || completed {
		return DueDateInfo{Status: StatusNoDueDate}
	}

	today := StartOfDay(now)
	dueDay := StartOfDay(*dueDate)
	days := int(math.Ceil(dueDay.Sub(today).Hours() / 24))

	switch {
	case days < 0:
		msg := fmt.Sprintf("Vencida hace %dd", -days)
		if days == -1 {
			msg = "Vencida ayer"
		}
		return DueDateInfo{Status: StatusOverdue, DaysUntilDue: days, Message: msg, Style: styleOverdue}
	case days == 0:
		return DueDateInfo{Status: StatusDueSoon, DaysUntilDue: 0, Message: "Vence hoy", Style: styleToday}
	case days <= DueSoonWindowDays:
		msg := fmt.Sprintf("Vence en %dd", days)
		if days == 1 {
			msg = "Vence mañana"
		}
		return DueDateInfo{Status: StatusDueSoon, DaysUntilDue: days, Message: msg, Style: styleDueSoon}
	default:
		return DueDateInfo{Status: StatusOnTime, DaysUntilDue: days, Message: fmt.Sprintf("Vence en %dd", days), Style: styleOnTime}
	}
}
