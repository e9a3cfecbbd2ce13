// Package calendar exports tasks as iCalendar documents.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"task-manager.com/task-manager/internal/constants"
	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
)

const (
	dateLayout  = "20060102"
	stampLayout = "20060102T150405Z"
)

var icsPriority = map[constants.Priority]int{
	constants.PriorityHigh:   1,
	constants.PriorityMedium: 5,
	constants.PriorityLow:    9,
}

// BuildICS renders a dated task as a single all-day event.
func BuildICS(t model.Task, now time.Time) (string, error) {
	if !t.HasDate() {
		return "", apperrors.ErrDueDateRequired
	}

	due := model.CivilDate(t.Date.UTC())
	end := due.AddDate(0, 0, 1)

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Task"
	}

	uid := fmt.Sprintf("task-%s@task-manager", strings.TrimSpace(t.ID))
	if strings.TrimSpace(t.ID) == "" {
		uid = fmt.Sprintf("task-export-%d@task-manager", now.UnixNano())
	}

	status := "NEEDS-ACTION"
	if t.Completed {
		status = "COMPLETED"
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Task Manager//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + escapeText(uid),
		"DTSTAMP:" + now.UTC().Format(stampLayout),
		"SUMMARY:" + escapeText(title),
		"DTSTART;VALUE=DATE:" + due.Format(dateLayout),
		"DTEND;VALUE=DATE:" + end.Format(dateLayout),
		"STATUS:" + status,
	}
	if t.Category != "" {
		lines = append(lines, "CATEGORIES:"+escapeText(strings.ToUpper(string(t.Category))))
	}
	if p, ok := icsPriority[t.Priority]; ok {
		lines = append(lines, fmt.Sprintf("PRIORITY:%d", p))
	}
	if at := t.NotificationAt(); at != nil {
		lines = append(lines,
			"BEGIN:VALARM",
			"ACTION:DISPLAY",
			"DESCRIPTION:"+escapeText(title),
			"TRIGGER;VALUE=DATE-TIME:"+at.UTC().Format(stampLayout),
			"END:VALARM",
		)
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR", "")

	return strings.Join(lines, "\r\n"), nil
}

func escapeText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
