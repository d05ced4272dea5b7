package chat

import (
	"strings"
	"time"
)

// dateLayouts are tried in order for direct parsing. Numeric day/month forms
// are day-first (Spanish locale).
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02/01/06",
	"2/1/06",
}

var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"lunes", time.Monday},
	{"martes", time.Tuesday},
	{"miércoles", time.Wednesday},
	{"miercoles", time.Wednesday},
	{"jueves", time.Thursday},
	{"viernes", time.Friday},
	{"sábado", time.Saturday},
	{"sabado", time.Saturday},
	{"domingo", time.Sunday},
}

// ResolveDate converts a free-text date expression into a calendar date,
// normalized to YYYY-MM-DD with no time component.
//
// Resolution order: direct parse, "pasado mañana", "mañana", "hoy", weekday
// name (next occurrence), and finally today. The final fallback is silent: an
// unparseable expression schedules for today rather than raising an error.
func ResolveDate(expr string, now time.Time) string {
	s := strings.ToLower(strings.TrimSpace(expr))
	s = strings.TrimPrefix(s, "el ")
	s = strings.TrimPrefix(s, "para ")
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	if strings.Contains(s, "pasado mañana") {
		return now.AddDate(0, 0, 2).Format("2006-01-02")
	}
	if strings.Contains(s, "mañana") {
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	}
	if strings.Contains(s, "hoy") {
		return now.Format("2006-01-02")
	}
	for _, wd := range weekdays {
		if strings.Contains(s, wd.name) {
			return nextWeekday(now, wd.day).Format("2006-01-02")
		}
	}
	return now.Format("2006-01-02")
}

// nextWeekday returns the next occurrence of wd strictly after now's date.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
