package domain

import "fmt"

type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// Weekdays lists the seven days in expansion order.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// rank returns the day's position Monday=0..Sunday=6, or -1 for an unknown
// day.
func (w Weekday) rank() int {
	for i, d := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Entry is one canonical dose slot, the only schedule shape the backend
// accepts or returns.
type Entry struct {
	DayOfWeek Weekday
	TimeOfDay string
}

// CompactRow is the editor-facing shape: a daily row stands for all seven
// weekdays at its time, and its DayOfWeek is ignored.
type CompactRow struct {
	DayOfWeek Weekday
	TimeOfDay string
	Daily     bool
}

// ExpandSchedule converts editor rows to canonical entries. A daily row
// yields seven entries in Monday..Sunday order; any other row yields exactly
// one. Rows are processed in input order and each row's expansion is
// contiguous. Times are passed through uninterpreted; validation belongs to
// the form layer.
func ExpandSchedule(rows []CompactRow) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if row.Daily {
			for _, day := range Weekdays {
				entries = append(entries, Entry{DayOfWeek: day, TimeOfDay: row.TimeOfDay})
			}
			continue
		}
		entries = append(entries, Entry{DayOfWeek: row.DayOfWeek, TimeOfDay: row.TimeOfDay})
	}
	return entries
}

// DuplicateSlotError reports a (day, time) pair occurring more than once in a
// canonical schedule.
type DuplicateSlotError struct {
	Day  Weekday
	Time string
}

func (e *DuplicateSlotError) Error() string {
	return fmt.Sprintf("duplicate schedule slot %s %s", e.Day, e.Time)
}

// CollapseSchedule converts canonical entries back to editor rows. Entries
// are grouped by time of day, groups ordered by first occurrence; a time
// covering all seven weekdays collapses to a single daily row (placeholder
// day Monday), any other time yields one row per day present, in
// Monday..Sunday order. A duplicate (day, time) pair is rejected rather than
// silently dropped; use DedupeSchedule first to accept lossy input.
func CollapseSchedule(entries []Entry) ([]CompactRow, error) {
	var times []string
	byTime := make(map[string]map[Weekday]bool)
	for _, entry := range entries {
		days, ok := byTime[entry.TimeOfDay]
		if !ok {
			days = make(map[Weekday]bool)
			byTime[entry.TimeOfDay] = days
			times = append(times, entry.TimeOfDay)
		}
		if days[entry.DayOfWeek] {
			return nil, &DuplicateSlotError{Day: entry.DayOfWeek, Time: entry.TimeOfDay}
		}
		days[entry.DayOfWeek] = true
	}

	var rows []CompactRow
	for _, timeOfDay := range times {
		days := byTime[timeOfDay]
		if len(days) == 7 && coversAllWeekdays(days) {
			rows = append(rows, CompactRow{DayOfWeek: Monday, TimeOfDay: timeOfDay, Daily: true})
			continue
		}
		for _, day := range Weekdays {
			if days[day] {
				rows = append(rows, CompactRow{DayOfWeek: day, TimeOfDay: timeOfDay})
			}
		}
		// Days outside the known seven keep their position after the
		// ordered ones so no entry is lost.
		for day := range days {
			if day.rank() < 0 {
				rows = append(rows, CompactRow{DayOfWeek: day, TimeOfDay: timeOfDay})
			}
		}
	}
	return rows, nil
}

// DedupeSchedule drops duplicate (day, time) pairs, keeping first
// occurrences in input order.
func DedupeSchedule(entries []Entry) []Entry {
	seen := make(map[Entry]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
	}
	return out
}

func coversAllWeekdays(days map[Weekday]bool) bool {
	for _, day := range Weekdays {
		if !days[day] {
			return false
		}
	}
	return true
}

// ValidTimeOfDay reports whether s is an HH:MM string with HH in 00..23 and
// MM in 00..59.
func ValidTimeOfDay(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour <= 23 && minute <= 59
}
