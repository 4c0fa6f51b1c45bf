package remind

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// compactUnitPattern matches compact duration shorthand: 10s, 5m, 2h, 1d.
var compactUnitPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*(s|sec|secs|m|min|mins|h|hr|hrs|d|day|days)\s*$`)

// naturalUnitPattern matches spelled-out durations: "5 minutes", "2 hours".
var naturalUnitPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s+(second|sec|minute|min|hour|hr|day)s?\s*$`)

// clockPattern matches a bare or "at"-prefixed clock time: "14:30", "at
// 14:30", "9pm", "9:30am".
var clockPattern = regexp.MustCompile(`(?i)^\s*(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*$`)

// namedDayPattern matches "today", "tomorrow", "next monday", "monday",
// optionally followed by a part-of-day or a clock time.
var namedDayPattern = regexp.MustCompile(`(?i)^\s*(?:(next)\s+)?(today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?:\s+(.+))?\s*$`)

var partOfDayHour = map[string]int{
	"morning":   9,
	"afternoon": 14,
	"evening":   18,
	"night":     21,
}

var weekdayIndex = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWhen resolves raw (the value given for user.remind's time/duration/
// delay/delaySec argument) into an absolute point in time, relative to
// now in loc. defaultHour governs ambiguous named-day inputs with no
// time-of-day component ("tomorrow" -> defaultHour:00), per OQ1.
func ParseWhen(raw string, now time.Time, loc *time.Location, defaultHour int) (time.Time, error) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return time.Time{}, fmt.Errorf("remind: empty time expression")
	}
	text = strings.TrimPrefix(text, "in ")
	text = strings.TrimSpace(text)

	nowInLoc := now.In(loc)

	if m := compactUnitPattern.FindStringSubmatch(text); m != nil {
		d, err := durationFromUnit(m[1], m[2])
		if err != nil {
			return time.Time{}, err
		}
		return now.Add(d), nil
	}

	if m := naturalUnitPattern.FindStringSubmatch(text); m != nil {
		d, err := durationFromUnit(m[1], m[2])
		if err != nil {
			return time.Time{}, err
		}
		return now.Add(d), nil
	}

	if m := namedDayPattern.FindStringSubmatch(text); m != nil {
		return resolveNamedDay(m[1], m[2], strings.TrimSpace(m[3]), nowInLoc, defaultHour, loc)
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		return resolveClock(m[1], m[2], m[3], nowInLoc, loc)
	}

	return time.Time{}, fmt.Errorf("remind: unrecognized time expression %q", raw)
}

func durationFromUnit(numStr, unit string) (time.Duration, error) {
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("remind: invalid duration number %q: %w", numStr, err)
	}
	switch {
	case strings.HasPrefix(unit, "s"):
		return time.Duration(n) * time.Second, nil
	case strings.HasPrefix(unit, "m"):
		return time.Duration(n) * time.Minute, nil
	case strings.HasPrefix(unit, "h"):
		return time.Duration(n) * time.Hour, nil
	case strings.HasPrefix(unit, "d"):
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("remind: unknown duration unit %q", unit)
	}
}

// resolveNamedDay handles "today", "tomorrow", "<weekday>" and
// "next <weekday>", each optionally followed by a part-of-day word or a
// clock time. No trailing time component defaults to defaultHour:00
// (OQ1) in loc.
func resolveNamedDay(nextWord, day, rest string, nowInLoc time.Time, defaultHour int, loc *time.Location) (time.Time, error) {
	base := dateOnly(nowInLoc, loc)

	switch day {
	case "today":
		// base already today
	case "tomorrow":
		base = base.AddDate(0, 0, 1)
	default:
		target, ok := weekdayIndex[day]
		if !ok {
			return time.Time{}, fmt.Errorf("remind: unknown day %q", day)
		}
		offset := (int(target) - int(base.Weekday()) + 7) % 7
		if offset == 0 && nextWord != "" {
			// "monday" on a monday with no "next" means today;
			// "next monday" always rolls to the following week.
			offset = 7
		}
		base = base.AddDate(0, 0, offset)
	}

	hour, minute := defaultHour, 0
	if rest != "" {
		if h, ok := partOfDayHour[rest]; ok {
			hour, minute = h, 0
		} else if m := clockPattern.FindStringSubmatch(rest); m != nil {
			resolved, err := resolveClockOnDate(m[1], m[2], m[3], base, loc)
			if err != nil {
				return time.Time{}, err
			}
			return resolved, nil
		} else {
			return time.Time{}, fmt.Errorf("remind: unrecognized time-of-day %q", rest)
		}
	}

	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, loc), nil
}

// resolveClock resolves a bare clock time ("14:30", "9pm") against
// nowInLoc's date, rolling to the next day if the time has already
// passed today.
func resolveClock(hourStr, minuteStr, meridiem string, nowInLoc time.Time, loc *time.Location) (time.Time, error) {
	base := dateOnly(nowInLoc, loc)
	candidate, err := resolveClockOnDate(hourStr, minuteStr, meridiem, base, loc)
	if err != nil {
		return time.Time{}, err
	}
	if candidate.Before(nowInLoc) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}

func resolveClockOnDate(hourStr, minuteStr, meridiem string, date time.Time, loc *time.Location) (time.Time, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("remind: invalid hour %q: %w", hourStr, err)
	}
	minute := 0
	if minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("remind: invalid minute %q: %w", minuteStr, err)
		}
	}
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("remind: clock time out of range %02d:%02d", hour, minute)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), nil
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
