package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Resolution holds at most one calendar date and one time of day extracted
// from an utterance. Date usually points at local midnight of the resolved
// day; the one exception is "in N hours", which resolves to an absolute
// instant offset from the reference time. Time is a 24-hour "HH:MM" string
// and is independent of Date: either may be present without the other.
type Resolution struct {
	Date *time.Time
	Time string
}

// resolveDateTime extracts a due time and a due date from the working text.
// Time runs first so a date pattern cannot swallow a time-bearing phrase
// such as "at 5pm". Each extraction removes exactly the span it matched;
// only the first matching rule of each cascade fires.
func resolveDateTime(text string, now time.Time) (Resolution, string) {
	var res Resolution
	res.Time, text = extractTime(text)
	res.Date, text = extractDate(text, now)
	return res, text
}

// --- Time extraction ---

// timeRule pairs a clock pattern with a handler producing "HH:MM".
type timeRule struct {
	re      *regexp.Regexp
	resolve func(m []string) string
}

var timeRules = []timeRule{
	// "at 5pm", "at 7:30 am" - 12-hour clock with meridiem.
	{regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`), func(m []string) string {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if strings.EqualFold(m[3], "pm") && hour != 12 {
			hour += 12
		}
		if strings.EqualFold(m[3], "am") && hour == 12 {
			hour = 0
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}},
	// "at 17:30" - 24-hour literal.
	{regexp.MustCompile(`(?i)\bat\s+(\d{1,2}):(\d{2})\b`), func(m []string) string {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}},
	// Named periods of the day.
	{regexp.MustCompile(`(?i)\b(?:in\s+the\s+)?morning\b`), fixedTime("09:00")},
	{regexp.MustCompile(`(?i)\b(?:in\s+the\s+)?afternoon\b`), fixedTime("14:00")},
	{regexp.MustCompile(`(?i)\b(?:in\s+the\s+|this\s+)?evening\b`), fixedTime("18:00")},
	{regexp.MustCompile(`(?i)\b(?:tonight|(?:at\s+)?night)\b`), fixedTime("21:00")},
	{regexp.MustCompile(`(?i)\b(?:at\s+)?(?:noon|midday)\b`), fixedTime("12:00")},
}

func fixedTime(hhmm string) func([]string) string {
	return func([]string) string { return hhmm }
}

func extractTime(text string) (string, string) {
	for _, rule := range timeRules {
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		m := submatches(text, loc)
		return rule.resolve(m), cut(text, loc[:2])
	}
	return "", text
}

// --- Date extraction ---

// dateRule pairs a calendar pattern with a handler resolving the concrete
// day relative to the reference instant.
type dateRule struct {
	re      *regexp.Regexp
	resolve func(m []string, now time.Time) time.Time
}

const weekdayNames = `sunday|monday|tuesday|wednesday|thursday|friday|saturday`

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

const monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// dateRules is the full cascade in fixed priority order:
//  1. "next <weekday>" - always the second future occurrence.
//  2. Relative keyword offsets from the start of the current day.
//  3. "this <weekday>" and bare weekday names.
//  4. Explicit dates.
//
// Once one rule fires, the rest of the cascade is skipped.
var dateRules = []dateRule{
	// "next friday": the occurrence strictly more than 7 days out. The
	// nearest-occurrence offset is computed first, then pushed a week
	// forward, so on a Wednesday "next monday" is 12 days away, not 5.
	{regexp.MustCompile(`(?i)\bnext\s+(` + weekdayNames + `)\b`), func(m []string, now time.Time) time.Time {
		target := weekdayByName[strings.ToLower(m[1])]
		days := (int(target) - int(now.Weekday()) + 7) % 7
		if days < 7 {
			days += 7
		}
		return startOfDay(now).AddDate(0, 0, days)
	}},

	// Relative keywords. Longer phrases come before their substrings so
	// "day after tomorrow" is never shadowed by "tomorrow".
	{regexp.MustCompile(`(?i)\b(?:the\s+)?day\s+after\s+tomorrow\b`), dayOffset(2)},
	{regexp.MustCompile(`(?i)\btomorrow\b`), dayOffset(1)},
	{regexp.MustCompile(`(?i)\btoday\b`), dayOffset(0)},
	{regexp.MustCompile(`(?i)\btonight\b`), dayOffset(0)},
	{regexp.MustCompile(`(?i)\bnext\s+week\b`), dayOffset(7)},
	// Flat 30-day approximation, not calendar-month arithmetic.
	{regexp.MustCompile(`(?i)\bnext\s+month\b`), dayOffset(30)},
	// The one rule that yields an absolute instant rather than a
	// day-aligned date.
	{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+hours?\b`), func(m []string, now time.Time) time.Time {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Hour)
	}},
	{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+days?\b`), func(m []string, now time.Time) time.Time {
		n, _ := strconv.Atoi(m[1])
		return startOfDay(now).AddDate(0, 0, n)
	}},
	{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+weeks?\b`), func(m []string, now time.Time) time.Time {
		n, _ := strconv.Atoi(m[1])
		return startOfDay(now).AddDate(0, 0, 7*n)
	}},
	{regexp.MustCompile(`(?i)\b(?:by\s+)?(?:the\s+)?end\s+of\s+(?:the\s+)?day\b`), dayOffset(0)},
	// Upcoming Friday; on a Friday this rolls a full week forward.
	{regexp.MustCompile(`(?i)\b(?:by\s+)?(?:the\s+)?end\s+of\s+(?:the\s+)?week\b`), func(m []string, now time.Time) time.Time {
		days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return startOfDay(now).AddDate(0, 0, days)
	}},

	// "this friday": the weekday within the current week; a negative
	// offset wraps a week forward.
	{regexp.MustCompile(`(?i)\bthis\s+(` + weekdayNames + `)\b`), func(m []string, now time.Time) time.Time {
		target := weekdayByName[strings.ToLower(m[1])]
		days := int(target) - int(now.Weekday())
		if days < 0 {
			days += 7
		}
		return startOfDay(now).AddDate(0, 0, days)
	}},
	// Bare weekday: always the next occurrence strictly in the future.
	{regexp.MustCompile(`(?i)\b(?:on\s+)?(` + weekdayNames + `)\b`), func(m []string, now time.Time) time.Time {
		target := weekdayByName[strings.ToLower(m[1])]
		days := (int(target) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return startOfDay(now).AddDate(0, 0, days)
	}},

	// Explicit dates. MM/DD with optional 2- or 4-digit year.
	{regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?\b`), func(m []string, now time.Time) time.Time {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	}},
	// "June 3rd", "December 25, 2026".
	{regexp.MustCompile(`(?i)\b(` + monthNames + `)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`), func(m []string, now time.Time) time.Time {
		return explicitDate(m[1], m[2], m[3], now)
	}},
	// "3rd of June", "25 December 2026".
	{regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthNames + `)(?:,?\s+(\d{4}))?\b`), func(m []string, now time.Time) time.Time {
		return explicitDate(m[2], m[1], m[3], now)
	}},
}

func dayOffset(days int) func([]string, time.Time) time.Time {
	return func(_ []string, now time.Time) time.Time {
		return startOfDay(now).AddDate(0, 0, days)
	}
}

func extractDate(text string, now time.Time) (*time.Time, string) {
	for _, rule := range dateRules {
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		m := submatches(text, loc)
		date := rule.resolve(m, now)
		return &date, cut(text, loc[:2])
	}
	return nil, text
}

// startOfDay truncates an instant to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// explicitDate builds a date from a month name, day string, and optional
// 4-digit year. An omitted year defaults to the reference year.
func explicitDate(monthName, dayStr, yearStr string, now time.Time) time.Time {
	month := monthByPrefix[strings.ToLower(monthName)[:3]]
	day, _ := strconv.Atoi(dayStr)
	year := now.Year()
	if yearStr != "" {
		year, _ = strconv.Atoi(yearStr)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// submatches expands FindStringSubmatchIndex results into strings, with ""
// for groups that did not participate in the match.
func submatches(s string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			m[i] = s[start:end]
		}
	}
	return m
}
