package strike

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"time"
)

var ErrInvalidDate = errors.New("invalid calendar date")

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?P<d>\d{1,2})[/-](?P<m>\d{1,2})[/-](?P<y>\d{4})`), // dd/mm/yyyy
	regexp.MustCompile(`(?P<y>\d{4})[/-](?P<m>\d{1,2})[/-](?P<d>\d{1,2})`), // yyyy-mm-dd
}

// NewDate returns the UTC midnight of year/month/day, rejecting values that
// time.Date would silently normalize (31 February, month 13, day 0).
func NewDate(year, month, day int) (time.Time, error) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, ErrInvalidDate
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, ErrInvalidDate
	}

	return d, nil
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ExtractDates collects every valid date written in either notation,
// deduplicated and in ascending order.
func ExtractDates(text string) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time

	for _, pattern := range datePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			d, err := dateFromMatch(pattern, match)
			if err != nil {
				continue
			}
			if !seen[d] {
				seen[d] = true
				dates = append(dates, d)
			}
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	return dates
}

func dateFromMatch(pattern *regexp.Regexp, match []string) (time.Time, error) {
	var year, month, day int
	for i, name := range pattern.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		n, err := strconv.Atoi(match[i])
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		switch name {
		case "y":
			year = n
		case "m":
			month = n
		case "d":
			day = n
		}
	}
	return NewDate(year, month, day)
}

// ChooseSpan covers the earliest through the latest date. The end is the day
// after the latest date, since all-day end markers are exclusive.
func ChooseSpan(dates []time.Time) (Span, bool) {
	if len(dates) == 0 {
		return Span{}, false
	}

	start, end := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}

	return Span{Start: start, End: end.AddDate(0, 0, 1)}, true
}
