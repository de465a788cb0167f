// Package calendar maps short month names to indexes and resolves the
// calendar windows used to bucket expenses by month.
package calendar

import (
	"errors"
	"strconv"
	"time"
)

// DateLayout is the layout of form dates (the value of an HTML date input).
const DateLayout = "2006-01-02"

// Year bounds offered by the month selector.
const (
	FirstSelectableYear = 2020
	LastSelectableYear  = 2050
)

var (
	ErrInvalidMonthName  = errors.New("invalid month name")
	ErrInvalidMonthIndex = errors.New("month index out of range")
)

// MonthNames holds the three-letter abbreviations in calendar order.
var MonthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var monthIndexByName = map[string]int{
	"Jan": 0, "Feb": 1, "Mar": 2, "Apr": 3, "May": 4, "Jun": 5,
	"Jul": 6, "Aug": 7, "Sep": 8, "Oct": 9, "Nov": 10, "Dec": 11,
}

// MonthIndexFromName returns the zero-based index (0-11) of a month
// abbreviation. Matching is case-sensitive.
func MonthIndexFromName(name string) (int, error) {
	idx, ok := monthIndexByName[name]
	if !ok {
		return 0, ErrInvalidMonthName
	}
	return idx, nil
}

// MonthNameFromIndex is the inverse of MonthIndexFromName.
func MonthNameFromIndex(index int) (string, error) {
	if index < 0 || index >= len(MonthNames) {
		return "", ErrInvalidMonthIndex
	}
	return MonthNames[index], nil
}

// IsMonthName reports whether name is one of MonthNames.
func IsMonthName(name string) bool {
	_, ok := monthIndexByName[name]
	return ok
}

// MonthNameOf returns the abbreviation for t's month.
func MonthNameOf(t time.Time) string {
	return MonthNames[int(t.Month())-1]
}

// MonthStart returns midnight on the first day of the month at index in loc.
func MonthStart(index, year int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(index+1), 1, 0, 0, 0, 0, loc)
}

// MonthRange resolves a month to its inclusive window [start, end] in loc.
// end is day 0 of the following month, i.e. midnight at the start of the
// month's last calendar day.
func MonthRange(name string, year int, loc *time.Location) (start, end time.Time, err error) {
	idx, err := MonthIndexFromName(name)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = MonthStart(idx, year, loc)
	end = time.Date(year, time.Month(idx+2), 0, 0, 0, 0, 0, loc)
	return start, end, nil
}

// YearOptions lists the years the month selector offers.
func YearOptions() []int {
	years := make([]int, 0, LastSelectableYear-FirstSelectableYear+1)
	for y := FirstSelectableYear; y <= LastSelectableYear; y++ {
		years = append(years, y)
	}
	return years
}

// DefaultFormDate returns the date a new-expense form starts with. When month
// and year name a valid month, now is moved into that month (in UTC, day and
// time of day kept, overflow normalized); otherwise today is used.
func DefaultFormDate(month, year string, now time.Time) string {
	u := now.UTC()
	idx, err := MonthIndexFromName(month)
	if err != nil {
		return u.Format(DateLayout)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return u.Format(DateLayout)
	}
	moved := time.Date(y, time.Month(idx+1), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), time.UTC)
	return moved.Format(DateLayout)
}
