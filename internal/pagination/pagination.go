// Package pagination computes the previous/next navigation links of the
// monthly expense browser.
package pagination

import (
	"fmt"
	"time"

	"expensebook/internal/calendar"
)

// MonthRef identifies a browsable month.
type MonthRef struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Query string `json:"query"`
}

func newMonthRef(t time.Time) *MonthRef {
	month := calendar.MonthNameOf(t)
	return &MonthRef{
		Month: month,
		Year:  t.Year(),
		Query: fmt.Sprintf("?month=%s&year=%d", month, t.Year()),
	}
}

// Window holds the neighbours of the displayed month. A nil side means the
// browser cannot page in that direction.
type Window struct {
	Previous *MonthRef `json:"previous"`
	Next     *MonthRef `json:"next"`
}

// DefaultFloor is the earliest month the browser pages back to: January 2024.
func DefaultFloor(loc *time.Location) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)
}

// NewWindow computes the window around month/year. Next is set only when the
// following month has already started at now; Previous only when the prior
// month does not start before floor. Month starts are taken in now's location.
func NewWindow(month string, year int, now, floor time.Time) (Window, error) {
	idx, err := calendar.MonthIndexFromName(month)
	if err != nil {
		return Window{}, err
	}

	current := calendar.MonthStart(idx, year, now.Location())
	next := current.AddDate(0, 1, 0)
	previous := current.AddDate(0, -1, 0)

	var w Window
	if !next.After(now) {
		w.Next = newMonthRef(next)
	}
	if !previous.Before(floor) {
		w.Previous = newMonthRef(previous)
	}
	return w, nil
}
