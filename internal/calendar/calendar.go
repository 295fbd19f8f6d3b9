// Package calendar projects scheduled posts onto calendar days and months.
package calendar

import (
	"time"

	"clover/internal/models"
)

// SameDay reports whether a and b fall on the same calendar date, each read in
// its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// PostsOnDay returns the posts scheduled on the calendar date of day, keeping
// their input order.
func PostsOnDay(posts []models.ScheduledPost, day time.Time) []models.ScheduledPost {
	var out []models.ScheduledPost
	for _, p := range posts {
		if SameDay(p.ScheduledAt, day) {
			out = append(out, p)
		}
	}
	return out
}

// Month is the grid for one calendar month. LeadingBlanks is the weekday index
// (0 = Sunday) of the first day, i.e. the empty cells before it in a
// seven-column layout.
type Month struct {
	First         time.Time
	Days          []time.Time
	LeadingBlanks int
}

// MonthGrid builds the grid for the month containing anchor, in anchor's location.
func MonthGrid(anchor time.Time) Month {
	y, m, _ := anchor.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, anchor.Location())
	n := first.AddDate(0, 1, -1).Day()

	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}

	return Month{
		First:         first,
		Days:          days,
		LeadingBlanks: int(first.Weekday()),
	}
}

// Weeks splits the grid into rows of seven cells. Blank cells are nil.
func (m Month) Weeks() [][]*time.Time {
	cells := make([]*time.Time, 0, m.LeadingBlanks+len(m.Days))
	for i := 0; i < m.LeadingBlanks; i++ {
		cells = append(cells, nil)
	}
	for i := range m.Days {
		cells = append(cells, &m.Days[i])
	}

	var weeks [][]*time.Time
	for len(cells) > 0 {
		n := min(7, len(cells))
		weeks = append(weeks, cells[:n])
		cells = cells[n:]
	}
	return weeks
}

type Day struct {
	Date  string                 `json:"date"`
	Posts []models.ScheduledPost `json:"posts"`
}

// Group attaches to every day of the month the posts scheduled on it.
func (m Month) Group(posts []models.ScheduledPost) []Day {
	out := make([]Day, len(m.Days))
	for i, d := range m.Days {
		dayPosts := PostsOnDay(posts, d)
		if dayPosts == nil {
			dayPosts = []models.ScheduledPost{}
		}
		out[i] = Day{Date: d.Format("2006-01-02"), Posts: dayPosts}
	}
	return out
}
