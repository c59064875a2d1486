// Package progress holds the pure aggregation logic shared by every view
// of a project's completion state. All functions are side-effect free and
// operate on already-fetched rows; callers own the I/O.
package progress

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/checkmate-app/backend/models"
)

// upcomingWindowDays is the number of days ahead of today (inclusive) a
// due date still counts as "due soon".
const upcomingWindowDays = 3

// Summary aggregates completion counts over a set of items.
type Summary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ChecklistProgress is the per-checklist breakdown row rendered on the
// progress and summary cards. Input order is preserved.
type ChecklistProgress struct {
	ChecklistID uuid.UUID `json:"checklist_id"`
	Title       string    `json:"title"`
	Completed   int       `json:"completed"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
}

// UpcomingTask is an unchecked, dated item annotated with the title of the
// checklist it belongs to.
type UpcomingTask struct {
	Item           models.ChecklistItem `json:"item"`
	ChecklistTitle string               `json:"checklist_title"`
}

// Upcoming partitions unchecked, dated items relative to a reference day.
type Upcoming struct {
	Overdue  []UpcomingTask `json:"overdue"`
	DueToday []UpcomingTask `json:"due_today"`
	DueSoon  []UpcomingTask `json:"due_soon"`
}

// Percentage returns round(100 * checked / total) over items, or 0 for an
// empty slice. Total function: always in [0, 100].
func Percentage(items []models.ChecklistItem) int {
	if len(items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range items {
		if item.Checked {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(items)) * 100))
}

// Flatten collects every item across the given checklists.
func Flatten(checklists []models.Checklist) []models.ChecklistItem {
	var items []models.ChecklistItem
	for _, checklist := range checklists {
		items = append(items, checklist.Items...)
	}
	return items
}

// Overall computes the project-wide summary across all checklists.
func Overall(checklists []models.Checklist) Summary {
	items := Flatten(checklists)
	completed := 0
	for _, item := range items {
		if item.Checked {
			completed++
		}
	}
	return Summary{
		Completed:  completed,
		Total:      len(items),
		Percentage: Percentage(items),
	}
}

// PerChecklistBreakdown computes each checklist's own summary, preserving
// input order.
func PerChecklistBreakdown(checklists []models.Checklist) []ChecklistProgress {
	breakdown := make([]ChecklistProgress, 0, len(checklists))
	for _, checklist := range checklists {
		completed := 0
		for _, item := range checklist.Items {
			if item.Checked {
				completed++
			}
		}
		breakdown = append(breakdown, ChecklistProgress{
			ChecklistID: checklist.ID,
			Title:       checklist.Title,
			Completed:   completed,
			Total:       len(checklist.Items),
			Percentage:  Percentage(checklist.Items),
		})
	}
	return breakdown
}

// IsComplete reports whether the project is finished: at least one item
// exists and every item across every checklist is checked. Zero items is
// never complete.
func IsComplete(checklists []models.Checklist) bool {
	total := 0
	for _, checklist := range checklists {
		for _, item := range checklist.Items {
			if !item.Checked {
				return false
			}
			total++
		}
	}
	return total > 0
}

// ClassifyUpcoming partitions unchecked items that carry a due date into
// overdue, due-today and due-soon buckets relative to today. Comparison is
// by calendar date only: both sides are normalized to UTC midnight, so an
// item due today lands in DueToday regardless of time components or the
// zone the timestamps arrived in. Items due more than three days out are
// excluded entirely.
func ClassifyUpcoming(checklists []models.Checklist, today time.Time) Upcoming {
	var upcoming Upcoming
	day := truncateToDay(today)
	windowEnd := day.AddDate(0, 0, upcomingWindowDays)

	for _, checklist := range checklists {
		for _, item := range checklist.Items {
			if item.Checked || item.DueDate == nil {
				continue
			}
			due := truncateToDay(*item.DueDate)
			task := UpcomingTask{Item: item, ChecklistTitle: checklist.Title}
			switch {
			case due.Before(day):
				upcoming.Overdue = append(upcoming.Overdue, task)
			case due.Equal(day):
				upcoming.DueToday = append(upcoming.DueToday, task)
			case !due.After(windowEnd):
				upcoming.DueSoon = append(upcoming.DueSoon, task)
			}
		}
	}
	return upcoming
}

// truncateToDay maps a timestamp to its calendar date as a UTC midnight.
// Normalizing both sides to the same location keeps the comparison
// date-only; due dates arrive as UTC midnights while the reference time is
// usually the server's local now.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
