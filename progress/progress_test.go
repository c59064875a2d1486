package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/checkmate-app/backend/models"
)

func item(checked bool) models.ChecklistItem {
	return models.ChecklistItem{ID: uuid.New(), Checked: checked}
}

func datedItem(checked bool, due time.Time) models.ChecklistItem {
	return models.ChecklistItem{ID: uuid.New(), Checked: checked, DueDate: &due}
}

func TestPercentage(t *testing.T) {
	t.Run("empty slice is zero", func(t *testing.T) {
		assert.Equal(t, 0, Percentage(nil))
		assert.Equal(t, 0, Percentage([]models.ChecklistItem{}))
	})

	t.Run("rounds half up at thirds", func(t *testing.T) {
		items := []models.ChecklistItem{item(true), item(false), item(false)}
		assert.Equal(t, 33, Percentage(items))

		items = []models.ChecklistItem{item(true), item(true), item(false)}
		assert.Equal(t, 67, Percentage(items))
	})

	t.Run("stays within bounds", func(t *testing.T) {
		all := []models.ChecklistItem{item(true), item(true)}
		none := []models.ChecklistItem{item(false), item(false)}
		assert.Equal(t, 100, Percentage(all))
		assert.Equal(t, 0, Percentage(none))
	})
}

func TestOverallAndBreakdown(t *testing.T) {
	first := models.Checklist{
		ID:    uuid.New(),
		Title: "Planning",
		Items: []models.ChecklistItem{item(true), item(false)},
	}
	second := models.Checklist{
		ID:    uuid.New(),
		Title: "Delivery",
		Items: []models.ChecklistItem{item(true), item(true)},
	}
	checklists := []models.Checklist{first, second}

	t.Run("overall folds every checklist", func(t *testing.T) {
		summary := Overall(checklists)
		assert.Equal(t, 3, summary.Completed)
		assert.Equal(t, 4, summary.Total)
		assert.Equal(t, 75, summary.Percentage)
	})

	t.Run("breakdown preserves order", func(t *testing.T) {
		breakdown := PerChecklistBreakdown(checklists)
		assert.Len(t, breakdown, 2)
		assert.Equal(t, "Planning", breakdown[0].Title)
		assert.Equal(t, 50, breakdown[0].Percentage)
		assert.Equal(t, "Delivery", breakdown[1].Title)
		assert.Equal(t, 100, breakdown[1].Percentage)
	})

	t.Run("empty checklist yields zero row", func(t *testing.T) {
		breakdown := PerChecklistBreakdown([]models.Checklist{{ID: uuid.New(), Title: "Empty"}})
		assert.Len(t, breakdown, 1)
		assert.Equal(t, 0, breakdown[0].Total)
		assert.Equal(t, 0, breakdown[0].Percentage)
	})
}

func TestIsComplete(t *testing.T) {
	t.Run("zero items is never complete", func(t *testing.T) {
		assert.False(t, IsComplete(nil))
		assert.False(t, IsComplete([]models.Checklist{{Title: "Empty"}}))
	})

	t.Run("all checked across checklists is complete", func(t *testing.T) {
		checklists := []models.Checklist{
			{Items: []models.ChecklistItem{item(true)}},
			{Items: []models.ChecklistItem{item(true), item(true)}},
		}
		assert.True(t, IsComplete(checklists))
	})

	t.Run("one unchecked item anywhere blocks completion", func(t *testing.T) {
		checklists := []models.Checklist{
			{Items: []models.ChecklistItem{item(true)}},
			{Items: []models.ChecklistItem{item(true), item(false)}},
		}
		assert.False(t, IsComplete(checklists))
	})
}

func TestClassifyUpcoming(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("boundaries are date-only and inclusive", func(t *testing.T) {
		checklists := []models.Checklist{{
			Title: "Launch",
			Items: []models.ChecklistItem{
				datedItem(false, time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC)),  // overdue
				datedItem(false, time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)), // due today
				datedItem(false, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)),  // due soon, window edge
				datedItem(false, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),  // out of window
			},
		}}

		upcoming := ClassifyUpcoming(checklists, today)
		assert.Len(t, upcoming.Overdue, 1)
		assert.Len(t, upcoming.DueToday, 1)
		assert.Len(t, upcoming.DueSoon, 1)
	})

	t.Run("checked items never classify", func(t *testing.T) {
		checklists := []models.Checklist{{
			Title: "Launch",
			Items: []models.ChecklistItem{
				datedItem(true, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)),
				datedItem(true, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)),
				datedItem(true, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)),
			},
		}}

		upcoming := ClassifyUpcoming(checklists, today)
		assert.Empty(t, upcoming.Overdue)
		assert.Empty(t, upcoming.DueToday)
		assert.Empty(t, upcoming.DueSoon)
	})

	t.Run("items without a due date are excluded", func(t *testing.T) {
		checklists := []models.Checklist{{
			Title: "Launch",
			Items: []models.ChecklistItem{item(false)},
		}}

		upcoming := ClassifyUpcoming(checklists, today)
		assert.Empty(t, upcoming.Overdue)
		assert.Empty(t, upcoming.DueToday)
		assert.Empty(t, upcoming.DueSoon)
	})

	t.Run("classification compares calendar dates across time zones", func(t *testing.T) {
		// Due dates are stored as UTC midnights; the reference time is the
		// server's local now. The same calendar date must classify as due
		// today no matter which zone either side carries.
		westOfUTC := time.FixedZone("UTC-5", -5*60*60)
		eastOfUTC := time.FixedZone("UTC+9", 9*60*60)
		checklists := []models.Checklist{{
			Title: "Launch",
			Items: []models.ChecklistItem{
				datedItem(false, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)),
			},
		}}

		upcoming := ClassifyUpcoming(checklists, time.Date(2024, 6, 10, 12, 0, 0, 0, westOfUTC))
		assert.Empty(t, upcoming.Overdue)
		assert.Len(t, upcoming.DueToday, 1)

		upcoming = ClassifyUpcoming(checklists, time.Date(2024, 6, 10, 12, 0, 0, 0, eastOfUTC))
		assert.Len(t, upcoming.DueToday, 1)
		assert.Empty(t, upcoming.DueSoon)
	})

	t.Run("tasks carry their checklist title", func(t *testing.T) {
		checklists := []models.Checklist{{
			Title: "QA",
			Items: []models.ChecklistItem{datedItem(false, today)},
		}}

		upcoming := ClassifyUpcoming(checklists, today)
		assert.Len(t, upcoming.DueToday, 1)
		assert.Equal(t, "QA", upcoming.DueToday[0].ChecklistTitle)
	})
}
