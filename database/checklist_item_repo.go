package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/checkmate-app/backend/models"
)

type ChecklistItemRepo struct {
	db *gorm.DB
}

func NewChecklistItemRepo(db *gorm.DB) *ChecklistItemRepo {
	return &ChecklistItemRepo{db}
}

// FindByID returns a single item by its ID.
func (r *ChecklistItemRepo) FindByID(id uuid.UUID) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Add inserts a new checklist item into the database
func (r *ChecklistItemRepo) Add(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

// AddBatch inserts the generated items of a checklist in one statement.
func (r *ChecklistItemRepo) AddBatch(items []models.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// SetChecked updates an item's completion state.
func (r *ChecklistItemRepo) SetChecked(id uuid.UUID, checked bool) error {
	return r.updateColumn(id, "checked", checked)
}

// UpdateDescription rewrites an item's task text.
func (r *ChecklistItemRepo) UpdateDescription(id uuid.UUID, description string) error {
	return r.updateColumn(id, "description", description)
}

// UpdateDueDate sets or clears an item's due date.
func (r *ChecklistItemRepo) UpdateDueDate(id uuid.UUID, dueDate *time.Time) error {
	return r.updateColumn(id, "due_date", dueDate)
}

// SetCritical updates an item's criticality flag.
func (r *ChecklistItemRepo) SetCritical(id uuid.UUID, critical bool) error {
	return r.updateColumn(id, "is_critical", critical)
}

// Delete removes an item by id.
func (r *ChecklistItemRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ChecklistItem{}, id).Error
}

func (r *ChecklistItemRepo) updateColumn(id uuid.UUID, column string, value any) error {
	result := r.db.Model(&models.ChecklistItem{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
