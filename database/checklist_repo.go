package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/checkmate-app/backend/models"
)

type ChecklistRepo struct {
	db *gorm.DB
}

func NewChecklistRepo(db *gorm.DB) *ChecklistRepo {
	return &ChecklistRepo{db}
}

// FindByProject returns a project's checklists ordered by creation time
// ascending, with items preloaded in display order.
func (r *ChecklistRepo) FindByProject(projectID uuid.UUID) ([]models.Checklist, error) {
	var checklists []models.Checklist
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&checklists).Error
	return checklists, err
}

// FindByID returns a checklist by its ID without items.
func (r *ChecklistRepo) FindByID(id uuid.UUID) (*models.Checklist, error) {
	var checklist models.Checklist
	err := r.db.First(&checklist, id).Error
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// Add inserts a new checklist into the database
func (r *ChecklistRepo) Add(checklist *models.Checklist) error {
	return r.db.Create(checklist).Error
}

// UpdateTitle renames a checklist.
func (r *ChecklistRepo) UpdateTitle(id uuid.UUID, title string) error {
	result := r.db.Model(&models.Checklist{}).Where("id = ?", id).Update("title", title)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a checklist by id; the database cascades to its items.
func (r *ChecklistRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Checklist{}, id).Error
}
