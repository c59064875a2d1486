package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/checkmate-app/backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAllByUser returns the given user's projects, newest first.
func (r *ProjectRepo) FindAllByUser(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, scoped to the owning user.
func (r *ProjectRepo) FindByID(id, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindPublicByID returns a project by its ID on the unauthenticated read
// path. Only rows flagged is_public are visible; no user scope applies.
func (r *ProjectRepo) FindPublicByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("id = ? AND is_public = ?", id, true).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// UpdateProgress persists the recomputed cached progress percentage.
func (r *ProjectRepo) UpdateProgress(id uuid.UUID, percentage int) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("progress", percentage).Error
}

// SetPublic flips the sharing flag, scoped to the owning user.
func (r *ProjectRepo) SetPublic(id, userID uuid.UUID, public bool) error {
	result := r.db.Model(&models.Project{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_public", public)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project by id, scoped to the owning user.
func (r *ProjectRepo) Delete(id, userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Project{}, id).Error
}
