package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checklist is a named group of items belonging to one project. Item order
// matters for display only; aggregation ignores it.
type Checklist struct {
	ID        uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID       `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	Title     string          `json:"title" db:"title" gorm:"type:text;not null"`
	CreatedAt time.Time       `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	Items     []ChecklistItem `json:"checklist_items,omitempty" gorm:"foreignKey:ChecklistID;references:ID;constraint:OnDelete:CASCADE"`
}

func (c *Checklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
