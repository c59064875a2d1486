package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChecklistItem is a single task with completion state, an optional due
// date and an optional criticality flag.
type ChecklistItem struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ChecklistID uuid.UUID  `json:"checklist_id" db:"checklist_id" gorm:"type:uuid;not null;index"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null"`
	Checked     bool       `json:"checked" db:"checked" gorm:"type:boolean;not null;default:false"`
	OrderIndex  int        `json:"order_index" db:"order_index" gorm:"type:integer;not null;default:0"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date" gorm:"type:date"`
	IsCritical  bool       `json:"is_critical" db:"is_critical" gorm:"type:boolean;not null;default:false"`
}

func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
