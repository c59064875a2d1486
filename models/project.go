package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is the top-level unit owned by a user. Progress is a cached
// percentage recomputed from the checklist items on every checked-state
// mutation; it is never authoritative on its own.
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID       uuid.UUID                   `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	Name         string                      `json:"name" db:"name" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Type         string                      `json:"type" db:"type" gorm:"type:text;not null"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies" gorm:"type:jsonb"`
	Progress     int                         `json:"progress" db:"progress" gorm:"type:integer;not null;default:0"`
	Deadline     *time.Time                  `json:"deadline,omitempty" db:"deadline" gorm:"type:date"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	IsPublic     bool                        `json:"is_public" db:"is_public" gorm:"type:boolean;not null;default:false"`
	Checklists   []Checklist                 `json:"checklists,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
