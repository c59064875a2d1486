package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo       *ProjectRepo
	checklistRepo     *ChecklistRepo
	checklistItemRepo *ChecklistItemRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:       NewProjectRepo(db),
		checklistRepo:     NewChecklistRepo(db),
		checklistItemRepo: NewChecklistItemRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ChecklistRepo() *ChecklistRepo {
	return d.checklistRepo
}

func (d Database) ChecklistItemRepo() *ChecklistItemRepo {
	return d.checklistItemRepo
}
