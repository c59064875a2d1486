package api

import (
	"time"

	"github.com/checkmate-app/backend/database"
	"github.com/checkmate-app/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, generator services.ChecklistGenerator, storage *services.Storage, generationTimeout time.Duration, publicBaseURL string) *routeHandlers {
	wizard := services.NewProjectWizard(
		generator,
		database.ProjectRepo(),
		database.ChecklistRepo(),
		database.ChecklistItemRepo(),
		generationTimeout,
	)

	return &routeHandlers{
		projectHandler:       newProjectHandler(database.ProjectRepo(), database.ChecklistRepo(), publicBaseURL),
		checklistHandler:     newChecklistHandler(database.ChecklistRepo(), database.ProjectRepo()),
		checklistItemHandler: newChecklistItemHandler(database.ChecklistItemRepo(), database.ChecklistRepo(), database.ProjectRepo()),
		wizardHandler:        newWizardHandler(wizard),
		generateHandler:      newGenerateHandler(generator, generationTimeout),
		fileHandler:          newFileHandler(storage, database.ProjectRepo()),
		publicHandler:        newPublicHandler(database.ProjectRepo(), database.ChecklistRepo()),
	}
}
