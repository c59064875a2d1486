package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the authenticated surface and the public read path.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/project/{projectID}/share", handlers.projectHandler.shareProject())
		r.Get("/project/{projectID}/progress", handlers.projectHandler.getProjectProgress())

		// Checklist endpoints
		r.Get("/project/{projectID}/checklists", handlers.checklistHandler.getChecklists())
		r.Post("/project/{projectID}/checklist", handlers.checklistHandler.createChecklist())
		r.Put("/checklist/{checklistID}", handlers.checklistHandler.updateChecklist())
		r.Delete("/checklist/{checklistID}", handlers.checklistHandler.deleteChecklist())

		// Checklist item endpoints
		r.Post("/checklist/{checklistID}/item", handlers.checklistItemHandler.createItem())
		r.Patch("/item/{itemID}/toggle", handlers.checklistItemHandler.toggleItem())
		r.Patch("/item/{itemID}", handlers.checklistItemHandler.updateItem())
		r.Delete("/item/{itemID}", handlers.checklistItemHandler.deleteItem())

		// Creation workflow and generation proxy
		r.Post("/projects/wizard", handlers.wizardHandler.runWizard())
		r.Post("/generate-checklist", handlers.generateHandler.generateChecklist())

		// Project file endpoints
		r.Get("/project/{projectID}/files", handlers.fileHandler.listFiles())
		r.Post("/project/{projectID}/files", handlers.fileHandler.uploadFile())
		r.Delete("/project/{projectID}/files/{fileName}", handlers.fileHandler.deleteFile())
	})

	// Public routes, no authentication
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/public/project/{projectID}", handlers.publicHandler.getPublicProject())
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
	})
}
