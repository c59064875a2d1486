package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/checkmate-app/backend/database"
	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/models"
	"github.com/checkmate-app/backend/progress"
)

type publicHandler struct {
	responder     Responder
	logger        zerolog.Logger
	projectRepo   *database.ProjectRepo
	checklistRepo *database.ChecklistRepo
}

func newPublicHandler(projectRepo *database.ProjectRepo, checklistRepo *database.ChecklistRepo) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		projectRepo:   projectRepo,
		checklistRepo: checklistRepo,
	}
}

// PublicProjectResponse is the read-only shared view: the project, its
// checklists with nested items, and the recomputed progress aggregates.
type PublicProjectResponse struct {
	Project    *models.Project              `json:"project"`
	Checklists []models.Checklist           `json:"checklists"`
	Overall    progress.Summary             `json:"overall"`
	Breakdown  []progress.ChecklistProgress `json:"breakdown"`
	Completed  bool                         `json:"completed"`
}

// getPublicProject serves the unauthenticated share link. Only projects
// flagged public resolve; everything else is a plain 404 so the URL leaks
// nothing about private projects. A project whose flag was withdrawn
// stops resolving on the next request.
func (h publicHandler) getPublicProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project"))
			return
		}

		var (
			project    *models.Project
			checklists []models.Checklist
		)

		group, _ := errgroup.WithContext(r.Context())
		group.Go(func() error {
			var err error
			project, err = h.projectRepo.FindPublicByID(projectID)
			return err
		})
		group.Go(func() error {
			var err error
			checklists, err = h.checklistRepo.FindByProject(projectID)
			return err
		})
		if err := group.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, PublicProjectResponse{
			Project:    project,
			Checklists: checklists,
			Overall:    progress.Overall(checklists),
			Breakdown:  progress.PerChecklistBreakdown(checklists),
			Completed:  progress.IsComplete(checklists),
		})
	}
}
