package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/checkmate-app/backend/database"
	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/models"
)

type checklistHandler struct {
	responder     Responder
	logger        zerolog.Logger
	checklistRepo *database.ChecklistRepo
	projectRepo   *database.ProjectRepo
}

func newChecklistHandler(checklistRepo *database.ChecklistRepo, projectRepo *database.ProjectRepo) checklistHandler {
	logger := log.With().Str("handlerName", "checklistHandler").Logger()

	return checklistHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		checklistRepo: checklistRepo,
		projectRepo:   projectRepo,
	}
}

type checklistRequest struct {
	Title string `json:"title"`
}

// ChecklistCollection represents a project's checklists with nested items
type ChecklistCollection struct {
	Checklists []models.Checklist `json:"checklists"`
	Total      int                `json:"total,omitempty"`
}

// resolveOwnedChecklist loads a checklist and verifies the caller owns its
// project. Row-level security lived in the backing store before; here the
// check is explicit.
func (h checklistHandler) resolveOwnedChecklist(checklistID, userID uuid.UUID) (*models.Checklist, error) {
	checklist, err := h.checklistRepo.FindByID(checklistID)
	if err != nil {
		return nil, wrapDatabaseError("find", "checklist", err)
	}
	if _, err := h.projectRepo.FindByID(checklist.ProjectID, userID); err != nil {
		return nil, wrapDatabaseError("find", "project", err)
	}
	return checklist, nil
}

// getChecklists lists a project's checklists, oldest first, items nested
// in display order.
func (h checklistHandler) getChecklists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if _, err := h.projectRepo.FindByID(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		checklists, err := h.checklistRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "checklists", err))
			return
		}

		h.responder.WriteJSON(w, ChecklistCollection{
			Checklists: checklists,
			Total:      len(checklists),
		})
	}
}

// createChecklist adds a new, empty checklist to a project.
func (h checklistHandler) createChecklist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if _, err := h.projectRepo.FindByID(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		var req checklistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode checklist request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		checklist := models.Checklist{
			ID:        uuid.New(),
			ProjectID: projectID,
			Title:     req.Title,
			CreatedAt: time.Now(),
		}
		if err := h.checklistRepo.Add(&checklist); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "checklist", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, checklist)
	}
}

// updateChecklist renames a checklist.
func (h checklistHandler) updateChecklist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		checklistID, err := uuid.Parse(chi.URLParam(r, "checklistID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid checklistID"))
			return
		}

		checklist, err := h.resolveOwnedChecklist(checklistID, userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req checklistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode checklist request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		if err := h.checklistRepo.UpdateTitle(checklistID, req.Title); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "checklist", err))
			return
		}

		checklist.Title = req.Title
		h.responder.WriteJSON(w, checklist)
	}
}

// deleteChecklist removes a checklist; its items cascade in the database.
// Dropping a checklist changes the item denominator, so the stored
// progress is recomputed afterwards.
func (h checklistHandler) deleteChecklist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		checklistID, err := uuid.Parse(chi.URLParam(r, "checklistID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid checklistID"))
			return
		}

		checklist, err := h.resolveOwnedChecklist(checklistID, userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.checklistRepo.Delete(checklistID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "checklist", err))
			return
		}

		syncProjectProgress(h.logger, h.checklistRepo, h.projectRepo, checklist.ProjectID)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "checklist deleted successfully",
		})
	}
}
