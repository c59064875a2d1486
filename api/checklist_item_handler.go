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
	"github.com/checkmate-app/backend/progress"
)

type checklistItemHandler struct {
	responder     Responder
	logger        zerolog.Logger
	itemRepo      *database.ChecklistItemRepo
	checklistRepo *database.ChecklistRepo
	projectRepo   *database.ProjectRepo
}

func newChecklistItemHandler(itemRepo *database.ChecklistItemRepo, checklistRepo *database.ChecklistRepo, projectRepo *database.ProjectRepo) checklistItemHandler {
	logger := log.With().Str("handlerName", "checklistItemHandler").Logger()

	return checklistItemHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		itemRepo:      itemRepo,
		checklistRepo: checklistRepo,
		projectRepo:   projectRepo,
	}
}

type createItemRequest struct {
	Description string  `json:"description"`
	DueDate     *string `json:"due_date,omitempty"`
	IsCritical  bool    `json:"is_critical"`
	OrderIndex  int     `json:"order_index"`
}

type updateItemRequest struct {
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	IsCritical  *bool   `json:"is_critical,omitempty"`
}

type toggleItemRequest struct {
	Checked bool `json:"checked"`
}

// resolveOwnedItem loads an item and walks item -> checklist -> project to
// verify the caller owns it. Returns the owning project ID for the
// progress recompute.
func (h checklistItemHandler) resolveOwnedItem(itemID, userID uuid.UUID) (*models.ChecklistItem, uuid.UUID, error) {
	item, err := h.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, uuid.Nil, wrapDatabaseError("find", "checklist item", err)
	}
	checklist, err := h.checklistRepo.FindByID(item.ChecklistID)
	if err != nil {
		return nil, uuid.Nil, wrapDatabaseError("find", "checklist", err)
	}
	if _, err := h.projectRepo.FindByID(checklist.ProjectID, userID); err != nil {
		return nil, uuid.Nil, wrapDatabaseError("find", "project", err)
	}
	return item, checklist.ProjectID, nil
}

// syncProjectProgress re-reads every checklist of the project and persists
// the recomputed percentage onto the project row. Called after any
// mutation that changes the checked count or the item denominator so the
// dashboard can read the cached value without recomputing. A failed
// recompute is logged, not surfaced: the triggering mutation itself
// already succeeded.
func syncProjectProgress(logger zerolog.Logger, checklistRepo *database.ChecklistRepo, projectRepo *database.ProjectRepo, projectID uuid.UUID) {
	checklists, err := checklistRepo.FindByProject(projectID)
	if err != nil {
		logger.Error().Err(err).Str("projectId", projectID.String()).Msg("Failed to reload checklists for progress recompute")
		return
	}
	percentage := progress.Percentage(progress.Flatten(checklists))
	if err := projectRepo.UpdateProgress(projectID, percentage); err != nil {
		logger.Error().Err(err).Str("projectId", projectID.String()).Msg("Failed to persist recomputed progress")
	}
}

// createItem adds an item to a checklist.
func (h checklistItemHandler) createItem() http.HandlerFunc {
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

		checklist, err := h.checklistRepo.FindByID(checklistID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "checklist", err))
			return
		}
		if _, err := h.projectRepo.FindByID(checklist.ProjectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		var req createItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode item request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		if req.Description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}

		dueDate, err := parseDeadline(req.DueDate)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item := models.ChecklistItem{
			ID:          uuid.New(),
			ChecklistID: checklistID,
			Description: req.Description,
			Checked:     false,
			OrderIndex:  req.OrderIndex,
			DueDate:     dueDate,
			IsCritical:  req.IsCritical,
			CreatedAt:   time.Now(),
		}
		if err := h.itemRepo.Add(&item); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "checklist item", err))
			return
		}

		// A new item changes the denominator of the cached percentage.
		syncProjectProgress(h.logger, h.checklistRepo, h.projectRepo, checklist.ProjectID)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, item)
	}
}

// toggleItem sets an item's checked state and recomputes the owning
// project's cached progress.
func (h checklistItemHandler) toggleItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid itemID"))
			return
		}

		item, projectID, err := h.resolveOwnedItem(itemID, userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req toggleItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode toggle request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := h.itemRepo.SetChecked(itemID, req.Checked); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "checklist item", err))
			return
		}

		syncProjectProgress(h.logger, h.checklistRepo, h.projectRepo, projectID)

		item.Checked = req.Checked
		h.responder.WriteJSON(w, item)
	}
}

// updateItem applies a partial update: description, due date, criticality.
func (h checklistItemHandler) updateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid itemID"))
			return
		}

		item, _, err := h.resolveOwnedItem(itemID, userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode item request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Description != nil {
			if *req.Description == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
				return
			}
			if err := h.itemRepo.UpdateDescription(itemID, *req.Description); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "checklist item", err))
				return
			}
			item.Description = *req.Description
		}

		if req.DueDate != nil {
			dueDate, err := parseDeadline(req.DueDate)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if err := h.itemRepo.UpdateDueDate(itemID, dueDate); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "checklist item", err))
				return
			}
			item.DueDate = dueDate
		}

		if req.IsCritical != nil {
			if err := h.itemRepo.SetCritical(itemID, *req.IsCritical); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "checklist item", err))
				return
			}
			item.IsCritical = *req.IsCritical
		}

		h.responder.WriteJSON(w, item)
	}
}

// deleteItem removes an item and recomputes the owning project's cached
// progress, since the denominator changed.
func (h checklistItemHandler) deleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid itemID"))
			return
		}

		_, projectID, err := h.resolveOwnedItem(itemID, userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.itemRepo.Delete(itemID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "checklist item", err))
			return
		}

		syncProjectProgress(h.logger, h.checklistRepo, h.projectRepo, projectID)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "checklist item deleted successfully",
		})
	}
}
