package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/checkmate-app/backend/database"
	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/models"
	"github.com/checkmate-app/backend/progress"
)

type projectHandler struct {
	responder     Responder
	logger        zerolog.Logger
	projectRepo   *database.ProjectRepo
	checklistRepo *database.ChecklistRepo
	publicBaseURL string
}

func newProjectHandler(projectRepo *database.ProjectRepo, checklistRepo *database.ChecklistRepo, publicBaseURL string) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		projectRepo:   projectRepo,
		checklistRepo: checklistRepo,
		publicBaseURL: publicBaseURL,
	}
}

// ProjectCollection represents the authenticated user's project list
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total,omitempty"`
}

// createProjectRequest carries the manual-create payload. Deadline is a
// YYYY-MM-DD string, matching the wire contract of the original client.
type createProjectRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Technologies []string `json:"technologies"`
	Deadline     *string  `json:"deadline,omitempty"`
	IsPublic     bool     `json:"is_public"`
}

type updateProjectRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Type         *string   `json:"type,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	Deadline     *string   `json:"deadline,omitempty"`
	IsPublic     *bool     `json:"is_public,omitempty"`
}

// ProjectProgressResponse is the aggregate view backing the progress and
// summary cards plus the reminder banner. All figures are recomputed from
// the items; the stored percentage is not consulted.
type ProjectProgressResponse struct {
	Overall   progress.Summary             `json:"overall"`
	Breakdown []progress.ChecklistProgress `json:"breakdown"`
	Upcoming  progress.Upcoming            `json:"upcoming"`
	Completed bool                         `json:"completed"`
}

func parseDeadline(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, errs.NewInvalidFieldError("deadline", "expected YYYY-MM-DD")
	}
	return &parsed, nil
}

// getAllProjects retrieves the authenticated user's projects, newest
// first. The stored progress field rides along for dashboard display.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		projects, err := h.projectRepo.FindAllByUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID, scoped to its owner.
func (h projectHandler) getProject() http.HandlerFunc {
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

		project, err := h.projectRepo.FindByID(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project manually (outside the wizard).
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if req.Type == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("type"))
			return
		}
		if len(req.Technologies) == 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("technologies", "at least one technology is required"))
			return
		}

		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			ID:           uuid.New(),
			UserID:       userID,
			Name:         req.Name,
			Description:  req.Description,
			Type:         req.Type,
			Technologies: datatypes.NewJSONSlice(req.Technologies),
			Deadline:     deadline,
			IsPublic:     req.IsPublic,
			CreatedAt:    time.Now(),
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a partial field set onto an existing project,
// scoped to its owner.
func (h projectHandler) updateProject() http.HandlerFunc {
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

		// Verify project exists and belongs to the caller
		project, err := h.projectRepo.FindByID(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		var req updateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Name != nil {
			project.Name = *req.Name
		}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if req.Type != nil {
			project.Type = *req.Type
		}
		if req.Technologies != nil {
			project.Technologies = datatypes.NewJSONSlice(*req.Technologies)
		}
		if req.Deadline != nil {
			deadline, err := parseDeadline(req.Deadline)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.Deadline = deadline
		}
		if req.IsPublic != nil {
			project.IsPublic = *req.IsPublic
		}

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID; checklists and items cascade.
func (h projectHandler) deleteProject() http.HandlerFunc {
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

		// Verify project exists and belongs to the caller
		if _, err := h.projectRepo.FindByID(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		if err := h.projectRepo.Delete(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// shareProject flags the project public and returns its share link.
func (h projectHandler) shareProject() http.HandlerFunc {
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

		if err := h.projectRepo.SetPublic(projectID, userID, true); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("share", "project", err))
			return
		}

		publicURL := ""
		if h.publicBaseURL != "" {
			publicURL = fmt.Sprintf("%s/public/%s", strings.TrimSuffix(h.publicBaseURL, "/"), projectID)
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":     "success",
			"public_url": publicURL,
		})
	}
}

// getProjectProgress recomputes the full aggregate view from the items.
func (h projectHandler) getProjectProgress() http.HandlerFunc {
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

		// Verify project exists and belongs to the caller
		if _, err := h.projectRepo.FindByID(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		checklists, err := h.checklistRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "checklists", err))
			return
		}

		h.responder.WriteJSON(w, ProjectProgressResponse{
			Overall:   progress.Overall(checklists),
			Breakdown: progress.PerChecklistBreakdown(checklists),
			Upcoming:  progress.ClassifyUpcoming(checklists, time.Now()),
			Completed: progress.IsComplete(checklists),
		})
	}
}
