package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/services"
)

type generateHandler struct {
	responder Responder
	logger    zerolog.Logger
	generator services.ChecklistGenerator
	timeout   time.Duration
}

func newGenerateHandler(generator services.ChecklistGenerator, timeout time.Duration) generateHandler {
	logger := log.With().Str("handlerName", "generateHandler").Logger()

	if timeout <= 0 {
		timeout = services.DefaultGenerationTimeout
	}

	return generateHandler{
		responder: NewResponder(logger),
		logger:    logger,
		generator: generator,
		timeout:   timeout,
	}
}

type generateRequest struct {
	Project struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Type         string   `json:"type"`
		Technologies []string `json:"technologies"`
		Objectives   string   `json:"objectives"`
		Deadline     *string  `json:"deadline,omitempty"`
	} `json:"project"`
}

type generateResponse struct {
	Checklist []string `json:"checklist"`
}

// generateChecklist proxies a single generation call to the model and
// returns the parsed item descriptions. Nothing is persisted; the caller
// decides what to do with the suggestions.
func (h generateHandler) generateChecklist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ctxGetUserID(r.Context()); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode generate request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Project.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if req.Project.Type == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("type"))
			return
		}
		if len(req.Project.Technologies) == 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("technologies", "at least one technology is required"))
			return
		}

		brief := services.ProjectBrief{
			Name:         req.Project.Name,
			Description:  req.Project.Description,
			Type:         req.Project.Type,
			Technologies: req.Project.Technologies,
			Objectives:   req.Project.Objectives,
		}
		if req.Project.Deadline != nil {
			brief.Deadline = *req.Project.Deadline
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		items, err := h.generator.Generate(ctx, brief)
		if err != nil {
			h.logger.Error().Err(err).Str("project", brief.Name).Msg("Checklist generation failed")
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, generateResponse{Checklist: items})
	}
}
