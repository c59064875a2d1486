package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/services"
)

type wizardHandler struct {
	responder Responder
	logger    zerolog.Logger
	wizard    *services.ProjectWizard
}

func newWizardHandler(wizard *services.ProjectWizard) wizardHandler {
	logger := log.With().Str("handlerName", "wizardHandler").Logger()

	return wizardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		wizard:    wizard,
	}
}

type wizardRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Technologies []string `json:"technologies"`
	Objectives   string   `json:"objectives"`
	Deadline     *string  `json:"deadline,omitempty"`
}

// wizardResponse mirrors WizardResult, with a human-readable warning when
// the project was created but its checklist was not.
type wizardResponse struct {
	services.WizardResult
	Warning string `json:"warning,omitempty"`
}

// runWizard handles final wizard submission: validate, generate, persist.
// A partial failure still returns 201; the project exists and the caller
// is told to finish the checklist manually.
func (h wizardHandler) runWizard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		var req wizardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode wizard request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.wizard.Run(r.Context(), userID, services.WizardInput{
			Name:         req.Name,
			Description:  req.Description,
			Type:         req.Type,
			Technologies: req.Technologies,
			Objectives:   req.Objectives,
			Deadline:     deadline,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := wizardResponse{WizardResult: *result}
		if result.PartialFailure {
			response.Warning = result.PartialReason
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, response)
	}
}
