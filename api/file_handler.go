package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/checkmate-app/backend/database"
	"github.com/checkmate-app/backend/errs"
	"github.com/checkmate-app/backend/services"
)

// maxUploadSize caps a single project file upload at 10MB.
const maxUploadSize = 10 << 20

type fileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	storage     *services.Storage
	projectRepo *database.ProjectRepo
}

func newFileHandler(storage *services.Storage, projectRepo *database.ProjectRepo) fileHandler {
	logger := log.With().Str("handlerName", "fileHandler").Logger()

	return fileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		storage:     storage,
		projectRepo: projectRepo,
	}
}

// projectFile is a stored file plus the URL it is served from.
type projectFile struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url"`
}

// FileCollection represents a project's stored files
type FileCollection struct {
	Files []projectFile `json:"files"`
	Total int           `json:"total,omitempty"`
}

func (h fileHandler) resolveOwnedProject(r *http.Request) (uuid.UUID, error) {
	userID, err := ctxGetUserID(r.Context())
	if err != nil {
		return uuid.Nil, errs.NewUnauthorizedError("not authenticated")
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}

	if _, err := h.projectRepo.FindByID(projectID, userID); err != nil {
		return uuid.Nil, wrapDatabaseError("find", "project", err)
	}
	return projectID, nil
}

// listFiles lists the files stored for a project, each with its public URL.
func (h fileHandler) listFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := h.resolveOwnedProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		objects, err := h.storage.List(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		files := make([]projectFile, len(objects))
		for i, object := range objects {
			files[i] = projectFile{
				Name:         object.Name,
				Size:         object.Size,
				LastModified: object.LastModified,
				URL:          h.storage.PublicURL(projectID, object.Name),
			}
		}

		h.responder.WriteJSON(w, FileCollection{
			Files: files,
			Total: len(files),
		})
	}
}

// uploadFile stores one multipart file under the project's prefix. An
// upload with the same name overwrites the previous object.
func (h fileHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := h.resolveOwnedProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.logger.Error().Err(err).Msg("Failed to parse multipart form")
			h.responder.WriteError(w, errs.NewBadRequestError("invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		if header.Filename == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "file name is required"))
			return
		}

		contentType := header.Header.Get("Content-Type")
		if err := h.storage.Upload(r.Context(), projectID, header.Filename, file, contentType); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, projectFile{
			Name:         header.Filename,
			Size:         header.Size,
			LastModified: time.Now(),
			URL:          h.storage.PublicURL(projectID, header.Filename),
		})
	}
}

// deleteFile removes a single file from the project's prefix.
func (h fileHandler) deleteFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := h.resolveOwnedProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fileName := chi.URLParam(r, "fileName")
		if fileName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("fileName"))
			return
		}

		if err := h.storage.Delete(r.Context(), projectID, fileName); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "file deleted successfully",
		})
	}
}
