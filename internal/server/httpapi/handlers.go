package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/server/auth"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.explorer.List(r.Context(), r.URL.Query().Get("dir"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: entries})
}

func (s *Server) handleFileInfo(w http.ResponseWriter, r *http.Request) {
	entry, err := s.explorer.FileInfo(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: entry})
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, auth.LevelModerate) {
		return
	}

	var req struct {
		Directory string `json:"directory"`
		Name      string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	entry, err := s.explorer.CreateFolder(r.Context(), req.Directory, req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, envelope{Success: true, Data: entry})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, auth.LevelAdminister) {
		return
	}

	res, err := s.explorer.DeleteItem(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: res.Success, Message: res.Message})
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, auth.LevelModerate) {
		return
	}

	var req struct {
		OldPath string `json:"old_path"`
		NewPath string `json:"new_path"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.explorer.RenameItem(r.Context(), req.OldPath, req.NewPath)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: res.Success, Data: res.Entry})
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, auth.LevelModerate) {
		return
	}

	var req struct {
		Filename    string `json:"filename"`
		ContentType string `json:"content_type"`
		Directory   string `json:"directory"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	ticket, err := s.explorer.GenerateUploadURL(r.Context(), req.Filename, req.ContentType, req.Directory)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: ticket})
}

func (s *Server) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var expires time.Duration
	if raw := q.Get("expires"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, "invalid expires")
			return
		}
		expires = d
	}
	force := q.Get("force") == "true"

	url, err := s.explorer.GetDownloadURL(r.Context(), q.Get("path"), expires, force)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]string{"url": url}})
}

// authorize runs the role gate for mutating handlers and writes the refusal
// itself. Returns false when the handler must stop.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, level auth.Level) bool {
	err := s.authorizer.Authorize(r.Context(), adminIDFromContext(r.Context()), level)
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeError(w, r, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		s.writeError(w, r, http.StatusForbidden, "insufficient role")
	default:
		s.logger.Error(r.Context(), "authorization check failed", "error", err.Error())
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
	return false
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Validation
// and conflicts are caller mistakes; storage unavailability is a bad
// gateway, not our fault.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorStorageUnavailable):
		s.logger.Error(r.Context(), "storage failure", "error", err.Error())
		s.writeError(w, r, http.StatusBadGateway, "storage unavailable")
	default:
		s.logger.Error(r.Context(), "unexpected failure", "error", err.Error())
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, envelope{Success: false, Message: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
