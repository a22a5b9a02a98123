package stub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plannery/plannery-go/internal/domain"
)

// handlers serves the planning API wire contract over the in-memory state.
type handlers struct {
	state  *state
	logger *slog.Logger
}

// writeJSON encodes v with the status code. Encoding failures are logged;
// the status line is already on the wire at that point.
func (h *handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
}

// writeDetail sends the contract's error shape: {"detail": message}.
func (h *handlers) writeDetail(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, map[string]string{"detail": message})
}

// decode parses the request body into v, answering 422 on malformed JSON.
func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeDetail(w, r, http.StatusUnprocessableEntity, "malformed request body")
		return false
	}
	return true
}

func (h *handlers) listVenues(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.state.listVenues())
}

func (h *handlers) listTags(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.state.listTags())
}

func (h *handlers) listProjects(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.state.listProjects())
}

func (h *handlers) getProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.state.getProject(id)
	if !ok {
		h.writeDetail(w, r, http.StatusNotFound, "project not found")
		return
	}
	h.writeJSON(w, r, http.StatusOK, p)
}

func (h *handlers) createProject(w http.ResponseWriter, r *http.Request) {
	var payload domain.ProjectCreate
	if !h.decode(w, r, &payload) {
		return
	}
	if err := payload.Validate(); err != nil {
		h.writeDetail(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	venues, badID, ok := h.state.resolveVenues(payload.VenueIDs)
	if !ok {
		h.writeDetail(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("unknown venue id %q", badID))
		return
	}

	created := h.state.createProject(payload, venues)
	h.logger.InfoContext(r.Context(), "project created",
		slog.String("id", created.ID),
		slog.String("name", created.Name),
	)
	h.writeJSON(w, r, http.StatusCreated, created)
}

func (h *handlers) updateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.ProjectPatch
	if !h.decode(w, r, &patch) {
		return
	}

	var venues []domain.Venue
	replaceVenues := patch.VenueIDs != nil
	if replaceVenues {
		resolved, badID, ok := h.state.resolveVenues(*patch.VenueIDs)
		if !ok {
			h.writeDetail(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("unknown venue id %q", badID))
			return
		}
		venues = resolved
	}

	updated, ok := h.state.updateProject(id, patch, venues, replaceVenues)
	if !ok {
		h.writeDetail(w, r, http.StatusNotFound, "project not found")
		return
	}
	h.writeJSON(w, r, http.StatusOK, updated)
}

func (h *handlers) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.state.deleteProject(id) {
		h.writeDetail(w, r, http.StatusNotFound, "project not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listTemplates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.state.listTemplates())
}

func (h *handlers) createTemplate(w http.ResponseWriter, r *http.Request) {
	var payload domain.MissionTemplateCreate
	if !h.decode(w, r, &payload) {
		return
	}
	if err := payload.Validate(); err != nil {
		h.writeDetail(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tags, badID, ok := h.state.resolveTags(payload.TagIDs)
	if !ok {
		h.writeDetail(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("unknown tag id %q", badID))
		return
	}

	var defaultVenue *domain.Venue
	if payload.DefaultVenueID != nil {
		v, found := h.state.lookupVenue(*payload.DefaultVenueID)
		if !found {
			h.writeDetail(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("unknown venue id %q", *payload.DefaultVenueID))
			return
		}
		defaultVenue = &v
	}

	created := h.state.createTemplate(payload, tags, defaultVenue)
	h.logger.InfoContext(r.Context(), "mission template created",
		slog.String("id", created.ID),
		slog.String("name", created.Name),
	)
	h.writeJSON(w, r, http.StatusCreated, created)
}

func (h *handlers) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.MissionTemplatePatch
	if !h.decode(w, r, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		h.writeDetail(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var tags []domain.MissionTag
	replaceTags := patch.TagIDs != nil
	if replaceTags {
		resolved, badID, ok := h.state.resolveTags(*patch.TagIDs)
		if !ok {
			h.writeDetail(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("unknown tag id %q", badID))
			return
		}
		tags = resolved
	}

	var defaultVenue *domain.Venue
	if patch.DefaultVenueID != nil {
		v, found := h.state.lookupVenue(*patch.DefaultVenueID)
		if !found {
			h.writeDetail(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("unknown venue id %q", *patch.DefaultVenueID))
			return
		}
		defaultVenue = &v
	}

	updated, ok := h.state.updateTemplate(id, patch, tags, replaceTags, defaultVenue)
	if !ok {
		h.writeDetail(w, r, http.StatusNotFound, "mission template not found")
		return
	}
	h.writeJSON(w, r, http.StatusOK, updated)
}

func (h *handlers) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.state.deleteTemplate(id) {
		h.writeDetail(w, r, http.StatusNotFound, "mission template not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
