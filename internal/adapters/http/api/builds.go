package api

import (
	"net/http"
	"strings"

	"github.com/okian/pcforge/internal/domain/model"
)

// BuildHandler serves saved builds.
type BuildHandler struct {
	deps Builds
}

// NewBuildHandler creates a new build handler.
func NewBuildHandler(deps Builds) *BuildHandler {
	return &BuildHandler{deps: deps}
}

type createBuildRequest struct {
	Name        string `json:"name"`
	FromBuildID string `json:"from_build_id"`
}

type addComponentRequest struct {
	ComponentID string `json:"component_id"`
}

type buildList struct {
	Items []*model.Build `json:"items"`
	Total int            `json:"total"`
}

// HandleList handles GET /builds requests.
func (h *BuildHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.listBuilds"

	builds, err := h.deps.ListBuilds(r.Context())
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	if builds == nil {
		builds = []*model.Build{}
	}
	writeJSON(w, http.StatusOK, buildList{Items: builds, Total: len(builds)})
}

// HandleCreate handles POST /builds requests.
func (h *BuildHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.createBuild"

	var req createBuildRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, wrap(op, err))
		return
	}
	report, err := h.deps.CreateBuild(r.Context(), req.Name, strings.TrimSpace(req.FromBuildID))
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// HandleGet handles GET /builds/{id} requests.
func (h *BuildHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.getBuild"

	report, err := h.deps.GetBuild(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleDelete handles DELETE /builds/{id} requests.
func (h *BuildHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.deleteBuild"

	if err := h.deps.DeleteBuild(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAdd handles PUT /builds/{id}/components requests.
func (h *BuildHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.addToBuild"

	var req addComponentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, wrap(op, err))
		return
	}
	id := strings.TrimSpace(req.ComponentID)
	if id == "" {
		writeError(w, badRequest(op, "missing component_id"))
		return
	}
	report, err := h.deps.AddToBuild(r.Context(), r.PathValue("id"), id)
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleRemove handles DELETE /builds/{id}/components/{category} requests.
func (h *BuildHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	const op = "api.removeFromBuild"

	cat, err := model.ParseCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	report, err := h.deps.RemoveFromBuild(r.Context(), r.PathValue("id"), cat)
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
