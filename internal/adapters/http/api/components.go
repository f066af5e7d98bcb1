package api

import (
	"net/http"
	"strings"

	"github.com/okian/pcforge/internal/adapters/repository"
	"github.com/okian/pcforge/internal/domain/model"
)

// ComponentHandler serves the component catalog.
type ComponentHandler struct {
	deps Catalog
}

// NewComponentHandler creates a new component handler.
func NewComponentHandler(deps Catalog) *ComponentHandler {
	return &ComponentHandler{deps: deps}
}

// HandleList handles GET /components requests.
func (h *ComponentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.listComponents"

	q, compatibleWith, err := parseListQuery(r)
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	page, err := h.deps.ListComponents(r.Context(), q, compatibleWith)
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleCreate handles POST /components requests.
func (h *ComponentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.createComponent"

	var c model.Component
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, wrap(op, err))
		return
	}
	created, err := h.deps.CreateComponent(r.Context(), c)
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleGet handles GET /components/{id} requests.
func (h *ComponentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.getComponent"

	c, err := h.deps.GetComponent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleUpdate handles PUT /components/{id} requests. The path id wins over
// any id in the body.
func (h *ComponentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.updateComponent"

	var c model.Component
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, wrap(op, err))
		return
	}
	c.ID = r.PathValue("id")
	updated, err := h.deps.UpdateComponent(r.Context(), c)
	if err != nil {
		writeError(w, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /components/{id} requests.
func (h *ComponentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.deleteComponent"

	if err := h.deps.DeleteComponent(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseListQuery(r *http.Request) (repository.Query, string, error) {
	const op = "api.parseListQuery"
	values := r.URL.Query()

	var q repository.Query
	if raw := strings.TrimSpace(values.Get("category")); raw != "" {
		cat, err := model.ParseCategory(raw)
		if err != nil {
			return q, "", wrap(op, err)
		}
		q.Filter.Category = cat
	}
	q.Filter.Purpose = values.Get("purpose")
	q.Filter.Query = values.Get("q")

	var ok bool
	if q.Filter.MinPrice, ok = floatParam(values, "min_price"); !ok {
		return q, "", badRequest(op, "min_price must be a number")
	}
	if q.Filter.MaxPrice, ok = floatParam(values, "max_price"); !ok {
		return q, "", badRequest(op, "max_price must be a number")
	}

	sort, ok := repository.ParseSortField(values.Get("sort"))
	if !ok {
		return q, "", badRequest(op, "sort must be one of score, price, rating")
	}
	q.Sort = sort
	if q.Ascending, ok = orderParam(values); !ok {
		return q, "", badRequest(op, "order must be asc or desc")
	}
	if q.Page, ok = intParam(values, "page"); !ok {
		return q, "", badRequest(op, "page must be a non-negative integer")
	}
	if q.Limit, ok = intParam(values, "limit"); !ok {
		return q, "", badRequest(op, "limit must be a non-negative integer")
	}

	return q, strings.TrimSpace(values.Get("compatible_with")), nil
}
