package api

import (
	"net/http"

	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

// EvaluateHandler serves the stateless engine endpoints.
type EvaluateHandler struct {
	deps Evaluator
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps Evaluator) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

type evaluateRequest struct {
	Category model.Category `json:"category"`
	Specs    specs.Specs    `json:"specs"`
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"

	var req evaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, wrap(op, err))
		return
	}
	if req.Category == "" {
		writeError(w, badRequest(op, "missing category"))
		return
	}

	res, ok := h.deps.Evaluate(r.Context(), req.Category, req.Specs)
	if !ok {
		writeError(w, wrap(op, unsupported(req.Category)))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type compatibilityRequest struct {
	Components map[string]model.Component `json:"components"`
}

// HandleCompatibility handles POST /compatibility requests. Issues are part
// of a successful response.
func (h *EvaluateHandler) HandleCompatibility(w http.ResponseWriter, r *http.Request) {
	const op = "api.compatibility"

	var req compatibilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, wrap(op, err))
		return
	}

	sel := make(model.Selection, len(req.Components))
	for key, c := range req.Components {
		cat, err := model.ParseCategory(key)
		if err != nil {
			writeError(w, wrap(op, err))
			return
		}
		if c.Category == "" {
			c.Category = cat
		}
		if c.Category != cat {
			writeError(w, badRequest(op, "component under %s has type %s", cat, c.Category))
			return
		}
		if _, dup := sel[cat]; dup {
			writeError(w, badRequest(op, "more than one component for %s", cat))
			return
		}
		sel[cat] = c
	}

	writeJSON(w, http.StatusOK, h.deps.CheckSelection(r.Context(), sel))
}
