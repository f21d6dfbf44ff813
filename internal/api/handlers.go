package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hyperengineering/statefacts/internal/states"
	"github.com/hyperengineering/statefacts/internal/types"
)

// maxBodyBytes caps fact mutation request bodies.
const maxBodyBytes = 1 << 20

// Handler implements the API handlers
type Handler struct {
	svc     *states.Service
	version string
}

// NewHandler creates a new Handler over the fact service
func NewHandler(svc *states.Service, version string) *Handler {
	return &Handler{
		svc:     svc,
		version: version,
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stateCount, overlayCount, err := h.svc.Stats(r.Context())
	if err != nil {
		slog.Error("health check failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	WriteJSON(w, http.StatusOK, types.HealthResponse{
		Status:       "healthy",
		Version:      h.version,
		StateCount:   stateCount,
		OverlayCount: overlayCount,
	})
}

// ListStates handles GET /states
func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	contig := states.ParseContiguity(r.URL.Query().Get("contig"))
	merged, err := h.svc.MergedList(r.Context(), contig)
	if err != nil {
		MapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, merged)
}

// GetState handles GET /states/{state}
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	merged, err := h.svc.MergedOne(r.Context(), MustStateCode(r.Context()))
	if err != nil {
		MapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, merged)
}

// RandomFact handles GET /states/{state}/funfact
func (h *Handler) RandomFact(w http.ResponseWriter, r *http.Request) {
	fact, err := h.svc.RandomFact(r.Context(), MustStateCode(r.Context()))
	if err != nil {
		MapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, fact)
}

// AppendFacts handles POST /states/{state}/funfact
func (h *Handler) AppendFacts(w http.ResponseWriter, r *http.Request) {
	var req types.AppendFactsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.svc.AppendFacts(r.Context(), MustStateCode(r.Context()), req.FunFacts)
	if err != nil {
		MapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// ReplaceFact handles PATCH /states/{state}/funfact
func (h *Handler) ReplaceFact(w http.ResponseWriter, r *http.Request) {
	var req types.ReplaceFactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.svc.ReplaceFact(r.Context(), MustStateCode(r.Context()), req)
	if err != nil {
		MapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// DeleteFact handles DELETE /states/{state}/funfact
func (h *Handler) DeleteFact(w http.ResponseWriter, r *http.Request) {
	var req types.DeleteFactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.DeleteFact(r.Context(), MustStateCode(r.Context()), req)
	if err != nil {
		MapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// Capital handles GET /states/{state}/capital
func (h *Handler) Capital(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Capital(MustStateCode(r.Context()))
	writeProjection(w, resp, err)
}

// Nickname handles GET /states/{state}/nickname
func (h *Handler) Nickname(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Nickname(MustStateCode(r.Context()))
	writeProjection(w, resp, err)
}

// Population handles GET /states/{state}/population
func (h *Handler) Population(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Population(MustStateCode(r.Context()))
	writeProjection(w, resp, err)
}

// Admission handles GET /states/{state}/admission
func (h *Handler) Admission(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Admission(MustStateCode(r.Context()))
	writeProjection(w, resp, err)
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "404 Not Found")
}

// MethodNotAllowed answers known paths requested with an unsupported method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "405 Method Not Allowed")
}

func writeProjection(w http.ResponseWriter, resp any, err error) {
	if err != nil {
		MapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// decodeBody decodes a JSON request body into v. An empty body leaves v at
// its zero value so field validation reports what is missing. Returns false
// after writing a 400 for malformed JSON or data after the first value.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
