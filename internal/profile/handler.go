package profile

import (
	"log/slog"
	"net/http"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/handlers"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/routes"
)

// Handler provides HTTP endpoints for profile operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "profile"),
	}
}

// Routes returns the route group definition for profile endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/profiles",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{namespace}", Handler: h.List},
			{Method: "GET", Pattern: "/{namespace}/summary", Handler: h.Summarize},
			{Method: "GET", Pattern: "/{namespace}/records/{key}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/{namespace}/records/{key}", Handler: h.Delete},
		},
	}
}

// List returns a namespace's decay-adjusted profile records with
// optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	namespace := r.PathValue("namespace")
	filters := FiltersFromQuery(r.URL.Query())

	records, err := h.sys.List(r.Context(), namespace, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Summarize returns per-section aggregates for a namespace's profile.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sys.Summarize(r.Context(), r.PathValue("namespace"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Find returns a single profile record by namespace and key.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	record, err := h.sys.Find(r.Context(), r.PathValue("namespace"), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}

// Delete removes a profile record by namespace and key.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("namespace"), r.PathValue("key")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
