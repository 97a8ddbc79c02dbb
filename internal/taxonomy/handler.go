package taxonomy

import (
	"log/slog"
	"net/http"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/handlers"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/pagination"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/routes"
)

// Handler provides HTTP endpoints for taxonomy operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "taxonomy"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for taxonomy endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/taxonomy",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/import", Handler: h.Import},
		},
	}
}

// List returns a paginated list of taxonomy entries with optional
// query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single taxonomy entry by its ID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	entry, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entry)
}

// Import loads taxonomy entries from a CSV request body.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	count, err := h.sys.Import(r.Context(), r.Body)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"imported": count})
}
