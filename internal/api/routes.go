package api

import (
	"net/http"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/config"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Inputs.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Taxonomy.Handler().Routes(),
		domain.Profile.Handler().Routes(),
		domain.Runs.Handler().Routes(),
	)
}
