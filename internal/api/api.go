// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/config"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/infrastructure"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/middleware"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	spec, err := specHandler(cfg)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", spec)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
