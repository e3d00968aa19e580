package api

import (
	"net/http"

	"scancal/internal/config"
	"scancal/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Devices.Handler().Routes(),
		domain.Calibrations.Handler(cfg.API.MaxCaptureSizeBytes()).Routes(),
	)
}
