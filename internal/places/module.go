// Package places backs the search box: autocomplete suggestions while the
// user types, and a one-shot forward geocode when they submit free text.
package places

import (
	apphttp "wym_site_backend/internal/http"
	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/nominatim"
	"wym_site_backend/platform/photon"
)

// Module wires the place search HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.PlacesConfig, log *logger.Logger) *Module {
	svc := NewService(photon.New(cfg, log), nominatim.New(cfg, log), log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "places"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/places")
	group.GET("/suggest", m.handler.Suggest)
	group.GET("/geocode", m.handler.Geocode)
}

var _ apphttp.Module = (*Module)(nil)
