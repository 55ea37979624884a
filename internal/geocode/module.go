// Package geocode implements the caching reverse-geocode proxy that backs
// the map widget's enrichment lookups.
package geocode

import (
	apphttp "wym_site_backend/internal/http"
	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/maptiler"
)

// Module wires the geocode proxy HTTP route.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.GeocodeConfig, log *logger.Logger) *Module {
	cache := NewCache(cfg.GetGeocodeCacheTTL())
	svc := NewService(cache, maptiler.New(cfg, log), log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "geocode"
}

// RegisterRoutes keeps the widget's historical /api/geocode path rather
// than the versioned group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/api/geocode", m.handler.Lookup)
}

var _ apphttp.Module = (*Module)(nil)
