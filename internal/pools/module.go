// Package pools discovers swimming facilities around a coordinate and
// gives every one of them a display name, however thin its source tags.
package pools

import (
	apphttp "wym_site_backend/internal/http"
	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/maptiler"
	"wym_site_backend/platform/nominatim"
	"wym_site_backend/platform/overpass"
)

// Module wires the pool discovery HTTP route.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.PoolsConfig, log *logger.Logger) *Module {
	poi := overpass.New(cfg, log)
	resolver := NewNameResolver(nominatim.New(cfg, log), poi, maptiler.New(cfg, log))
	svc := NewService(poi, resolver, cfg.GetNameTagLocale(), log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "pools"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/pools", m.handler.Find)
}

var _ apphttp.Module = (*Module)(nil)
