// Package subscribe relays newsletter signups to Mailchimp, with a
// best-effort background retry queue for transport failures.
package subscribe

import (
	"wym_site_backend/internal/events"
	apphttp "wym_site_backend/internal/http"
	"wym_site_backend/internal/scheduler"
	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/mailchimp"
	"wym_site_backend/platform/validator"
)

// Module wires the newsletter signup HTTP route.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.MailchimpConfig, val *validator.Validator, queue scheduler.RelayScheduler, bus events.Bus, log *logger.Logger) *Module {
	svc := NewService(mailchimp.New(cfg, log), val, queue, bus, log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "subscribe"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/subscribe", m.handler.Subscribe)
}

var _ apphttp.Module = (*Module)(nil)
