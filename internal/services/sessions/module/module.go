// Package module assembles the sessions service
package module

import (
	"commitmetrics/internal/modkit"
	"commitmetrics/internal/modkit/httpkit"
	"commitmetrics/internal/services/sessions/domain"
	sessionshttp "commitmetrics/internal/services/sessions/http"
	"commitmetrics/internal/services/sessions/service"
)

// Ports is the surface other modules may consume
type Ports struct {
	Service domain.ServicePort
}

// Module is the composed sessions module
type Module struct {
	built modkit.Built
	svc   domain.ServicePort
}

// New wires the sessions module from shared deps
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	svc := service.New(deps.KV)
	h := sessionshttp.NewHandlers(svc)

	built := modkit.Build(append([]modkit.Option{
		modkit.WithName("sessions"),
		modkit.WithPorts(Ports{Service: svc}),
		modkit.WithRegister(func(r httpkit.Router) { h.Mount(r) }),
	}, opts...)...)

	return &Module{built: built, svc: svc}
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Ports exposes the service port for cross-module wiring
func (m *Module) Ports() any { return Ports{Service: m.svc} }

// MountRoutes attaches the module's routes
func (m *Module) MountRoutes(r httpkit.Router) {
	if len(m.built.Mw) > 0 {
		r.Use(m.built.Mw...)
	}
	m.built.Register(r)
}
