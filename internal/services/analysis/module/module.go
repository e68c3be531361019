// Package module assembles the analysis service: adapters, cache, service
// core, and HTTP surface
package module

import (
	"commitmetrics/internal/adapters/github"
	"commitmetrics/internal/adapters/synthetic"
	"commitmetrics/internal/modkit"
	"commitmetrics/internal/modkit/httpkit"
	"commitmetrics/internal/services/analysis/domain"
	analysishttp "commitmetrics/internal/services/analysis/http"
	"commitmetrics/internal/services/analysis/repo"
	"commitmetrics/internal/services/analysis/service"
)

// Ports is the surface other modules may consume
type Ports struct {
	Service domain.ServicePort
}

// Module is the composed analysis module
type Module struct {
	built modkit.Built
	svc   domain.ServicePort
}

// New wires the analysis module from shared deps
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	client := github.NewClient(github.Options{
		BaseURL:    deps.Cfg.MayString("GITHUB_BASE_URL", ""),
		Token:      deps.Cfg.MayString("GITHUB_TOKEN", ""),
		MaxRetries: deps.Cfg.MayInt("GITHUB_MAX_RETRIES", 3),
		Timeout:    deps.Cfg.MayDuration("GITHUB_TIMEOUT", 0),
	})

	svc := service.New(
		github.NewAdapter(client),
		synthetic.New(),
		repo.NewCache(deps.KV),
		service.WithMaxCacheAge(deps.Cfg.MayDuration("CACHE_MAX_AGE", 0)),
	)

	h := analysishttp.NewHandlers(svc)
	built := modkit.Build(append([]modkit.Option{
		modkit.WithName("analysis"),
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
