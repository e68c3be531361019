// Package http exposes saved sessions over REST
package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"commitmetrics/internal/modkit/httpkit"
	"commitmetrics/internal/services/sessions/domain"
)

// SaveRequest is the POST /sessions body
type SaveRequest struct {
	RepoPath string `json:"repoPath" validate:"required,url"`
	Range    string `json:"range" validate:"omitempty,oneof=week month all"`
}

// Handlers binds the session service to routes
type Handlers struct {
	svc domain.ServicePort
}

// NewHandlers builds the handler set
func NewHandlers(svc domain.ServicePort) *Handlers {
	return &Handlers{svc: svc}
}

// Mount registers the session routes on r
func (h *Handlers) Mount(r httpkit.Router) {
	r.Route("/sessions", func(rr httpkit.Router) {
		httpkit.PostJSON(rr, "/", h.save)
		httpkit.Get(rr, "/{id}", h.get)
		rr.Delete("/{id}", httpkit.Call(h.delete))
	})
}

func (h *Handlers) save(r *nethttp.Request, in SaveRequest) (any, error) {
	return h.svc.Save(r.Context(), in.RepoPath, in.Range)
}

func (h *Handlers) get(r *nethttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

func (h *Handlers) delete(r *nethttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
