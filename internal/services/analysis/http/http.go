// Package http exposes the analysis service over REST
package http

import (
	nethttp "net/http"
	"strconv"

	"commitmetrics/internal/modkit/httpkit"
	"commitmetrics/internal/services/analysis/domain"
)

// AnalyzeRequest is the POST /repo/analyze body
type AnalyzeRequest struct {
	RepoPath string `json:"repoPath" validate:"required,url"`
}

// ExportRequest is the POST /export/pdf body
type ExportRequest struct {
	RepoPath string `json:"repoPath" validate:"required,url"`
	Range    string `json:"range" validate:"omitempty,oneof=week month all"`
}

// analysisResponse wraps a result with its provenance so callers can tell
// fresh, synthetic and cached data apart
type analysisResponse struct {
	Provenance domain.Provenance     `json:"provenance"`
	Result     domain.AnalysisResult `json:"result"`
}

type summaryResponse struct {
	Provenance domain.Provenance `json:"provenance"`
	Summary    domain.Summary    `json:"summary"`
}

type commitsResponse struct {
	Provenance domain.Provenance `json:"provenance"`
	Commits    []domain.Commit   `json:"commits"`
}

type languagesResponse struct {
	Provenance domain.Provenance `json:"provenance"`
	Languages  map[string]int64  `json:"languages"`
}

type topFilesResponse struct {
	Provenance domain.Provenance   `json:"provenance"`
	Files      []domain.FileChange `json:"files"`
}

type activityResponse struct {
	Series []domain.ActivityPoint `json:"series"`
}

// Handlers binds the service port to routes
type Handlers struct {
	svc domain.ServicePort
}

// NewHandlers builds the handler set
func NewHandlers(svc domain.ServicePort) *Handlers {
	return &Handlers{svc: svc}
}

// Mount registers the analysis routes on r
func (h *Handlers) Mount(r httpkit.Router) {
	r.Route("/repo", func(rr httpkit.Router) {
		rr.Post("/analyze", httpkit.JSON(h.analyze))
		rr.Get("/summary", httpkit.Call(h.summary))
		rr.Get("/commits", httpkit.Call(h.commits))
		rr.Get("/languages", httpkit.Call(h.languages))
		rr.Get("/top-files", httpkit.Call(h.topFiles))
		rr.Get("/activity", httpkit.Call(h.activity))
	})
	r.Post("/export/pdf", httpkit.JSON(h.export))
}

func (h *Handlers) analyze(r *nethttp.Request, in AnalyzeRequest) (any, error) {
	res, prov, err := h.svc.Analyze(r.Context(), in.RepoPath)
	if err != nil {
		return nil, err
	}
	return analysisResponse{Provenance: prov, Result: res}, nil
}

func (h *Handlers) summary(r *nethttp.Request) (any, error) {
	sum, prov, err := h.svc.GetSummary(r.Context())
	if err != nil {
		return nil, err
	}
	return summaryResponse{Provenance: prov, Summary: sum}, nil
}

func (h *Handlers) commits(r *nethttp.Request) (any, error) {
	q := r.URL.Query()
	commits, prov, err := h.svc.GetCommits(r.Context(), q.Get("range"), q.Get("author"))
	if err != nil {
		return nil, err
	}
	return commitsResponse{Provenance: prov, Commits: commits}, nil
}

func (h *Handlers) languages(r *nethttp.Request) (any, error) {
	langs, prov, err := h.svc.GetLanguages(r.Context())
	if err != nil {
		return nil, err
	}
	return languagesResponse{Provenance: prov, Languages: langs}, nil
}

func (h *Handlers) topFiles(r *nethttp.Request) (any, error) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	files, prov, err := h.svc.GetTopFiles(r.Context(), limit)
	if err != nil {
		return nil, err
	}
	return topFilesResponse{Provenance: prov, Files: files}, nil
}

func (h *Handlers) activity(r *nethttp.Request) (any, error) {
	series, err := h.svc.GetActivitySeries(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		return nil, err
	}
	return activityResponse{Series: series}, nil
}

func (h *Handlers) export(r *nethttp.Request, in ExportRequest) (any, error) {
	pdf, err := h.svc.ExportReport(r.Context(), in.RepoPath, in.Range)
	if err != nil {
		return nil, err
	}
	return httpkit.Blob(pdf, "application/pdf", "commit-metrics-report.pdf"), nil
}
