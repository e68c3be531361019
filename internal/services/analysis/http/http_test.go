package http

import (
	"bytes"
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	perr "commitmetrics/internal/platform/errors"
	phttp "commitmetrics/internal/platform/net/http"
	"commitmetrics/internal/services/analysis/domain"
)

type fakeService struct {
	analyzeErr error
}

func (f *fakeService) Analyze(ctx context.Context, id string) (domain.AnalysisResult, domain.Provenance, error) {
	if f.analyzeErr != nil {
		return domain.AnalysisResult{}, "", f.analyzeErr
	}
	return domain.AnalysisResult{
		RepositoryID: id,
		Commits: []domain.Commit{
			{Hash: "abc1234", Author: "alice", Date: time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC), Message: "feat: x"},
		},
		Languages: map[string]int64{"Go": 100},
		Authors:   []string{"alice"},
	}, domain.ProvenancePrimary, nil
}

func (f *fakeService) GetSummary(ctx context.Context) (domain.Summary, domain.Provenance, error) {
	return domain.Summary{}, "", perr.ErrNoData
}

func (f *fakeService) GetCommits(ctx context.Context, rangeLabel, author string) ([]domain.Commit, domain.Provenance, error) {
	if rangeLabel == "fortnight" {
		return nil, "", perr.InvalidArgf("unrecognized time range %q", rangeLabel)
	}
	return []domain.Commit{}, domain.ProvenanceCache, nil
}

func (f *fakeService) GetLanguages(ctx context.Context) (map[string]int64, domain.Provenance, error) {
	return map[string]int64{"Go": 100}, domain.ProvenancePrimary, nil
}

func (f *fakeService) GetTopFiles(ctx context.Context, limit int) ([]domain.FileChange, domain.Provenance, error) {
	return []domain.FileChange{{Filename: "main.go", Changes: limit}}, domain.ProvenanceCache, nil
}

func (f *fakeService) GetActivitySeries(ctx context.Context, rangeLabel string) ([]domain.ActivityPoint, error) {
	return []domain.ActivityPoint{{Date: "2025-05-14", Commits: 3}}, nil
}

func (f *fakeService) ExportReport(ctx context.Context, id, rangeLabel string) ([]byte, error) {
	return []byte("%PDF-1.4\nfake\n%%EOF\n"), nil
}

func newTestServer(t *testing.T, svc domain.ServicePort) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	NewHandlers(svc).Mount(phttp.AdaptChi(mux))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	resp, err := nethttp.Post(srv.URL+"/repo/analyze", "application/json",
		strings.NewReader(`{"repoPath":"https://github.com/octo/demo"}`))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	for _, want := range []string{`"provenance":"primary"`, `"repositoryId":"https://github.com/octo/demo"`, `"hash":"abc1234"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("body %s missing %s", buf.String(), want)
		}
	}
}

func TestAnalyzeEndpointRejectsBadBody(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	resp, err := nethttp.Post(srv.URL+"/repo/analyze", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a missing repoPath", resp.StatusCode)
	}
}

func TestSummaryEndpointNoData(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	resp, err := nethttp.Get(srv.URL + "/repo/summary")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Fatalf("status = %d, want 404 before any analyze", resp.StatusCode)
	}
}

func TestCommitsEndpointBadRange(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	resp, err := nethttp.Get(srv.URL + "/repo/commits?range=fortnight")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != nethttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 for an unrecognized range", resp.StatusCode)
	}
}

func TestExportEndpointServesPDF(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	resp, err := nethttp.Post(srv.URL+"/export/pdf", "application/json",
		strings.NewReader(`{"repoPath":"https://github.com/octo/demo","range":"week"}`))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Error("body is not a PDF artifact")
	}
}
