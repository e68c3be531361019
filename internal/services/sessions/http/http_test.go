package http

import (
	"bytes"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "commitmetrics/internal/platform/net/http"
	"commitmetrics/internal/platform/store"
	"commitmetrics/internal/services/sessions/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	NewHandlers(service.New(store.NewMemoryKV())).Mount(phttp.AdaptChi(mux))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp, err := nethttp.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader(`{"repoPath":"https://github.com/octo/demo","range":"week"}`))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, buf.String())
	}

	// pull the generated id out of the envelope
	body := buf.String()
	i := strings.Index(body, `"id":"`)
	if i < 0 {
		t.Fatalf("no id in %s", body)
	}
	id := body[i+len(`"id":"`):]
	id = id[:strings.IndexByte(id, '"')]

	got, err := nethttp.Get(srv.URL + "/sessions/" + id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Body.Close()
	if got.StatusCode != nethttp.StatusOK {
		t.Fatalf("get status = %d", got.StatusCode)
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := nethttp.Get(srv.URL + "/sessions/nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSessionSaveRejectsBadBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := nethttp.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader(`{"repoPath":"https://github.com/octo/demo","range":"decade"}`))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a bad range", resp.StatusCode)
	}
}
