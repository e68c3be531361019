package errors_test

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	perr "commitmetrics/internal/platform/errors"
)

func TestNewWrapAndUnwrap(t *testing.T) {
	cause := stderrs.New("boom")
	err := perr.Wrapf(cause, perr.ErrorCodeTransient, "github fetch failed")

	if !stderrs.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("expected *Error")
	}
	if e.Code() != perr.ErrorCodeTransient {
		t.Fatalf("code: got %d", e.Code())
	}
	if got := err.Error(); got != "github fetch failed: boom" {
		t.Fatalf("message: got %q", got)
	}
}

func TestCodeOfForeignError(t *testing.T) {
	if perr.CodeOf(fmt.Errorf("plain")) != perr.ErrorCodeUnknown {
		t.Fatalf("foreign errors default to unknown")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perr.InvalidRepof("bad url"), http.StatusUnprocessableEntity},
		{perr.Offlinef("offline"), http.StatusServiceUnavailable},
		{perr.Transientf("dial failed"), http.StatusServiceUnavailable},
		{perr.RateLimitedf("slow down"), http.StatusTooManyRequests},
		{perr.Protocolf("upstream said no"), http.StatusBadGateway},
		{perr.ErrNoData, http.StatusNotFound},
		{perr.Storagef("quota"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := perr.HTTPStatus(c.err); got != c.want {
			t.Fatalf("%v: got %d want %d", c.err, got, c.want)
		}
	}
}

func TestWithFieldAndOpCopyOnWrite(t *testing.T) {
	base := perr.Newf(perr.ErrorCodeValidation, "required")
	withField := perr.WithField(base, "repoPath")

	b, _ := perr.As(base)
	f, _ := perr.As(withField)
	if b.Field() != "" || f.Field() != "repoPath" {
		t.Fatalf("expected copy-on-write field attach")
	}

	withOp := perr.WithOp(base, "analyze")
	o, _ := perr.As(withOp)
	if o.Op() != "analyze" {
		t.Fatalf("expected op attach")
	}
}

func TestRetryable(t *testing.T) {
	if !perr.Retryable(perr.Transientf("timeout")) {
		t.Fatalf("transient should be retryable")
	}
	if !perr.Retryable(perr.RateLimitedf("429")) {
		t.Fatalf("rate limited should be retryable")
	}
	if perr.Retryable(perr.Protocolf("401")) {
		t.Fatalf("protocol rejections are not retryable")
	}
	if perr.Retryable(perr.Offlinef("offline")) {
		t.Fatalf("offline is not retryable")
	}
}

func TestWireFrom(t *testing.T) {
	w := perr.WireFrom(perr.Protocolf("rate limit exceeded"))
	if w.Code != perr.ErrorCodeProtocol || w.Message != "rate limit exceeded" {
		t.Fatalf("bad wire: %+v", w)
	}
	if perr.WireFrom(nil) != (perr.Wire{}) {
		t.Fatalf("nil maps to zero wire")
	}
}
