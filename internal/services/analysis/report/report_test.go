package report

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"commitmetrics/internal/services/analysis/domain"
)

func testInput() Input {
	return Input{
		RepositoryID: "https://github.com/octo/demo",
		Result: domain.AnalysisResult{
			RepositoryID: "https://github.com/octo/demo",
			Commits: []domain.Commit{
				{Hash: "abc1234", Author: "alice", Date: time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC), Message: "feat: (parens) and \\slashes"},
			},
			FilesChanged: []domain.FileChange{{Filename: "main.go", Changes: 10}},
			Languages:    map[string]int64{"Go": 1000, "Makefile": 10},
			Authors:      []string{"alice"},
		},
		Provenance:  domain.ProvenancePrimary,
		RangeLabel:  "week",
		GeneratedAt: time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderProducesPDF(t *testing.T) {
	pdf, err := Render(testInput())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("artifact does not start with a PDF header: %q", pdf[:8])
	}
	if !bytes.HasSuffix(pdf, []byte("%%EOF\n")) {
		t.Fatal("artifact missing PDF trailer")
	}
	for _, want := range []string{"Commit Metrics Report", "octo/demo", "abc1234", "main.go"} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Errorf("artifact missing %q", want)
		}
	}
}

func TestRenderEscapesDelimiters(t *testing.T) {
	pdf, err := Render(testInput())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(pdf, []byte(`\(parens\)`)) {
		t.Error("parens in commit messages must be escaped")
	}
}

func TestRenderEmptyRange(t *testing.T) {
	in := testInput()
	in.Window = domain.Window{
		Since: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	pdf, err := Render(in)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(pdf, []byte("none in the selected range")) {
		t.Error("empty windows should render a placeholder row")
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("héllo wörld ", 10)
	got := truncate(long, 60)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated string missing ellipsis: %q", got)
	}
	if got := truncate("short", 60); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
	// boundary case: multi-byte rune straddling the cut position
	exact := strings.Repeat("é", 61)
	if got := truncate(exact, 60); !utf8.ValidString(got) {
		t.Fatalf("cut through a rune: %q", got)
	}
}

func TestTopLanguagesOrdering(t *testing.T) {
	got := topLanguages(map[string]int64{"A": 5, "B": 10, "C": 5, "D": 1}, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].name != "B" || got[1].name != "A" || got[2].name != "C" {
		t.Fatalf("order = %v, want weight desc then name asc", got)
	}
}
