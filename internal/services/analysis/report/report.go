// Package report renders an analysis bundle as a small single-page PDF.
// The writer emits the handful of PDF objects a one-page text report needs
// directly; no layout engine is involved
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"commitmetrics/internal/services/analysis/domain"
)

const (
	reportTopFiles   = 5
	reportMaxCommits = 10
)

// Input is everything the report shows
type Input struct {
	RepositoryID string
	Result       domain.AnalysisResult
	Provenance   domain.Provenance
	RangeLabel   string
	Window       domain.Window
	GeneratedAt  time.Time
}

// Render produces the PDF bytes
func Render(in Input) ([]byte, error) {
	return buildPDF("Commit Metrics Report", lines(in)), nil
}

func lines(in Input) []string {
	r := in.Result
	out := []string{
		"Repository: " + in.RepositoryID,
		fmt.Sprintf("Generated: %s  (range: %s, source: %s)",
			in.GeneratedAt.Format("2006-01-02 15:04 UTC"), labelOr(in.RangeLabel), in.Provenance),
		"",
		fmt.Sprintf("Total commits: %d    Authors: %d    Languages: %d",
			len(r.Commits), len(r.Authors), len(r.Languages)),
		"",
		"Top languages:",
	}

	for _, l := range topLanguages(r.Languages, reportTopFiles) {
		out = append(out, fmt.Sprintf("  %s: %d", l.name, l.weight))
	}

	out = append(out, "", "Most changed files:")
	for _, f := range domain.TopFiles(r.FilesChanged, reportTopFiles) {
		out = append(out, fmt.Sprintf("  %s (%d changes)", f.Filename, f.Changes))
	}

	out = append(out, "", "Recent commits:")
	commits := domain.FilterCommits(r.Commits, in.Window, "")
	if len(commits) > reportMaxCommits {
		commits = commits[:reportMaxCommits]
	}
	if len(commits) == 0 {
		out = append(out, "  (none in the selected range)")
	}
	for _, c := range commits {
		out = append(out, fmt.Sprintf("  %s  %s  %s  %s",
			c.Hash, c.Date.Format("2006-01-02"), c.Author, truncate(c.Message, 60)))
	}
	return out
}

func labelOr(label string) string {
	if strings.TrimSpace(label) == "" {
		return domain.RangeAll
	}
	return label
}

// truncate cuts on rune boundaries so multi-byte characters in commit
// messages never get split mid-sequence
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

type langWeight struct {
	name   string
	weight int64
}

func topLanguages(m map[string]int64, limit int) []langWeight {
	out := make([]langWeight, 0, len(m))
	for k, v := range m {
		out = append(out, langWeight{name: k, weight: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].weight != out[j].weight {
			return out[i].weight > out[j].weight
		}
		return out[i].name < out[j].name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// buildPDF assembles a one-page PDF with a title and body lines in a
// monospace font. Object offsets are tracked as objects are written so the
// xref table is exact
func buildPDF(title string, body []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 16 Tf\n72 720 Td\n(")
	content.WriteString(escapePDF(title))
	content.WriteString(") Tj\n/F1 9 Tf\n0 -28 Td\n13 TL\n")
	for _, line := range body {
		content.WriteString("(")
		content.WriteString(escapePDF(line))
		content.WriteString(") Tj T*\n")
	}
	content.WriteString("ET\n")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, 5)
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")
	writeObj(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%sendstream\nendobj\n",
		content.Len(), content.String()))
	writeObj("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n")

	xrefAt := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefAt)
	return buf.Bytes()
}

func escapePDF(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
