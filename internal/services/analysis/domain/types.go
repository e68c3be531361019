// Package domain defines the types and interfaces for the analysis service
package domain

import (
	"sort"
	"time"
)

// Commit is one normalized commit from whichever source produced it
type Commit struct {
	// Hash is the 7-character short form of the commit sha
	Hash string `json:"hash"`
	// Author is the hosting login when known, else the display name
	Author string `json:"author"`
	// Date is the author timestamp in UTC
	Date time.Time `json:"date"`
	// Message is the first line only; the rest is dropped at ingest
	Message string `json:"message"`
}

// FileChange aggregates per-file change counts over the sampled commit window.
// Counts are approximate: they reflect only the sampled prefix of recent
// commits, never full history
type FileChange struct {
	Filename string `json:"filename"`
	Changes  int    `json:"changes"`
}

// AnalysisResult is the canonical bundle for one repository, immutable once
// produced. Derived fields (Authors, CommitCountByDate) are computed from
// Commits and must never be set independently
type AnalysisResult struct {
	RepositoryID      string           `json:"repositoryId"`
	Commits           []Commit         `json:"commits"`
	FilesChanged      []FileChange     `json:"filesChanged"`
	Languages         map[string]int64 `json:"languages"`
	Authors           []string         `json:"authors"`
	CommitCountByDate map[string]int   `json:"commitCountByDate"`
}

// Provenance says which path produced a result; the UI renders it so
// synthetic or stale data is never mistaken for a fresh fetch
type Provenance string

const (
	// ProvenancePrimary marks data fetched live from the hosting API
	ProvenancePrimary Provenance = "primary"
	// ProvenanceSynthetic marks generated fallback data
	ProvenanceSynthetic Provenance = "synthetic"
	// ProvenanceCache marks data served from the persistent cache
	ProvenanceCache Provenance = "cache"
)

// CacheEntry is the single stored slot: the last successful result plus
// when it was fetched. Replaced wholesale, never partially updated
type CacheEntry struct {
	RepositoryID string         `json:"repositoryId"`
	Result       AnalysisResult `json:"result"`
	FetchedAt    time.Time      `json:"fetchedAt"`
}

// Summary is the condensed view for the dashboard header
type Summary struct {
	TotalCommits      int              `json:"totalCommits"`
	TopFiles          []FileChange     `json:"topFiles"`
	Languages         map[string]int64 `json:"languages"`
	Authors           []string         `json:"authors"`
	CommitCountByDate map[string]int   `json:"commitCountByDate"`
}

// ActivityPoint is one day in the activity time series
type ActivityPoint struct {
	Date    string `json:"date"`
	Commits int    `json:"commits"`
}

// DeriveAuthors returns the distinct commit authors in first-seen order
func DeriveAuthors(commits []Commit) []string {
	seen := make(map[string]struct{}, len(commits))
	out := make([]string, 0, len(commits))
	for _, c := range commits {
		if _, ok := seen[c.Author]; ok {
			continue
		}
		seen[c.Author] = struct{}{}
		out = append(out, c.Author)
	}
	return out
}

// DeriveCountByDate buckets commits by their UTC calendar date
func DeriveCountByDate(commits []Commit) map[string]int {
	out := make(map[string]int, len(commits))
	for _, c := range commits {
		out[c.Date.UTC().Format("2006-01-02")]++
	}
	return out
}

// SortFilesByChanges orders files descending by change count.
// The sort is stable so ties keep their first-seen order, which makes
// the top-files view deterministic
func SortFilesByChanges(files []FileChange) {
	sort.SliceStable(files, func(i, j int) bool { return files[i].Changes > files[j].Changes })
}

// TopFiles returns up to limit files in canonical top-files order
func TopFiles(files []FileChange, limit int) []FileChange {
	out := make([]FileChange, len(files))
	copy(out, files)
	SortFilesByChanges(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterCommits applies inclusive date bounds and an exact author match.
// Zero bounds mean unbounded on that side
func FilterCommits(commits []Commit, w Window, author string) []Commit {
	out := make([]Commit, 0, len(commits))
	for _, c := range commits {
		d := c.Date.UTC()
		if !w.Since.IsZero() && d.Before(w.Since) {
			continue
		}
		if !w.Until.IsZero() && d.After(w.Until) {
			continue
		}
		if author != "" && c.Author != author {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SeriesFor derives the {date, commits} series inside the window,
// ascending by date
func SeriesFor(counts map[string]int, w Window) []ActivityPoint {
	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]ActivityPoint, 0, len(dates))
	for _, d := range dates {
		if day, err := time.Parse("2006-01-02", d); err == nil {
			if !w.Since.IsZero() && day.Before(w.Since) {
				continue
			}
			if !w.Until.IsZero() && day.After(w.Until) {
				continue
			}
		}
		out = append(out, ActivityPoint{Date: d, Commits: counts[d]})
	}
	return out
}
