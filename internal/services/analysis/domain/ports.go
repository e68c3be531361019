package domain

import (
	"context"
	"time"
)

// SourcePort is the primary data source: the hosting provider API
type SourcePort interface {
	// FetchAnalysis retrieves and normalizes the full analysis bundle
	FetchAnalysis(ctx context.Context, repositoryID string) (AnalysisResult, error)
	// FetchCommits retrieves a narrowed commit page; zero times and empty
	// author mean no filter
	FetchCommits(ctx context.Context, repositoryID string, w Window, author string) ([]Commit, error)
	// FetchLanguages retrieves the language weight map
	FetchLanguages(ctx context.Context, repositoryID string) (map[string]int64, error)
}

// FallbackPort produces synthetic data when the primary source fails.
// Generate never fails; it is the last-resort data source
type FallbackPort interface {
	Generate(repositoryID string) AnalysisResult
}

// CachePort is the single-slot persistent result cache
type CachePort interface {
	Write(repositoryID string, r AnalysisResult) error
	Read() (CacheEntry, bool)
	Invalidate()
	IsValid(maxAge time.Duration) bool
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Analyze(ctx context.Context, repositoryID string) (AnalysisResult, Provenance, error)
	GetSummary(ctx context.Context) (Summary, Provenance, error)
	GetCommits(ctx context.Context, rangeLabel, author string) ([]Commit, Provenance, error)
	GetLanguages(ctx context.Context) (map[string]int64, Provenance, error)
	GetTopFiles(ctx context.Context, limit int) ([]FileChange, Provenance, error)
	GetActivitySeries(ctx context.Context, rangeLabel string) ([]ActivityPoint, error)
	ExportReport(ctx context.Context, repositoryID, rangeLabel string) ([]byte, error)
}
