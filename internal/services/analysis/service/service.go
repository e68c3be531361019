// Package service implements the repository analysis orchestrator
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	perr "commitmetrics/internal/platform/errors"
	"commitmetrics/internal/platform/logger"
	"commitmetrics/internal/services/analysis/domain"
	"commitmetrics/internal/services/analysis/report"
)

// defaultMaxCacheAge matches the client-side one hour the dashboard used
const defaultMaxCacheAge = time.Hour

const summaryTopFiles = 5

// currentRepo is the active analysis context. Replaced wholesale on each
// committed analyze; accessors read a snapshot
type currentRepo struct {
	id   string
	res  domain.AnalysisResult
	prov domain.Provenance
}

// Service sequences cache lookup, primary fetch, fallback, and cache write,
// and serves the derived read views
type Service struct {
	source   domain.SourcePort
	fallback domain.FallbackPort
	cache    domain.CachePort
	log      logger.Logger
	now      func() time.Time

	maxCacheAge time.Duration

	// tokens orders analyze calls; only the response holding the latest
	// token commits the current-repo context and the cache, so a slow
	// fetch for a repository the user already left cannot clobber state
	tokens atomic.Int64

	mu  sync.RWMutex
	cur *currentRepo
}

// Option mutates the service during construction
type Option func(*Service)

// WithMaxCacheAge overrides the cache validity horizon
func WithMaxCacheAge(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.maxCacheAge = d
		}
	}
}

// New builds the orchestrator
func New(source domain.SourcePort, fallback domain.FallbackPort, cache domain.CachePort, opts ...Option) *Service {
	s := &Service{
		source:      source,
		fallback:    fallback,
		cache:       cache,
		log:         *logger.Named("analysis"),
		now:         time.Now,
		maxCacheAge: defaultMaxCacheAge,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ domain.ServicePort = (*Service)(nil)

// Analyze produces the canonical bundle for one repository. A valid cached
// entry for the same id is served as-is; otherwise the primary source gets
// exactly one attempt and any failure other than a rejected identifier
// falls through to the synthetic generator. The result is committed to the
// context and cache only if no newer analyze superseded this one
func (s *Service) Analyze(ctx context.Context, repositoryID string) (domain.AnalysisResult, domain.Provenance, error) {
	token := s.tokens.Add(1)

	if entry, ok := s.cache.Read(); ok && entry.RepositoryID == repositoryID && s.cache.IsValid(s.maxCacheAge) {
		s.log.Debug().Str("repo", repositoryID).Msg("serving valid cached analysis")
		s.commit(token, repositoryID, entry.Result, domain.ProvenanceCache, false)
		return entry.Result, domain.ProvenanceCache, nil
	}

	res, err := s.source.FetchAnalysis(ctx, repositoryID)
	prov := domain.ProvenancePrimary
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeInvalidRepo) {
			return domain.AnalysisResult{}, "", err
		}
		s.log.Warn().Err(err).Str("repo", repositoryID).Msg("primary source failed; generating fallback data")
		res = s.fallback.Generate(repositoryID)
		prov = domain.ProvenanceSynthetic
	}

	s.commit(token, repositoryID, res, prov, true)
	return res, prov, nil
}

// commit installs the result as the current context and optionally persists
// it, unless a newer analyze has already been issued. The token check and
// both writes happen under one lock so a stale response cannot slip in
// between the check and the write while a newer analyze completes
func (s *Service) commit(token int64, repositoryID string, res domain.AnalysisResult, prov domain.Provenance, persist bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.tokens.Load() {
		s.log.Debug().Str("repo", repositoryID).Msg("discarding stale analysis response")
		return
	}

	s.cur = &currentRepo{id: repositoryID, res: res, prov: prov}

	if persist {
		if err := s.cache.Write(repositoryID, res); err != nil {
			// a cache that cannot persist must not fail the analysis
			s.log.Warn().Err(err).Str("repo", repositoryID).Msg("cache write failed; continuing uncached")
		}
	}
}

func (s *Service) snapshot() (currentRepo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return currentRepo{}, false
	}
	return *s.cur, true
}

// resilient is the shared read path: try a fresh narrow fetch against the
// active repository, degrade to deriving from the held full result, and
// fall back to the persisted cache when no context exists yet
func resilient[T any](
	s *Service,
	ctx context.Context,
	fetch func(ctx context.Context, repositoryID string) (T, error),
	derive func(r domain.AnalysisResult) T,
) (T, domain.Provenance, error) {
	var zero T

	snap, ok := s.snapshot()
	if !ok {
		entry, ok := s.cache.Read()
		if !ok {
			return zero, "", perr.ErrNoData
		}
		return derive(entry.Result), domain.ProvenanceCache, nil
	}

	if fetch != nil {
		if v, err := fetch(ctx, snap.id); err == nil {
			return v, domain.ProvenancePrimary, nil
		} else {
			s.log.Warn().Err(err).Str("repo", snap.id).Msg("narrow fetch failed; deriving from held result")
		}
	}

	prov := snap.prov
	if prov == domain.ProvenancePrimary {
		// the held result is no longer fresh once a re-fetch has failed
		prov = domain.ProvenanceCache
	}
	return derive(snap.res), prov, nil
}

// GetSummary condenses the current result for the dashboard header
func (s *Service) GetSummary(ctx context.Context) (domain.Summary, domain.Provenance, error) {
	return resilient(s, ctx, nil, func(r domain.AnalysisResult) domain.Summary {
		return domain.Summary{
			TotalCommits:      len(r.Commits),
			TopFiles:          domain.TopFiles(r.FilesChanged, summaryTopFiles),
			Languages:         r.Languages,
			Authors:           r.Authors,
			CommitCountByDate: r.CommitCountByDate,
		}
	})
}

// GetCommits returns commits narrowed by a time-range label and author.
// It prefers a server-side filtered fetch and degrades to filtering the
// held commit list by the same predicate
func (s *Service) GetCommits(ctx context.Context, rangeLabel, author string) ([]domain.Commit, domain.Provenance, error) {
	w, ok := domain.WindowFor(rangeLabel, s.now())
	if !ok {
		return nil, "", perr.InvalidArgf("unrecognized time range %q", rangeLabel)
	}

	return resilient(s, ctx,
		func(ctx context.Context, repositoryID string) ([]domain.Commit, error) {
			return s.source.FetchCommits(ctx, repositoryID, w, author)
		},
		func(r domain.AnalysisResult) []domain.Commit {
			return domain.FilterCommits(r.Commits, w, author)
		})
}

// GetLanguages returns the language weight map
func (s *Service) GetLanguages(ctx context.Context) (map[string]int64, domain.Provenance, error) {
	return resilient(s, ctx,
		func(ctx context.Context, repositoryID string) (map[string]int64, error) {
			return s.source.FetchLanguages(ctx, repositoryID)
		},
		func(r domain.AnalysisResult) map[string]int64 {
			return r.Languages
		})
}

// GetTopFiles returns up to limit files in canonical hot-files order.
// File stats have no narrow endpoint so this always derives from the held
// or cached result
func (s *Service) GetTopFiles(ctx context.Context, limit int) ([]domain.FileChange, domain.Provenance, error) {
	if limit <= 0 {
		limit = summaryTopFiles
	}
	return resilient(s, ctx, nil, func(r domain.AnalysisResult) []domain.FileChange {
		return domain.TopFiles(r.FilesChanged, limit)
	})
}

// GetActivitySeries derives the daily commit series for a window, ascending
// by date
func (s *Service) GetActivitySeries(ctx context.Context, rangeLabel string) ([]domain.ActivityPoint, error) {
	w, ok := domain.WindowFor(rangeLabel, s.now())
	if !ok {
		return nil, perr.InvalidArgf("unrecognized time range %q", rangeLabel)
	}

	series, _, err := resilient(s, ctx, nil, func(r domain.AnalysisResult) []domain.ActivityPoint {
		return domain.SeriesFor(r.CommitCountByDate, w)
	})
	return series, err
}

// ExportReport renders the analysis for repositoryID as a PDF artifact,
// running a fresh analyze when the repository is not already active
func (s *Service) ExportReport(ctx context.Context, repositoryID, rangeLabel string) ([]byte, error) {
	w, ok := domain.WindowFor(rangeLabel, s.now())
	if !ok {
		return nil, perr.InvalidArgf("unrecognized time range %q", rangeLabel)
	}

	snap, ok := s.snapshot()
	if !ok || snap.id != repositoryID {
		res, prov, err := s.Analyze(ctx, repositoryID)
		if err != nil {
			return nil, err
		}
		snap = currentRepo{id: repositoryID, res: res, prov: prov}
	}

	return report.Render(report.Input{
		RepositoryID: snap.id,
		Result:       snap.res,
		Provenance:   snap.prov,
		RangeLabel:   rangeLabel,
		Window:       w,
		GeneratedAt:  s.now().UTC(),
	})
}
