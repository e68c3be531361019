// Package repo holds the persistence glue for the analysis service
package repo

import (
	"encoding/json"
	"time"

	perr "commitmetrics/internal/platform/errors"
	"commitmetrics/internal/platform/logger"
	"commitmetrics/internal/platform/store"
	"commitmetrics/internal/services/analysis/domain"
)

// cacheKey is the single slot; each write replaces the previous result
const cacheKey = "analysis.last_result"

// Cache is the persistent single-slot result cache. One entry exists at a
// time; writing replaces it wholesale
type Cache struct {
	kv  store.KV
	log logger.Logger
	now func() time.Time
}

// NewCache wraps a KV store
func NewCache(kv store.KV) *Cache {
	return &Cache{kv: kv, log: *logger.Named("analysis.cache"), now: time.Now}
}

var _ domain.CachePort = (*Cache)(nil)

// Write stores the result with the current timestamp. A storage failure is
// reported but must not fail the surrounding operation; callers log and move on
func (c *Cache) Write(repositoryID string, r domain.AnalysisResult) error {
	entry := domain.CacheEntry{
		RepositoryID: repositoryID,
		Result:       r,
		FetchedAt:    c.now().UTC(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return perr.JSONErrf("cache entry encode failed: %v", err)
	}
	if err := c.kv.Set(cacheKey, string(raw)); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "cache write failed")
	}
	return nil
}

// Read returns the stored entry if one exists and decodes. A corrupt slot
// reads as a miss and is dropped so it cannot wedge future reads
func (c *Cache) Read() (domain.CacheEntry, bool) {
	raw, ok, err := c.kv.Get(cacheKey)
	if err != nil {
		c.log.Warn().Err(err).Msg("cache read failed")
		return domain.CacheEntry{}, false
	}
	if !ok {
		return domain.CacheEntry{}, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.log.Warn().Err(err).Msg("corrupt cache entry dropped")
		c.Invalidate()
		return domain.CacheEntry{}, false
	}
	return entry, true
}

// Invalidate clears the slot
func (c *Cache) Invalidate() {
	if err := c.kv.Remove(cacheKey); err != nil {
		c.log.Warn().Err(err).Msg("cache invalidate failed")
	}
}

// IsValid reports whether the stored entry is within maxAge. An entry aged
// exactly maxAge is still valid; expiry starts strictly after the boundary
func (c *Cache) IsValid(maxAge time.Duration) bool {
	entry, ok := c.Read()
	if !ok {
		return false
	}
	age := c.now().UTC().Sub(entry.FetchedAt)
	return age <= maxAge
}
