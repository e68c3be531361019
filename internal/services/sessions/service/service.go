// Package service persists and recalls saved sessions
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	perr "commitmetrics/internal/platform/errors"
	"commitmetrics/internal/platform/logger"
	"commitmetrics/internal/platform/store"
	"commitmetrics/internal/services/sessions/domain"
)

const keyPrefix = "session."

// Service stores sessions as JSON values in the shared KV store
type Service struct {
	kv  store.KV
	log logger.Logger
	now func() time.Time
	id  func() string
}

// New builds the session service
func New(kv store.KV) *Service {
	return &Service{
		kv:  kv,
		log: *logger.Named("sessions"),
		now: time.Now,
		id:  uuid.NewString,
	}
}

var _ domain.ServicePort = (*Service)(nil)

// Save creates a new session and persists it
func (s *Service) Save(ctx context.Context, repoPath, rangeLabel string) (domain.Session, error) {
	sess := domain.Session{
		ID:         s.id(),
		RepoPath:   repoPath,
		RangeLabel: rangeLabel,
		CreatedAt:  s.now().UTC(),
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return domain.Session{}, perr.JSONErrf("session encode failed: %v", err)
	}
	if err := s.kv.Set(keyPrefix+sess.ID, string(raw)); err != nil {
		return domain.Session{}, perr.Wrapf(err, perr.ErrorCodeStorage, "session save failed")
	}
	s.log.Debug().Str("session_id", sess.ID).Str("repo", repoPath).Msg("session saved")
	return sess, nil
}

// Get returns a session by id
func (s *Service) Get(ctx context.Context, id string) (domain.Session, error) {
	raw, ok, err := s.kv.Get(keyPrefix + id)
	if err != nil {
		return domain.Session{}, perr.Wrapf(err, perr.ErrorCodeStorage, "session read failed")
	}
	if !ok {
		return domain.Session{}, perr.NotFoundf("session %q not found", id)
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return domain.Session{}, perr.JSONErrf("session decode failed: %v", err)
	}
	return sess, nil
}

// Delete removes a session; deleting an absent session is not an error
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.kv.Remove(keyPrefix + id); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "session delete failed")
	}
	return nil
}
