// Package domain defines saved analysis sessions
package domain

import (
	"context"
	"time"
)

// Session records one saved analysis selection so a user can return to a
// repository and range later
type Session struct {
	ID         string    `json:"id"`
	RepoPath   string    `json:"repoPath"`
	RangeLabel string    `json:"range"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Save(ctx context.Context, repoPath, rangeLabel string) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
