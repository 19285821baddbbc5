// Package journal defines how brew logs are persisted. Backends live in
// pkg/files (YAML documents) and pkg/sqlstore (SQLite).
package journal

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/brewlog/brewlog-terminal/pkg/models"
)

// Sentinel errors shared by every backend.
var (
	ErrNotFound      = errors.New("log not found")
	ErrAmbiguousID   = errors.New("log id prefix is ambiguous")
	ErrAlreadyExists = errors.New("log already exists")
)

// Store persists finished logs. Implementations hand out deep copies so a
// saved log never aliases the draft that produced it.
type Store interface {
	Save(ctx context.Context, log *models.Log) error
	Update(ctx context.Context, log *models.Log) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Log, error)
	List(ctx context.Context, q Query) ([]*models.Log, error)
	Latest(ctx context.Context) (*models.Log, error)
	Close() error
}

// Query filters List. Zero values match everything.
type Query struct {
	MinRating int
	Method    string
	Origin    string
}

// Matches reports whether log passes the filter.
func (q Query) Matches(log *models.Log) bool {
	if q.MinRating > 0 && log.Rating < q.MinRating {
		return false
	}
	if q.Method != "" && !strings.EqualFold(q.Method, log.Method) {
		return false
	}
	if q.Origin != "" && !strings.Contains(strings.ToLower(log.Origin), strings.ToLower(q.Origin)) {
		return false
	}
	return true
}

// NewID returns an identifier for a new log.
func NewID() string {
	return uuid.NewString()
}

// SortNewestFirst orders logs by brew date, newest first. Ties keep the id
// order so output is stable.
func SortNewestFirst(logs []*models.Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BrewedAt.Equal(logs[j].BrewedAt) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].BrewedAt.After(logs[j].BrewedAt)
	})
}

// Resolve finds the log whose id equals ref or, failing that, the single log
// whose id starts with ref.
func Resolve(ctx context.Context, s Store, ref string) (*models.Log, error) {
	if ref == "" {
		return nil, ErrNotFound
	}
	log, err := s.Get(ctx, ref)
	if err == nil {
		return log, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	all, err := s.List(ctx, Query{})
	if err != nil {
		return nil, err
	}
	var match *models.Log
	for _, l := range all {
		if strings.HasPrefix(l.ID, ref) {
			if match != nil {
				return nil, ErrAmbiguousID
			}
			match = l
		}
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}
