// Package sqlstore keeps the journal in a single SQLite table. The recipe
// steps of a log are stored as a JSON array column, one entry per step.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"

	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

//go:embed migrations/*.sql
var migrations embed.FS

const table = "coffee_logs"

var columns = []string{
	"id", "origin", "process", "roast", "method",
	"coffee", "water", "ratio", "grind_size", "water_temperature",
	"turbulence", "bloom_time", "total_time",
	"acidity", "sweetness", "body", "aftertaste", "bitterness",
	"rating", "notes", "recipe_steps", "brewed_at",
}

// Compile-time interface check.
var _ journal.Store = (*Store)(nil)

// Store is a journal.Store over database/sql.
type Store struct {
	db  *sql.DB
	qb  sq.StatementBuilderType
	log *slog.Logger
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", path, err)
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		qb:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
		log: log.With("store", "sqlite"),
	}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("sqlstore: migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("sqlstore: migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("sqlstore: migrate up: %w", err)
	}
	return nil
}

// Save inserts a new log, assigning an id when it has none.
func (s *Store) Save(ctx context.Context, l *models.Log) error {
	if l.ID == "" {
		l.ID = journal.NewID()
	}
	values, err := rowValues(l)
	if err != nil {
		return err
	}

	_, err = s.qb.Insert(table).
		Columns(columns...).
		Values(values...).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("log %s: %w", l.ID, journal.ErrAlreadyExists)
		}
		return fmt.Errorf("log %s: insert: %w", l.ID, err)
	}
	s.log.Debug("saved log", "id", l.ID, "steps", len(l.RecipeSteps))
	return nil
}

// Update overwrites every column of an existing log.
func (s *Store) Update(ctx context.Context, l *models.Log) error {
	values, err := rowValues(l)
	if err != nil {
		return err
	}
	set := make(map[string]interface{}, len(columns)-1)
	for i, col := range columns {
		if col == "id" {
			continue
		}
		set[col] = values[i]
	}

	res, err := s.qb.Update(table).
		SetMap(set).
		Where(sq.Eq{"id": l.ID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("log %s: update: %w", l.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("log %s: %w", l.ID, journal.ErrNotFound)
	}
	s.log.Debug("updated log", "id", l.ID)
	return nil
}

// Delete removes a log.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.qb.Delete(table).
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("log %s: delete: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("log %s: %w", id, journal.ErrNotFound)
	}
	s.log.Debug("deleted log", "id", id)
	return nil
}

// Get reads one log by id.
func (s *Store) Get(ctx context.Context, id string) (*models.Log, error) {
	row := s.qb.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx)

	l, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("log %s: %w", id, journal.ErrNotFound)
		}
		return nil, fmt.Errorf("log %s: %w", id, err)
	}
	return l, nil
}

// List returns logs matching q, newest first.
func (s *Store) List(ctx context.Context, q journal.Query) ([]*models.Log, error) {
	query := s.qb.Select(columns...).From(table)
	if q.MinRating > 0 {
		query = query.Where(sq.GtOrEq{"rating": q.MinRating})
	}
	if q.Method != "" {
		query = query.Where(foldFunc+"(method) = ?", strings.ToLower(q.Method))
	}
	if q.Origin != "" {
		query = query.Where(foldFunc+"(origin) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(q.Origin))+"%")
	}

	rows, err := query.OrderBy("brewed_at DESC", "id").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("list logs: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// Latest returns the most recently brewed log.
func (s *Store) Latest(ctx context.Context) (*models.Log, error) {
	row := s.qb.Select(columns...).
		From(table).
		OrderBy("brewed_at DESC", "id").
		Limit(1).
		RunWith(s.db).
		QueryRowContext(ctx)

	l, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, journal.ErrNotFound
		}
		return nil, fmt.Errorf("latest log: %w", err)
	}
	return l, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func rowValues(l *models.Log) ([]interface{}, error) {
	steps := l.RecipeSteps
	if steps == nil {
		steps = recipe.Steps{}
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, fmt.Errorf("log %s: encode steps: %w", l.ID, err)
	}
	return []interface{}{
		l.ID, l.Origin, l.Process, l.Roast, l.Method,
		l.Coffee, l.Water, l.Ratio, l.GrindSize, l.WaterTemperature,
		l.Turbulence.String(), l.BloomTime, l.TotalTime,
		scoreValue(l.Acidity), scoreValue(l.Sweetness), scoreValue(l.Body),
		scoreValue(l.Aftertaste), scoreValue(l.Bitterness),
		l.Rating, l.Notes, string(stepsJSON), l.BrewedAt.UnixMilli(),
	}, nil
}

func scoreValue(s models.Score) sql.NullInt64 {
	v, ok := s.Get()
	return sql.NullInt64{Int64: int64(v), Valid: ok}
}

func scoreFrom(n sql.NullInt64) models.Score {
	if !n.Valid {
		return models.Score{}
	}
	return models.NewScore(int(n.Int64))
}

func scanLog(row sq.RowScanner) (*models.Log, error) {
	var l models.Log
	var turbulence string
	var acidity, sweetness, body, aftertaste, bitterness sql.NullInt64
	var steps sql.NullString
	var brewedAt int64
	err := row.Scan(
		&l.ID, &l.Origin, &l.Process, &l.Roast, &l.Method,
		&l.Coffee, &l.Water, &l.Ratio, &l.GrindSize, &l.WaterTemperature,
		&turbulence, &l.BloomTime, &l.TotalTime,
		&acidity, &sweetness, &body, &aftertaste, &bitterness,
		&l.Rating, &l.Notes, &steps, &brewedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Turbulence = models.ParseTurbulence(turbulence)
	l.Acidity = scoreFrom(acidity)
	l.Sweetness = scoreFrom(sweetness)
	l.Body = scoreFrom(body)
	l.Aftertaste = scoreFrom(aftertaste)
	l.Bitterness = scoreFrom(bitterness)
	l.BrewedAt = time.UnixMilli(brewedAt)

	// rows written before steps existed have NULL or empty text
	l.RecipeSteps = recipe.Steps{}
	if steps.Valid && strings.TrimSpace(steps.String) != "" {
		if err := json.Unmarshal([]byte(steps.String), &l.RecipeSteps); err != nil {
			return nil, fmt.Errorf("decode steps: %w", err)
		}
		if l.RecipeSteps == nil {
			l.RecipeSteps = recipe.Steps{}
		}
	}
	return &l, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
