package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	_ "github.com/mattn/go-sqlite3"

	"github.com/okian/lootcouncil/internal/domain/model"
	"github.com/okian/lootcouncil/pkg/metrics"
)

const assignmentSchema = `
	CREATE TABLE IF NOT EXISTS assignments (
		loot_id      TEXT PRIMARY KEY,
		character_id TEXT NOT NULL,
		assigned_at  INTEGER NOT NULL,
		payload      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_assignments_character ON assignments(character_id, assigned_at);
`

// SQLiteAssignmentStore persists assignments, including the frozen
// highlights, in a sqlite database.
type SQLiteAssignmentStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteAssignmentStore opens path (":memory:" works) and creates the schema.
func NewSQLiteAssignmentStore(ctx context.Context, path string) (*SQLiteAssignmentStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a second connection would see a different :memory: database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, assignmentSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteAssignmentStore{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SQLiteAssignmentStore) Close() error {
	return s.db.Close()
}

// Assign implements AssignmentStore.
func (s *SQLiteAssignmentStore) Assign(ctx context.Context, l model.LootWithAssigned) error {
	defer observeUpdate(time.Now())
	if err := validateAssignment(l); err != nil {
		return err
	}
	if l.AssignedAt.IsZero() {
		l.AssignedAt = s.now()
	}
	payload, err := sonic.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode assignment %s: %w", l.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assignments (loot_id, character_id, assigned_at, payload)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(loot_id) DO UPDATE SET
			character_id = excluded.character_id,
			assigned_at  = excluded.assigned_at,
			payload      = excluded.payload`,
		l.ID, *l.AssignedCharacterID, l.AssignedAt.UnixNano(), string(payload),
	)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "sqlite_write")
		return fmt.Errorf("store assignment %s: %w", l.ID, err)
	}
	return nil
}

// Assignment implements AssignmentStore.
func (s *SQLiteAssignmentStore) Assignment(ctx context.Context, lootID string) (model.LootWithAssigned, error) {
	defer observeQuery(time.Now())
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM assignments WHERE loot_id = ?`, lootID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.LootWithAssigned{}, fmt.Errorf("loot %s: %w", lootID, ErrNotFound)
	}
	if err != nil {
		return model.LootWithAssigned{}, fmt.Errorf("read assignment %s: %w", lootID, err)
	}
	return decodeAssignment(payload)
}

// Assigned implements AssignmentStore.
func (s *SQLiteAssignmentStore) Assigned(ctx context.Context, characterID string) ([]model.LootWithAssigned, error) {
	defer observeQuery(time.Now())
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM assignments WHERE character_id = ? ORDER BY assigned_at, loot_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("list assignments of %s: %w", characterID, err)
	}
	defer rows.Close()

	var out []model.LootWithAssigned
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		l, err := decodeAssignment(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountAssignments implements AssignmentStore. Errors count as zero.
func (s *SQLiteAssignmentStore) CountAssignments(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignments`).Scan(&n); err != nil {
		metrics.RecordErrorByComponent("repository", "sqlite_read")
		return 0
	}
	return n
}

func decodeAssignment(payload string) (model.LootWithAssigned, error) {
	var l model.LootWithAssigned
	if err := sonic.UnmarshalString(payload, &l); err != nil {
		return model.LootWithAssigned{}, fmt.Errorf("decode assignment: %w", err)
	}
	return l, nil
}
