package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"foodwaste/internal/core"
	"foodwaste/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Repository = (*SQLiteRepository)(nil)

const entryColumns = `id, food_item, category, quantity_grams, reason, notes, user_id, created_at`

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection serializes mutations.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateEntry implements store.EntryWriter
func (r *SQLiteRepository) CreateEntry(ctx context.Context, d core.EntryDraft) (core.WasteEntry, error) {
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}
	e := core.WasteEntry{
		ID:        uuid.NewString(),
		UserID:    core.DefaultUserID,
		CreatedAt: r.now(),
	}.Apply(d)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO waste_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.FoodItem, string(e.Category), e.Quantity.Grams, string(e.Reason), e.Notes, e.UserID, e.CreatedAt.UnixMicro())
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("insert waste entry: %w", err)
	}

	slog.DebugContext(ctx, "Waste entry saved to SQLite",
		"id", e.ID,
		"food_item", e.FoodItem,
		"quantity_grams", e.Quantity.Grams)
	return e, nil
}

// ListEntries implements store.EntryReader
func (r *SQLiteRepository) ListEntries(ctx context.Context) ([]core.WasteEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM waste_entries ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list waste entries: %w", err)
	}
	defer rows.Close()

	entries := make([]core.WasteEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waste entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waste entries: %w", err)
	}
	return entries, nil
}

// GetEntry implements store.EntryReader
func (r *SQLiteRepository) GetEntry(ctx context.Context, id string) (core.WasteEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return core.WasteEntry{}, fmt.Errorf("get entry %s: %w", id, core.ErrNotFound)
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM waste_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.WasteEntry{}, fmt.Errorf("get entry %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	return e, nil
}

// UpdateEntry implements store.EntryWriter. The read-modify-write runs in
// one transaction so a concurrent delete cannot interleave.
func (r *SQLiteRepository) UpdateEntry(ctx context.Context, id string, d core.EntryDraft) (core.WasteEntry, error) {
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, core.ErrNotFound)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE waste_entries SET food_item = ?, category = ?, quantity_grams = ?, reason = ?, notes = ? WHERE id = ?`,
		d.FoodItem, string(d.Category), d.Quantity.Grams, string(d.Reason), d.Notes, id)
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, err)
	} else if n == 0 {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, core.ErrNotFound)
	}

	e, err := scanEntry(tx.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM waste_entries WHERE id = ?`, id))
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("reload entry %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return core.WasteEntry{}, fmt.Errorf("commit transaction: %w", err)
	}
	return e, nil
}

// DeleteEntry implements store.EntryDeleter
func (r *SQLiteRepository) DeleteEntry(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, core.ErrNotFound)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM waste_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete entry %s: %w", id, core.ErrNotFound)
	}
	slog.DebugContext(ctx, "Waste entry deleted from SQLite", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (core.WasteEntry, error) {
	var (
		e         core.WasteEntry
		category  string
		reason    string
		createdAt int64
	)
	if err := s.Scan(&e.ID, &e.FoodItem, &category, &e.Quantity.Grams, &reason, &e.Notes, &e.UserID, &createdAt); err != nil {
		return core.WasteEntry{}, err
	}
	e.Category = core.Category(category)
	e.Reason = core.Reason(reason)
	e.CreatedAt = time.UnixMicro(createdAt).UTC()
	return e, nil
}
