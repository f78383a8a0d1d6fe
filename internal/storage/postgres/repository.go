// Package postgres is the PostgreSQL-backed entry store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodwaste/internal/core"
	"foodwaste/internal/store"
)

var _ store.Repository = (*Repository)(nil)

const entryColumns = `id::text, food_item, category, quantity_grams, reason, notes, user_id, created_at`

type Repository struct {
	pool *pgxpool.Pool
}

// Open migrates the database and connects a pool.
func Open(ctx context.Context, databaseURL string) (*Repository, error) {
	if err := RunMigrations(databaseURL); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewRepository(pool), nil
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) CreateEntry(ctx context.Context, d core.EntryDraft) (core.WasteEntry, error) {
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}
	e := core.WasteEntry{
		ID:        uuid.NewString(),
		UserID:    core.DefaultUserID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}.Apply(d)

	query := `
        INSERT INTO waste_entries (
            id, food_item, category, quantity_grams, reason, notes, user_id, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.FoodItem,
		string(e.Category),
		e.Quantity.Grams,
		string(e.Reason),
		e.Notes,
		e.UserID,
		e.CreatedAt,
	)
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("insert waste entry: %w", err)
	}
	return e, nil
}

func (r *Repository) ListEntries(ctx context.Context) ([]core.WasteEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryColumns+` FROM waste_entries ORDER BY created_at DESC, seq DESC`)
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

func (r *Repository) GetEntry(ctx context.Context, id string) (core.WasteEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return core.WasteEntry{}, fmt.Errorf("get entry %s: %w", id, core.ErrNotFound)
	}
	e, err := scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM waste_entries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.WasteEntry{}, fmt.Errorf("get entry %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	return e, nil
}

func (r *Repository) UpdateEntry(ctx context.Context, id string, d core.EntryDraft) (core.WasteEntry, error) {
	if err := d.Validate(); err != nil {
		return core.WasteEntry{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, core.ErrNotFound)
	}

	query := `
        UPDATE waste_entries
        SET food_item = $2, category = $3, quantity_grams = $4, reason = $5, notes = $6
        WHERE id = $1
        RETURNING ` + entryColumns
	e, err := scanEntry(r.pool.QueryRow(ctx, query,
		id,
		d.FoodItem,
		string(d.Category),
		d.Quantity.Grams,
		string(d.Reason),
		d.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.WasteEntry{}, fmt.Errorf("update entry %s: %w", id, err)
	}
	return e, nil
}

func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, core.ErrNotFound)
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM waste_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete entry %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// truncate empties the table; tests only.
func (r *Repository) truncate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `TRUNCATE waste_entries`)
	return err
}

func scanEntry(row pgx.Row) (core.WasteEntry, error) {
	var (
		e        core.WasteEntry
		category string
		reason   string
	)
	if err := row.Scan(&e.ID, &e.FoodItem, &category, &e.Quantity.Grams, &reason, &e.Notes, &e.UserID, &e.CreatedAt); err != nil {
		return core.WasteEntry{}, err
	}
	e.Category = core.Category(category)
	e.Reason = core.Reason(reason)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}
