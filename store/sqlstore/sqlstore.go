// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/store"
)

// Rows per INSERT statement in InsertMany.
const insertChunk = 500

const selectColumns = `id, name, "no", created_at`

// Store implements store.Store on PostgreSQL or SQLite.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open connects using driver "postgres" or "sqlite", verifies the
// connection and creates the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != models.DatabasePostgres && driver != models.DatabaseSQLite {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// SQLite allows a single writer; serialize through one connection.
	if driver == models.DatabaseSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying handle for tests and maintenance.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Store) FindByNo(ctx context.Context, no int) (models.Pokemon, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM pokemon WHERE "no" = $1`, no)
	return scanOne(row)
}

func (s *Store) FindByID(ctx context.Context, id string) (models.Pokemon, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return models.Pokemon{}, store.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM pokemon WHERE id = $1`, u.String())
	return scanOne(row)
}

func (s *Store) FindByName(ctx context.Context, name string) (models.Pokemon, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM pokemon WHERE name = $1`, name)
	return scanOne(row)
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]models.Pokemon, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM pokemon
		ORDER BY "no" ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pokemon: %w", err)
	}
	defer rows.Close()

	pokemon := []models.Pokemon{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pokemon: %w", err)
		}
		pokemon = append(pokemon, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pokemon: %w", err)
	}

	return pokemon, nil
}

func (s *Store) Insert(ctx context.Context, p models.Pokemon) (models.Pokemon, error) {
	p.ID = uuid.NewString()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pokemon (id, name, "no", created_at)
		VALUES ($1, $2, $3, $4)
	`, p.ID, p.Name, p.No, p.CreatedAt)
	if err != nil {
		err = translateError(err, map[string]any{"name": p.Name, "no": p.No})
		return models.Pokemon{}, fmt.Errorf("failed to insert pokemon: %w", err)
	}

	return p, nil
}

func (s *Store) InsertMany(ctx context.Context, ps []models.Pokemon) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for start := 0; start < len(ps); start += insertChunk {
		end := min(start+insertChunk, len(ps))

		var b strings.Builder
		b.WriteString(`INSERT INTO pokemon (id, name, "no", created_at) VALUES `)
		args := make([]any, 0, (end-start)*4)
		for i, p := range ps[start:end] {
			if i > 0 {
				b.WriteString(", ")
			}
			n := len(args)
			fmt.Fprintf(&b, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)

			createdAt := p.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			args = append(args, uuid.NewString(), p.Name, p.No, createdAt.UTC())
		}

		if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
			return 0, fmt.Errorf("failed to insert pokemon batch: %w", translateError(err, nil))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(ps), nil
}

func (s *Store) UpdatePartial(ctx context.Context, id string, patch models.UpdatePokemonRequest) (models.Pokemon, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return models.Pokemon{}, store.ErrNotFound
	}

	var sets []string
	var args []any
	attempted := make(map[string]any)
	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
		attempted["name"] = *patch.Name
	}
	if patch.No != nil {
		args = append(args, *patch.No)
		sets = append(sets, fmt.Sprintf(`"no" = $%d`, len(args)))
		attempted["no"] = *patch.No
	}
	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}
	args = append(args, u.String())

	query := fmt.Sprintf(`UPDATE pokemon SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), selectColumns)
	p, err := scanOne(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Pokemon{}, err
		}
		return models.Pokemon{}, fmt.Errorf("failed to update pokemon: %w", translateError(err, attempted))
	}

	return p, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (int64, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM pokemon WHERE id = $1`, u.String())
	if err != nil {
		return 0, fmt.Errorf("failed to delete pokemon: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pokemon`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pokemon: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (models.Pokemon, error) {
	var p models.Pokemon
	err := row.Scan(&p.ID, &p.Name, &p.No, &p.CreatedAt)
	return p, err
}

// scanOne maps sql.ErrNoRows to store.ErrNotFound and wraps other errors.
func scanOne(row *sql.Row) (models.Pokemon, error) {
	p, err := scan(row)
	if err == sql.ErrNoRows {
		return models.Pokemon{}, store.ErrNotFound
	}
	if err != nil {
		return models.Pokemon{}, fmt.Errorf("failed to query pokemon: %w", err)
	}
	return p, nil
}
