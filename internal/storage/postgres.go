package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/dbx"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresAdapter keeps each collection in its own table.
type PostgresAdapter struct {
	db dbx.DBTX
}

func NewPostgresAdapter(db dbx.DBTX) *PostgresAdapter {
	return &PostgresAdapter{db: db}
}

func table(c Collection) (string, error) {
	switch c {
	case CollectionFacts, CollectionSubmissions:
		return string(c), nil
	}
	return "", fmt.Errorf("unknown collection %q", string(c))
}

// List returns approved rows for facts and unapproved rows for submissions,
// newest first.
func (r *PostgresAdapter) List(ctx context.Context, c Collection) ([]models.Record, error) {
	t, err := table(c)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, text, category, submitted_by, source, created_at, approved FROM ` + t + `
		 WHERE approved = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, c == CollectionFacts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Record{}
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.Category, &rec.SubmittedBy, &rec.Source, &rec.CreatedAt, &rec.Approved); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresAdapter) Get(ctx context.Context, c Collection, id string) (*models.Record, error) {
	t, err := table(c)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, text, category, submitted_by, source, created_at, approved FROM ` + t + `
		 WHERE id = $1`

	rec := &models.Record{}
	err = r.db.QueryRowContext(ctx, query, id).
		Scan(&rec.ID, &rec.Text, &rec.Category, &rec.SubmittedBy, &rec.Source, &rec.CreatedAt, &rec.Approved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Put deletes every row and inserts records. When the adapter sits on a pool
// rather than a transaction, it opens one so the swap is atomic.
func (r *PostgresAdapter) Put(ctx context.Context, c Collection, records []models.Record) error {
	t, err := table(c)
	if err != nil {
		return err
	}

	replace := func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		for _, rec := range records {
			if err := insert(ctx, tx, t, rec); err != nil {
				return err
			}
		}
		return nil
	}

	if b, ok := r.db.(dbx.TxBeginner); ok {
		return dbx.WithTx(ctx, b, nil, replace)
	}
	return replace(ctx, r.db)
}

func (r *PostgresAdapter) Insert(ctx context.Context, c Collection, rec models.Record) error {
	t, err := table(c)
	if err != nil {
		return err
	}
	return insert(ctx, r.db, t, rec)
}

func insert(ctx context.Context, db dbx.DBTX, t string, rec models.Record) error {
	query := `INSERT INTO ` + t + ` (id, text, category, submitted_by, source, created_at, approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := db.ExecContext(ctx, query,
		rec.ID, rec.Text, rec.Category, rec.SubmittedBy, rec.Source, rec.CreatedAt, rec.Approved)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%s %s: %w", t, rec.ID, common.ErrorAlreadyExists)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresAdapter) Replace(ctx context.Context, c Collection, rec models.Record) error {
	t, err := table(c)
	if err != nil {
		return err
	}

	query := `UPDATE ` + t + ` SET text = $2, category = $3, submitted_by = $4, source = $5, created_at = $6, approved = $7
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Text, rec.Category, rec.SubmittedBy, rec.Source, rec.CreatedAt, rec.Approved)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresAdapter) Remove(ctx context.Context, c Collection, id string) (bool, error) {
	t, err := table(c)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+t+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
