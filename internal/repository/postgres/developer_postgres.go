package postgres

import (
	"context"
	"database/sql"

	"devapi/internal/model"
	"devapi/internal/repository"
)

const developerColumns = `id, name, fav_lang, created_at, updated_at`

// DeveloperPostgres is a PostgreSQL implementation of repository.DeveloperRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DeveloperPostgres struct {
	db *sql.DB
}

// NewDeveloperPostgres creates a new DeveloperPostgres repository.
func NewDeveloperPostgres(db *sql.DB) *DeveloperPostgres {
	return &DeveloperPostgres{db: db}
}

var _ repository.DeveloperRepository = (*DeveloperPostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanDeveloper(s scanner) (*model.Developer, error) {
	var (
		d       model.Developer
		name    sql.NullString
		favLang sql.NullString
	)
	if err := s.Scan(&d.ID, &name, &favLang, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if name.Valid {
		d.Name = &name.String
	}
	if favLang.Valid {
		d.FavLang = &favLang.String
	}
	return &d, nil
}

// Create inserts a new developer row and returns the stored record.
func (r *DeveloperPostgres) Create(ctx context.Context, dev *model.Developer) (*model.Developer, error) {
	const q = `
		INSERT INTO developers (name, fav_lang, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + developerColumns
	row := r.db.QueryRowContext(ctx, q,
		dev.Name,
		dev.FavLang,
		dev.CreatedAt,
		dev.UpdatedAt,
	)
	return scanDeveloper(row)
}

// FindByID fetches a single developer by its ID.
func (r *DeveloperPostgres) FindByID(ctx context.Context, id int64) (*model.Developer, error) {
	const q = `
		SELECT ` + developerColumns + `
		FROM developers
		WHERE id = $1
	`
	return scanDeveloper(r.db.QueryRowContext(ctx, q, id))
}

// Update overwrites the mutable columns of a developer and returns the stored record.
func (r *DeveloperPostgres) Update(ctx context.Context, dev *model.Developer) (*model.Developer, error) {
	const q = `
		UPDATE developers
		SET name = $1, fav_lang = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + developerColumns
	row := r.db.QueryRowContext(ctx, q,
		dev.Name,
		dev.FavLang,
		dev.UpdatedAt,
		dev.ID,
	)
	return scanDeveloper(row)
}

// Delete removes a developer by ID.
func (r *DeveloperPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM developers WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all developers ordered by ID, which is insertion order for a serial key.
func (r *DeveloperPostgres) List(ctx context.Context) ([]model.Developer, error) {
	const q = `
		SELECT ` + developerColumns + `
		FROM developers
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Developer, 0)
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
