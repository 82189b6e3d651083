// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres).
package repository

import (
	"context"

	"devapi/internal/model"
)

// DeveloperRepository defines data access for developers using SQL queries only.
// No business logic here — strictly persistence operations.
// Lookups and mutations that match no row return sql.ErrNoRows.
type DeveloperRepository interface {
	// Create inserts a new developer and returns the stored row, including the assigned ID.
	Create(ctx context.Context, dev *model.Developer) (*model.Developer, error)

	// FindByID returns a developer by its ID.
	FindByID(ctx context.Context, id int64) (*model.Developer, error)

	// Update overwrites name, fav_lang and updated_at of an existing row.
	Update(ctx context.Context, dev *model.Developer) (*model.Developer, error)

	// Delete removes a developer by ID.
	Delete(ctx context.Context, id int64) error

	// List returns every developer in primary key order. Each call runs a fresh query.
	List(ctx context.Context) ([]model.Developer, error)
}
