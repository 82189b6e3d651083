// Package model contains domain models/data structures.
package model

import "time"

// Developer is a single row of the developers table.
// Name and FavLang are nullable: absent input is stored and rendered as null.
type Developer struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	FavLang   *string   `json:"fav_lang"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
