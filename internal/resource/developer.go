// Package resource holds the public JSON views of domain models.
package resource

import "devapi/internal/model"

// Developer is the collection view of a developer: only name and fav_lang.
type Developer struct {
	Name    *string `json:"name"`
	FavLang *string `json:"fav_lang"`
}

// NewDeveloper projects a record onto its collection view.
func NewDeveloper(d model.Developer) Developer {
	return Developer{Name: d.Name, FavLang: d.FavLang}
}

// NewDeveloperCollection projects records in order. The result is never nil
// so an empty table renders as [].
func NewDeveloperCollection(items []model.Developer) []Developer {
	out := make([]Developer, 0, len(items))
	for _, d := range items {
		out = append(out, NewDeveloper(d))
	}
	return out
}
