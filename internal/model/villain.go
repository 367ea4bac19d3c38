// Package model holds the domain types shared by the repository, service
// and handler layers.
package model

import (
	"time"
)

// VillainFields lists the columns every read projects. Store-managed
// metadata is never part of it.
var VillainFields = []string{"name", "movie", "slug"}

// Villain is the client-facing projection of a villain.
type Villain struct {
	Name  string `json:"name"`
	Movie string `json:"movie"`
	Slug  string `json:"slug"`
}

// VillainRecord is a villain row as returned by an insert, including the
// metadata managed by the database.
type VillainRecord struct {
	Villain

	ID        int64      `json:"id,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
