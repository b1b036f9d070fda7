// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package models

import "time"

// Label is the key-value store representation of a colored label.
type Label struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Color string `json:"color"` // hex string, e.g. "#ff8800"

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Tags returns the search tags for the indexer message of this label.
func (l *Label) Tags() []string {
	return []string{l.UID, l.Name}
}
