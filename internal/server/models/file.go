// Package models defines server-side data models persisted in the database.
package models

import "time"

// File is one stored secret. Content holds ciphertext everywhere except
// inside the file service, which swaps in plaintext on the way out.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Content is the base64 envelope produced by cryptox.Encrypt at rest.
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// UserID partitions files by owner and is never sent to clients.
	UserID string `json:"-"`
}

// ShareLink grants anonymous read access to one file to whoever holds Code.
type ShareLink struct {
	FileID    string
	Code      string
	CreatedAt time.Time
}
