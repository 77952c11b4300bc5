// Package models holds the client-side view of vault resources.
package models

import "time"

// File is a decrypted secret as returned by the server.
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShareLink is everything an anonymous reader needs to open a file.
type ShareLink struct {
	FileID string `json:"id"`
	Code   string `json:"code"`
}
