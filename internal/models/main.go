// Package models defines the core data structures for users and file advertisements.
package models

import "time"

// User represents a registered account.
type User struct {
	// ID is the store-assigned, strictly increasing identifier.
	ID int64
	// Username is the unique, case-sensitive login name.
	Username string
	// PasswordHash is the bcrypt hash of the password. Never exposed to clients.
	PasswordHash string
	// RegisteredAt is set once by the store at creation.
	RegisteredAt time.Time
}

// File represents a claim that a named file is available at a network
// endpoint. Size, type, address and port are advisory hints supplied by the
// advertiser and stored as given; duplicates coexist as distinct rows.
type File struct {
	// ID is the store-assigned, strictly increasing identifier.
	ID int64
	// Name is the advertised file name.
	Name string
	// Size is the advertised size in bytes. Zero when the client omitted it.
	Size int64
	// Type is the advertised file type, used for exact-match filtering.
	Type string
	// SharedBy is the user_id of the advertiser.
	SharedBy int64
	// Address is the host where the file can be fetched.
	Address string
	// Port is the port where the file can be fetched.
	Port int
	// UploadedAt is set once by the store at creation.
	UploadedAt time.Time
}

// SearchResult is one row of a catalog search: a file advertisement joined
// with the advertiser's username.
type SearchResult struct {
	FileID   int64  `json:"file_id"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	FileType string `json:"file_type"`
	SharedBy string `json:"shared_by"`
	Address  string `json:"ip_address"`
	Port     int    `json:"port"`
}
