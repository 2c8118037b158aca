// Package api implements access to Rust crate documentation.
//
// The api package provides:
// - Crate metadata and README retrieval from the crates.io registry
// - Item-level documentation lookup against docs.rs
// - Crate search on crates.io
// - HTML to Markdown conversion for fetched pages
//
// Fetched documents are cached on disk, see the cache subpackage.
package api

// ErrorCode defines error types for API operations
type ErrorCode string

const (
	// ErrCrateNotFound represents an error when a crate does not exist on crates.io
	ErrCrateNotFound ErrorCode = "CrateNotFound"
	// ErrReadmeNotFound represents an error when a crate has no README
	ErrReadmeNotFound ErrorCode = "ReadmeNotFound"
	// ErrItemNotFound represents an error when no docs.rs page matches an item path
	ErrItemNotFound ErrorCode = "ItemNotFound"
	// ErrInvalidItemPath represents an error for a malformed item path
	ErrInvalidItemPath ErrorCode = "InvalidItemPath"
	// ErrRegistryUnavailable represents an unexpected registry response
	ErrRegistryUnavailable ErrorCode = "RegistryUnavailable"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
