package models

// File is a stored file record. Name is the sole identity: renames change
// the primary key in place while the content stays put.
type File struct {
	Name    string
	Content []byte
	// Size is recorded as declared at upload time and is not re-derived
	// from Content on read.
	Size int64
}

// FileInfo is the (name, size) projection returned by listings.
type FileInfo struct {
	Name string
	Size int64
}
