package models

// Document is the cached text extracted from one upload.
type Document struct {
	ID    int64
	Owner string
	Name  string
	Text  string
}

// DocumentSummary is the admin listing view of a Document.
type DocumentSummary struct {
	ID         int64
	Owner      string
	Name       string
	TextLength int64
}
