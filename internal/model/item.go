package model

// Item is a file or folder in the remote store.
type Item struct {
	ID           string
	Title        string
	ModifiedTime string // RFC 3339 as reported by the store; may be empty
	MimeType     string
}
