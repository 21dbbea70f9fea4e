package domain

import "strings"

// Category is a stream the directory store knows about. Read-only in this
// service; IDs are the directory's numeric term identifiers.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Slug returns the URL form of the category name: lowercase, spaces replaced
// with hyphens.
func (c Category) Slug() string {
	return strings.ReplaceAll(strings.ToLower(c.Name), " ", "-")
}

// ContentTypeSubjects tags the one content type whose pages are restricted to
// the viewer's own stream.
const ContentTypeSubjects = "subjects"

// ContentItem is a document in the content store, optionally tied to a stream.
type ContentItem struct {
	ID       int64  `json:"id"`
	TypeTag  string `json:"type_tag"`
	Title    string `json:"title"`
	StreamID *int64 `json:"stream_id,omitempty"`
}
