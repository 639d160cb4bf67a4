package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// KnowledgeDoc is an entry of the shared document knowledge base. The file
// body lives in object storage under ObjectKey; the repository holds only
// the metadata.
type KnowledgeDoc struct {
	ID          int64     `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Tags        []string  `json:"tags" firestore:"tags"`
	ObjectKey   string    `json:"objectKey" firestore:"object_key"`
	URL         string    `json:"url" firestore:"url"`
	ContentType string    `json:"contentType" firestore:"content_type"`
	Size        int64     `json:"size" firestore:"size"`
	Uploader    string    `json:"uploader" firestore:"uploader"`
	CreatedAt   time.Time `json:"createdAt" firestore:"created_at"`
}

// Validate checks required knowledge doc fields
func (d *KnowledgeDoc) Validate() error {
	if d.Title == "" {
		return goerr.New("knowledge doc title is required")
	}
	if d.ObjectKey == "" {
		return goerr.New("knowledge doc object key is required")
	}
	return nil
}

// Clone returns a deep copy of the knowledge doc
func (d *KnowledgeDoc) Clone() *KnowledgeDoc {
	copied := *d
	if d.Tags != nil {
		copied.Tags = make([]string, len(d.Tags))
		copy(copied.Tags, d.Tags)
	}
	return &copied
}
