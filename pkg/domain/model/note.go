package model

import (
	"time"

	"github.com/google/uuid"
)

// Note is an append-only note embedded in a workflow entity. Notes are never
// edited or reordered after creation.
type Note struct {
	ID        string    `json:"id" firestore:"id"`
	Author    string    `json:"author" firestore:"author"`
	Body      string    `json:"body" firestore:"body"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
}

// NewNote creates a note with a fresh ID and timestamp
func NewNote(author, body string) Note {
	return Note{
		ID:        uuid.New().String(),
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// DocumentRef is an append-only reference to an uploaded file held in object
// storage, embedded in a workflow entity or activity.
type DocumentRef struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	ObjectKey   string    `json:"objectKey" firestore:"object_key"`
	URL         string    `json:"url" firestore:"url"`
	ContentType string    `json:"contentType" firestore:"content_type"`
	Size        int64     `json:"size" firestore:"size"`
	Uploader    string    `json:"uploader" firestore:"uploader"`
	UploadedAt  time.Time `json:"uploadedAt" firestore:"uploaded_at"`
}

// NewDocumentRef creates a document reference with a fresh ID and timestamp
func NewDocumentRef(name, objectKey, url, contentType string, size int64, uploader string) DocumentRef {
	return DocumentRef{
		ID:          uuid.New().String(),
		Name:        name,
		ObjectKey:   objectKey,
		URL:         url,
		ContentType: contentType,
		Size:        size,
		Uploader:    uploader,
		UploadedAt:  time.Now().UTC(),
	}
}

func cloneNotes(notes []Note) []Note {
	if notes == nil {
		return nil
	}
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}

func cloneDocumentRefs(docs []DocumentRef) []DocumentRef {
	if docs == nil {
		return nil
	}
	out := make([]DocumentRef, len(docs))
	copy(out, docs)
	return out
}
