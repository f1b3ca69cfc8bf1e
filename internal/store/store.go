// Package store is the document store behind the portfolio content.
//
// Records live in named collections and are addressed by an opaque id. The
// store keeps collection order stable: List returns documents in the order they
// were first written, and Overwrite keeps a document's position.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Collection names.
const (
	Skills       = "skills"
	Experiences  = "experiences"
	Projects     = "projects"
	PersonalInfo = "personalInfo"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Document is a raw stored record.
type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStore is the minimal contract the content layer needs.
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Create(ctx context.Context, collection string, data json.RawMessage) (string, error)
	// Overwrite replaces the document at id, creating it if absent.
	Overwrite(ctx context.Context, collection, id string, data json.RawMessage) error
	Delete(ctx context.Context, collection, id string) error
}
