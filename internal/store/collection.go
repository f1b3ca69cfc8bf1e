package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Normalizer is implemented by record types that default or clean their
// fields after decoding.
type Normalizer interface {
	Normalize()
}

// Collection is a typed view over one collection of a DocumentStore. Records
// are encoded as JSON; the id is kept out of the payload and restored by
// setID on read.
type Collection[T any] struct {
	store DocumentStore
	name  string
	setID func(*T, string)
}

// NewCollection binds name in ds to record type T.
func NewCollection[T any](ds DocumentStore, name string, setID func(*T, string)) *Collection[T] {
	return &Collection[T]{store: ds, name: name, setID: setID}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// List returns every record in store order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		record, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// Get returns the record at id or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return zero, err
	}
	return c.decode(doc)
}

// Create stores record under a new id and returns it.
func (c *Collection[T]) Create(ctx context.Context, record T) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.store.Create(ctx, c.name, data)
}

// Overwrite replaces the whole record at id.
func (c *Collection[T]) Overwrite(ctx context.Context, id string, record T) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.store.Overwrite(ctx, c.name, id, data)
}

// Delete removes the record at id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T]) decode(doc Document) (T, error) {
	var record T
	if err := json.Unmarshal(doc.Data, &record); err != nil {
		return record, fmt.Errorf("decode %s/%s: %w", c.name, doc.ID, err)
	}
	if c.setID != nil {
		c.setID(&record, doc.ID)
	}
	if n, ok := any(&record).(Normalizer); ok {
		n.Normalize()
	}
	return record, nil
}
