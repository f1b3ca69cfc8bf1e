// Package editor implements the admin forms that create, update and delete
// portfolio records.
//
// Every entity goes through the same cycle:
//
//	Idle -> EditingNew | EditingExisting -> Submitting -> Idle
//
// A failed submit returns the draft in its editing state with the error
// attached so the form can be shown again, still populated.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zachkp/portfolio/internal/errs"
	"github.com/Zachkp/portfolio/internal/media"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/rs/zerolog"
)

type State int

const (
	Idle State = iota
	EditingNew
	EditingExisting
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case EditingNew:
		return "editing-new"
	case EditingExisting:
		return "editing-existing"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Draft is the in-progress form state for one entity.
type Draft[F any] struct {
	State State
	ID    string
	Form  F
	Err   *errs.HTTPError
}

// Editing reports whether the draft is an open form.
func (d Draft[F]) Editing() bool {
	return d.State == EditingNew || d.State == EditingExisting
}

// Kind describes how one entity maps between its record and form.
type Kind[R, F any] struct {
	// Noun is used in messages: "Skill added successfully".
	Noun string
	// FixedID, when set, makes every submit overwrite that id.
	FixedID string
	// InvalidMessage is shown when required fields are missing.
	InvalidMessage string

	Blank      func() F
	FromRecord func(R) F
	Build      func(F) R
	RecordID   func(R) string

	// Check adds rules that validator tags cannot express. Optional.
	Check func(f F, creating bool, hasUpload bool) []errs.FieldError
	// Image returns the image reference field of the form, or nil when the
	// entity has no image.
	Image func(*F) *string
}

// Editor runs the draft cycle for one Kind against one collection.
type Editor[R, F any] struct {
	kind       Kind[R, F]
	collection *store.Collection[R]
	uploader   media.Uploader
	logger     *zerolog.Logger
}

func New[R, F any](kind Kind[R, F], collection *store.Collection[R], uploader media.Uploader, logger *zerolog.Logger) *Editor[R, F] {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Editor[R, F]{kind: kind, collection: collection, uploader: uploader, logger: logger}
}

// Idle returns a closed, blank draft.
func (e *Editor[R, F]) Idle() Draft[F] {
	return Draft[F]{State: Idle, Form: e.kind.Blank()}
}

// Add opens a blank draft for a new record.
func (e *Editor[R, F]) Add() Draft[F] {
	return Draft[F]{State: EditingNew, Form: e.kind.Blank()}
}

// Edit opens a draft pre-filled from an existing record.
func (e *Editor[R, F]) Edit(record R) Draft[F] {
	id := e.kind.FixedID
	if e.kind.RecordID != nil {
		id = e.kind.RecordID(record)
	}
	return Draft[F]{State: EditingExisting, ID: id, Form: e.kind.FromRecord(record)}
}

// Load opens an edit draft for the record stored at id.
func (e *Editor[R, F]) Load(ctx context.Context, id string) (Draft[F], error) {
	record, err := e.collection.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return e.Idle(), errs.NewNotFoundError(e.kind.Noun + " not found")
	}
	if err != nil {
		e.logger.Error().Err(err).Str("collection", e.collection.Name()).Str("id", id).Msg("failed to load record")
		return e.Idle(), errs.NewInternalServerError("Failed to load " + e.noun())
	}
	return e.Edit(record), nil
}

// List returns the stored records in store order.
func (e *Editor[R, F]) List(ctx context.Context) ([]R, error) {
	return e.collection.List(ctx)
}

// Submit validates the draft, uploads the attached image if any, and writes
// the record. On success it returns an idle draft and a success message; on
// failure it returns the draft unchanged except for Err (and an image
// reference from a completed upload).
func (e *Editor[R, F]) Submit(ctx context.Context, d Draft[F], upload *media.File) (Draft[F], string, error) {
	if e.kind.FixedID != "" {
		d.ID = e.kind.FixedID
	}
	creating := d.ID == ""
	editing := EditingExisting
	if creating {
		editing = EditingNew
	}

	fail := func(err *errs.HTTPError) (Draft[F], string, error) {
		d.State = editing
		d.Err = err
		return d, "", err
	}

	d.State = Submitting
	d.Err = nil

	if err := e.validate(d.Form, creating, upload != nil); err != nil {
		return fail(err)
	}

	uploaded := ""
	if upload != nil && e.kind.Image != nil {
		ref, err := e.uploader.Upload(ctx, *upload)
		if err != nil {
			e.logger.Error().Err(err).Str("collection", e.collection.Name()).Msg("image upload failed")
			switch {
			case errors.Is(err, media.ErrNotImage):
				return fail(errs.NewBadRequestError("Please upload an image file", []errs.FieldError{{Field: "image", Error: "must be an image"}}))
			case errors.Is(err, media.ErrTooLarge):
				return fail(errs.NewBadRequestError("Image is too large", []errs.FieldError{{Field: "image", Error: "is too large"}}))
			}
			return fail(errs.NewInternalServerError("Failed to upload image"))
		}
		*e.kind.Image(&d.Form) = ref
		uploaded = ref
	}

	record := e.kind.Build(d.Form)
	var (
		err     error
		message string
	)
	if d.ID == "" {
		d.ID, err = e.collection.Create(ctx, record)
		message = e.kind.Noun + " added successfully"
	} else {
		err = e.collection.Overwrite(ctx, d.ID, record)
		message = e.kind.Noun + " updated successfully"
	}
	if err != nil {
		event := e.logger.Error().Err(err).Str("collection", e.collection.Name()).Str("id", d.ID)
		if uploaded != "" {
			event = event.Str("orphaned_image", uploaded)
		}
		event.Msg("failed to write record")
		if creating {
			return fail(errs.NewInternalServerError("Failed to add " + e.noun()))
		}
		return fail(errs.NewInternalServerError("Failed to update " + e.noun()))
	}

	e.logger.Info().Str("collection", e.collection.Name()).Str("id", d.ID).Msg(message)
	if e.kind.FixedID != "" {
		// Singletons stay open on the saved values.
		return Draft[F]{State: EditingExisting, ID: d.ID, Form: d.Form}, message, nil
	}
	return e.Idle(), message, nil
}

// Delete removes the record at id. There is no confirmation and no undo.
func (e *Editor[R, F]) Delete(ctx context.Context, id string) (string, error) {
	if err := e.collection.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", errs.NewNotFoundError(e.kind.Noun + " not found")
		}
		e.logger.Error().Err(err).Str("collection", e.collection.Name()).Str("id", id).Msg("failed to delete record")
		return "", errs.NewInternalServerError("Failed to delete " + e.noun())
	}
	e.logger.Info().Str("collection", e.collection.Name()).Str("id", id).Msg("record deleted")
	return e.kind.Noun + " deleted successfully", nil
}

func (e *Editor[R, F]) validate(form F, creating, hasUpload bool) *errs.HTTPError {
	var fields []errs.FieldError
	if err := errs.ValidateStruct(form, e.kind.InvalidMessage); err != nil {
		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			return errs.NewBadRequestError(e.kind.InvalidMessage, nil)
		}
		fields = append(fields, httpErr.Errors...)
	}
	if e.kind.Check != nil {
		fields = append(fields, e.kind.Check(form, creating, hasUpload)...)
	}
	if len(fields) == 0 {
		return nil
	}
	return errs.NewBadRequestError(e.kind.InvalidMessage, dedupe(fields))
}

func (e *Editor[R, F]) noun() string {
	return strings.ToLower(e.kind.Noun)
}

func dedupe(fields []errs.FieldError) []errs.FieldError {
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if seen[f.Field] {
			continue
		}
		seen[f.Field] = true
		out = append(out, f)
	}
	return out
}
