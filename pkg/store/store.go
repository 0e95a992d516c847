// Package store holds assembled form models between the build and submit
// steps. The contract is deliberately one-shot: a model saved for rendering
// is retrievable exactly once for its matching submission, which enforces the
// at-most-one-pending-submission invariant the normalizer assumes.
package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-formclone/pkg/model"
)

// ErrNotFound is returned when the key is unknown, expired, or its model was
// already taken.
var ErrNotFound = errors.New("store: form model not found")

// Store is the keyed model store collaborator.
type Store interface {
	// Save stores the model and returns the key to retrieve it by.
	Save(ctx context.Context, form model.FormModel) (string, error)

	// Take retrieves and removes the model in one step. A second Take with
	// the same key fails with ErrNotFound.
	Take(ctx context.Context, key string) (model.FormModel, error)
}
