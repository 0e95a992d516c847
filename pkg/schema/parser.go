// Package schema declares the contract for turning one fetched form document
// into a typed model. The implementation lives under internal/schema; this
// package only carries the interface, options, per-item skip notes, and the
// document-level error taxonomy.
package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formclone/pkg/model"
	"github.com/goliatone/go-formclone/pkg/source"
)

// ErrSchemaUnrecognized is returned when the document carries no recognizable
// embedded form data, or the embedded literal is not valid JSON. It is the
// only fatal decode failure besides ErrEmptyForm.
var ErrSchemaUnrecognized = errors.New("schema: no recognizable embedded form data")

// ErrEmptyForm is returned when decoding succeeded but produced zero usable
// questions across all pages.
var ErrEmptyForm = errors.New("schema: form contains no usable questions")

// SkipNote records one item dropped during decoding or classification.
// Per-item failures never abort a parse; notes make the skip-and-continue
// behaviour auditable for maintainers tracking upstream format drift.
type SkipNote struct {
	ItemID int64  `json:"itemId"`
	Reason string `json:"reason"`
}

func (n SkipNote) String() string {
	return fmt.Sprintf("item %d skipped: %s", n.ItemID, n.Reason)
}

// Result bundles the assembled model with the notes accumulated while
// building it.
type Result struct {
	Form    model.FormModel
	Skipped []SkipNote
}

// Parser reconstructs a FormModel from one document snapshot. Implementations
// are pure: the same document always yields a structurally equal result.
type Parser interface {
	Parse(ctx context.Context, doc source.Document) (Result, error)
}

// ParserOptions tunes parsing behaviour.
type ParserOptions struct {
	// DisableCrossReference skips the markup index pass entirely, classifying
	// from the embedded schema alone. Intended for tests and for documents
	// saved without their full markup.
	DisableCrossReference bool
}
