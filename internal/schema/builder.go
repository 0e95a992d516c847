// Package schema implements the structure-decoding engine: positional record
// decoding, markup cross-referencing, item classification, page segmentation,
// and final model assembly. All positional index math is confined here.
package schema

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formclone/internal/dom"
	"github.com/goliatone/go-formclone/pkg/model"
	pkgschema "github.com/goliatone/go-formclone/pkg/schema"
	"github.com/goliatone/go-formclone/pkg/source"
)

// emailSubmissionKey is the fixed identifier the host reads respondent email
// from. It is a form-level setting, not an authored item, so the key is not
// an entry id.
const emailSubmissionKey = "emailAddress"

// Parser implements pkgschema.Parser.
type Parser struct {
	opts pkgschema.ParserOptions
}

var _ pkgschema.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgschema.ParserOptions) *Parser {
	return &Parser{opts: options}
}

// Parse runs decode, cross-reference, classify, segment, and assemble over
// one document snapshot.
func (p *Parser) Parse(ctx context.Context, doc source.Document) (pkgschema.Result, error) {
	if err := ctx.Err(); err != nil {
		return pkgschema.Result{}, err
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgschema.Result{}, pkgschema.ErrSchemaUnrecognized
	}

	records, meta, skipped, err := decode(raw)
	if err != nil {
		return pkgschema.Result{}, err
	}

	index := p.buildIndex(raw)

	questions := make([]model.Question, 0, len(records))
	for _, record := range records {
		question, note := classify(record, index.Lookup(record.ID))
		if note != nil {
			skipped = append(skipped, *note)
			continue
		}
		questions = append(questions, question)
	}

	if meta.CollectEmail {
		questions = append([]model.Question{emailQuestion()}, questions...)
	}

	questions, dupNotes := dropDuplicateKeys(questions)
	skipped = append(skipped, dupNotes...)

	if countAnswerable(questions) == 0 {
		return pkgschema.Result{Skipped: skipped}, pkgschema.ErrEmptyForm
	}

	form := model.FormModel{
		Title:       resolveContent(meta.Title, index.FormTitle),
		Description: resolveContent(meta.Description, index.FormDescription),
		Pages:       segment(questions),
	}
	return pkgschema.Result{Form: form, Skipped: skipped}, nil
}

func (p *Parser) buildIndex(raw []byte) *dom.Index {
	if p.opts.DisableCrossReference {
		return &dom.Index{}
	}
	parsed, err := dom.Parse(raw)
	if err != nil {
		// The embedded schema alone still classifies; the index only enriches.
		return &dom.Index{}
	}
	return dom.BuildIndex(parsed)
}

// emailQuestion synthesizes the implicit respondent-email item. It is
// prepended to the first page before segmentation and never carries a
// page-break flag.
func emailQuestion() model.Question {
	return model.Question{
		Type:          model.TypeEmail,
		Title:         model.PlainContent("Email"),
		Required:      true,
		SubmissionKey: emailSubmissionKey,
	}
}

// dropDuplicateKeys enforces the submission-key uniqueness invariant. A later
// item reusing a key (including grid row keys) is dropped with a note; the
// earlier item keeps the key, preserving display order.
func dropDuplicateKeys(questions []model.Question) ([]model.Question, []pkgschema.SkipNote) {
	seen := make(map[string]bool)
	kept := questions[:0:0]
	var notes []pkgschema.SkipNote

	for _, q := range questions {
		keys := make([]string, 0, 1+len(q.Rows))
		if q.SubmissionKey != "" {
			keys = append(keys, q.SubmissionKey)
		}
		for _, row := range q.Rows {
			keys = append(keys, row.SubmissionKey)
		}

		duplicate := ""
		for _, key := range keys {
			if seen[key] {
				duplicate = key
				break
			}
		}
		if duplicate != "" {
			notes = append(notes, pkgschema.SkipNote{
				ItemID: q.ID,
				Reason: fmt.Sprintf("duplicate submission key %q", duplicate),
			})
			continue
		}
		for _, key := range keys {
			seen[key] = true
		}
		kept = append(kept, q)
	}
	return kept, notes
}

func countAnswerable(questions []model.Question) int {
	n := 0
	for _, q := range questions {
		if q.Type != model.TypeSectionHeader {
			n++
		}
	}
	return n
}
