package schema

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formclone/internal/dom"
	"github.com/goliatone/go-formclone/pkg/model"
	pkgschema "github.com/goliatone/go-formclone/pkg/schema"
)

// submissionKey renders the identifier answers are keyed by.
func submissionKey(entryID int64) string {
	return "entry." + strconv.FormatInt(entryID, 10)
}

// classify maps one decoded record to its Question variant. Pure: the same
// record and auxiliary content always produce a structurally equal result.
// Every failure degrades to a skip of that single item, never further.
func classify(record ItemRecord, aux *dom.ItemContent) (model.Question, *pkgschema.SkipNote) {
	question := model.Question{
		ID:          record.ID,
		Title:       resolveContent(record.Title, auxTitle(aux)),
		Description: resolveContent(record.Description, auxDescription(aux)),
		PageBreak:   record.PageBreak,
	}
	if aux != nil && aux.ImageURL != "" {
		question.Title.ImageURL = aux.ImageURL
	}

	// A missing payload is the authoritative section-header signal: it wins
	// over whatever the numeric type code claims.
	if record.Payload == nil {
		question.Type = model.TypeSectionHeader
		return question, nil
	}

	question.Required = record.Required

	switch record.TypeCode {
	case codeShortText:
		question.Type = model.TypeShortText
	case codeParagraph:
		question.Type = model.TypeParagraph
	case codeDate:
		question.Type = model.TypeDate
	case codeTime:
		question.Type = model.TypeTime
	case codeSingleChoice, codeMultiChoice:
		question.Type = model.TypeSingleChoice
		if record.TypeCode == codeMultiChoice {
			question.Type = model.TypeMultiChoice
		}
		question.Options, question.HasOther = decodeOptions(record.Payload, aux)
	case codeDropdown:
		question.Type = model.TypeDropdown
		question.Choices = decodeChoices(record.Payload)
	case codeLinearScale:
		question.Type = model.TypeLinearScale
		question.Scale = decodeChoices(record.Payload)
		question.LowLabel, question.HighLabel = decodeScaleLabels(record.Payload)
	case codeRating:
		question.Type = model.TypeRating
		question.Scale = decodeChoices(record.Payload)
	case codeGrid:
		return classifyGrid(record, question)
	default:
		return model.Question{}, &pkgschema.SkipNote{
			ItemID: record.ID,
			Reason: fmt.Sprintf("unknown item type %d", record.TypeCode),
		}
	}

	if record.EntryID == 0 {
		return model.Question{}, &pkgschema.SkipNote{
			ItemID: record.ID,
			Reason: "missing submission entry",
		}
	}
	question.SubmissionKey = submissionKey(record.EntryID)
	return question, nil
}

// resolveContent applies the precedence invariant: markup-derived content
// wins for rich text, the embedded schema value is the fallback, and the
// untitled placeholder backstops both so labels never go blank.
func resolveContent(raw string, aux dom.Content) model.RichContent {
	if aux.Text != "" || aux.HTML != "" {
		return model.RichContent{Text: aux.Text, HTML: aux.HTML}
	}
	return model.PlainContent(raw)
}

func auxTitle(aux *dom.ItemContent) dom.Content {
	if aux == nil {
		return dom.Content{}
	}
	return aux.Title
}

func auxDescription(aux *dom.ItemContent) dom.Content {
	if aux == nil {
		return dom.Content{}
	}
	return aux.Description
}

// decodeOptions reads a choice list, separating the other-escape entry from
// real options. An entry flagged as "other" never joins the option list; it
// only flips HasOther. Entries left with empty text are sentinel padding in
// the source data and are dropped.
func decodeOptions(payload seq, aux *dom.ItemContent) ([]model.Option, bool) {
	answer, ok := payload.seqAt(0)
	if !ok {
		return nil, false
	}
	entries, ok := answer.seqAt(1)
	if !ok {
		return nil, false
	}

	var (
		options  []model.Option
		hasOther bool
	)
	for _, raw := range entries {
		entry, ok := asSeq(raw)
		if !ok {
			continue
		}
		if entry.truthyAt(4) {
			hasOther = true
			continue
		}
		text, _ := entry.scalarAt(0)
		if text == "" {
			continue
		}
		options = append(options, model.Option{
			Text:     text,
			ImageURL: aux.ImageFor(len(options), text),
		})
	}
	return options, hasOther
}

// decodeChoices reads a plain choice list (dropdown entries, scale points).
func decodeChoices(payload seq) []string {
	answer, ok := payload.seqAt(0)
	if !ok {
		return nil
	}
	entries, ok := answer.seqAt(1)
	if !ok {
		return nil
	}
	var out []string
	for _, raw := range entries {
		entry, ok := asSeq(raw)
		if !ok {
			continue
		}
		if text, ok := entry.scalarAt(0); ok && text != "" {
			out = append(out, text)
		}
	}
	return out
}

func decodeScaleLabels(payload seq) (low, high string) {
	answer, ok := payload.seqAt(0)
	if !ok {
		return "", ""
	}
	labels, ok := answer.seqAt(3)
	if !ok {
		return "", ""
	}
	low, _ = labels.strAt(0)
	high, _ = labels.strAt(1)
	return low, high
}

// classifyGrid decodes the whole payload as row descriptors. The first row is
// authoritative for the shared column list and for the select mode: grids are
// never mixed-mode, so its nested multi-select flag decides for all rows.
// Required is the union over rows, since some revisions flag rows
// independently.
func classifyGrid(record ItemRecord, question model.Question) (model.Question, *pkgschema.SkipNote) {
	question.Type = model.TypeGrid

	first, ok := record.Payload.seqAt(0)
	if !ok {
		return model.Question{}, &pkgschema.SkipNote{ItemID: record.ID, Reason: "grid has no row descriptors"}
	}

	columns, ok := first.seqAt(1)
	if !ok {
		return model.Question{}, &pkgschema.SkipNote{ItemID: record.ID, Reason: "grid first row has no columns"}
	}
	for _, raw := range columns {
		col, ok := asSeq(raw)
		if !ok {
			continue
		}
		if text, ok := col.scalarAt(0); ok {
			question.Columns = append(question.Columns, text)
		}
	}

	if flags, ok := first.seqAt(11); ok {
		question.MultiSelect = flags.truthyAt(0)
	}

	for _, raw := range record.Payload {
		row, ok := asSeq(raw)
		if !ok {
			continue
		}
		entryID, ok := row.intAt(0)
		if !ok || entryID == 0 {
			continue
		}
		label := ""
		if labels, ok := row.seqAt(3); ok {
			label, _ = labels.scalarAt(0)
		}
		question.Rows = append(question.Rows, model.GridRow{
			Text:          label,
			SubmissionKey: submissionKey(entryID),
		})
		if row.truthyAt(2) {
			question.Required = true
		}
	}

	if len(question.Rows) == 0 {
		return model.Question{}, &pkgschema.SkipNote{ItemID: record.ID, Reason: "grid has no answerable rows"}
	}
	return question, nil
}
