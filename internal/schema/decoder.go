package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	pkgschema "github.com/goliatone/go-formclone/pkg/schema"
)

// dataMarker is the well-known global assignment the form page embeds its
// schema behind. The decoder strips the assignment prefix and parses the
// array literal that follows; the trailing semicolon is ignored by reading
// exactly one JSON value.
const dataMarker = "var FB_PUBLIC_LOAD_DATA_ ="

// decode extracts the embedded positional array from the raw document and
// produces one ItemRecord per recognizable item plus the form-level metadata.
// Per-item failures become skip notes; only a missing or malformed embedded
// literal is fatal.
func decode(raw []byte) ([]ItemRecord, FormMeta, []pkgschema.SkipNote, error) {
	start := bytes.Index(raw, []byte(dataMarker))
	if start < 0 {
		return nil, FormMeta{}, nil, pkgschema.ErrSchemaUnrecognized
	}

	var root any
	decoder := json.NewDecoder(bytes.NewReader(raw[start+len(dataMarker):]))
	if err := decoder.Decode(&root); err != nil {
		return nil, FormMeta{}, nil, fmt.Errorf("%w: %v", pkgschema.ErrSchemaUnrecognized, err)
	}

	data, ok := asSeq(root)
	if !ok {
		return nil, FormMeta{}, nil, pkgschema.ErrSchemaUnrecognized
	}

	meta := decodeMeta(data)

	info, _ := data.seqAt(1)
	entries, ok := info.seqAt(1)
	if !ok {
		// A header-only document decodes to zero items; the assembler turns
		// that into the empty-form failure.
		return nil, meta, nil, nil
	}

	var (
		records []ItemRecord
		skipped []pkgschema.SkipNote
	)
	for _, entry := range entries {
		record, note := decodeItem(entry)
		if note != nil {
			skipped = append(skipped, *note)
			continue
		}
		records = append(records, record)
	}

	// Source order defines display order; every downstream component depends
	// on it, so records are never reordered.
	return records, meta, skipped, nil
}

func decodeMeta(data seq) FormMeta {
	meta := FormMeta{}
	info, _ := data.seqAt(1)

	if title, ok := info.strAt(8); ok && title != "" {
		meta.Title = title
	} else if title, ok := data.strAt(3); ok {
		meta.Title = title
	}
	meta.Description, _ = info.strAt(0)

	if settings, ok := info.seqAt(10); ok {
		meta.CollectEmail = settings.truthyAt(0)
	}
	return meta
}

func decodeItem(entry any) (ItemRecord, *pkgschema.SkipNote) {
	item, ok := asSeq(entry)
	if !ok {
		return ItemRecord{}, &pkgschema.SkipNote{Reason: "item entry is not a list"}
	}

	record := ItemRecord{}
	record.ID, _ = item.intAt(0)
	record.Title, _ = item.strAt(1)
	record.Description, _ = item.strAt(2)

	typeCode, ok := item.intAt(3)
	if !ok {
		return ItemRecord{}, &pkgschema.SkipNote{ItemID: record.ID, Reason: "missing type code"}
	}
	record.TypeCode = typeCode
	record.PageBreak = typeCode == codePageBreak

	payload, ok := item.seqAt(4)
	if !ok || len(payload) == 0 {
		// No payload: a header or media block. Classified without answer
		// descriptors.
		return record, nil
	}
	record.Payload = payload

	// Grid payloads are a list of row descriptors, each carrying its own
	// entry id; the classifier decodes them as a whole. Every other code
	// stores a single answer descriptor at the payload head.
	if typeCode != codeGrid {
		answer, ok := payload.seqAt(0)
		if !ok {
			return ItemRecord{}, &pkgschema.SkipNote{ItemID: record.ID, Reason: "malformed answer descriptor"}
		}
		record.EntryID, _ = answer.intAt(0)
		record.Required = answer.truthyAt(2)
	}

	return record, nil
}
