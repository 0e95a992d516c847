package schema

import (
	"errors"
	"testing"

	pkgschema "github.com/goliatone/go-formclone/pkg/schema"
)

func TestDecode_PreservesSourceOrder(t *testing.T) {
	doc := formDocument(t, "Survey", "About you", false, []any{
		textItem(10, "First", codeShortText, 100, true),
		textItem(20, "Second", codeParagraph, 200, false),
		textItem(30, "Third", codeDate, 300, false),
	})

	records, meta, skipped, err := decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if meta.Title != "Survey" || meta.Description != "About you" {
		t.Fatalf("meta mismatch: %+v", meta)
	}

	wantIDs := []int64{10, 20, 30}
	if len(records) != len(wantIDs) {
		t.Fatalf("want %d records, got %d", len(wantIDs), len(records))
	}
	for i, want := range wantIDs {
		if records[i].ID != want {
			t.Fatalf("record %d: want id %d, got %d", i, want, records[i].ID)
		}
	}

	if records[0].EntryID != 100 || !records[0].Required {
		t.Fatalf("answer descriptor not decoded: %+v", records[0])
	}
	if records[1].Required {
		t.Fatalf("optional item decoded as required")
	}
}

func TestDecode_SkipsMalformedItems(t *testing.T) {
	doc := formDocument(t, "Survey", "", false, []any{
		textItem(1, "Good", codeShortText, 100, false),
		"not a list",
		[]any{2, "No type code"},
		textItem(3, "Also good", codeShortText, 300, false),
	})

	records, _, skipped, err := decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if len(skipped) != 2 {
		t.Fatalf("want 2 skip notes, got %v", skipped)
	}
	if records[0].ID != 1 || records[1].ID != 3 {
		t.Fatalf("surviving records out of order: %+v", records)
	}
}

func TestDecode_MissingMarkerIsFatal(t *testing.T) {
	_, _, _, err := decode([]byte("<html><body><p>no schema here</p></body></html>"))
	if !errors.Is(err, pkgschema.ErrSchemaUnrecognized) {
		t.Fatalf("want ErrSchemaUnrecognized, got %v", err)
	}
}

func TestDecode_MalformedLiteralIsFatal(t *testing.T) {
	doc := []byte(`<script>var FB_PUBLIC_LOAD_DATA_ = [1, [2,;</script>`)
	_, _, _, err := decode(doc)
	if !errors.Is(err, pkgschema.ErrSchemaUnrecognized) {
		t.Fatalf("want ErrSchemaUnrecognized, got %v", err)
	}
}

func TestDecode_MetaFallbacks(t *testing.T) {
	doc := formDocument(t, "", "", true, []any{
		textItem(1, "Q", codeShortText, 100, false),
	})

	_, meta, _, err := decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.Title != "fallback-title" {
		t.Fatalf("want fallback title, got %q", meta.Title)
	}
	if !meta.CollectEmail {
		t.Fatalf("collect email setting not decoded")
	}
}

func TestDecode_PageBreakFlag(t *testing.T) {
	doc := formDocument(t, "Survey", "", false, []any{
		textItem(1, "Q", codeShortText, 100, false),
		sectionItem(2, "Next page"),
	})

	records, _, _, err := decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if records[0].PageBreak {
		t.Fatalf("plain item carries page break")
	}
	if !records[1].PageBreak {
		t.Fatalf("break item missing page break flag")
	}
	if records[1].Payload != nil {
		t.Fatalf("break item should have no payload")
	}
}
