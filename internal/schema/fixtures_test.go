package schema

import (
	"encoding/json"
	"testing"
)

// Fixture builders assembling positional form data the way the source site
// embeds it. Marshalling Go values through encoding/json keeps the fixtures
// readable while matching the decoder's float64 number handling.

func encodeData(t *testing.T, title, description string, collectEmail bool, items []any) string {
	t.Helper()
	info := make([]any, 11)
	info[0] = description
	info[1] = items
	info[8] = title
	if collectEmail {
		info[10] = []any{1}
	}
	data := []any{nil, info, nil, "fallback-title"}

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(raw)
}

func formDocument(t *testing.T, title, description string, collectEmail bool, items []any) []byte {
	t.Helper()
	payload := encodeData(t, title, description, collectEmail, items)
	return []byte("<html><body><script>var FB_PUBLIC_LOAD_DATA_ = " + payload + ";</script></body></html>")
}

func textItem(id int64, title string, typeCode int, entryID int64, required bool) []any {
	return []any{id, title, nil, typeCode, []any{answerDescriptor(entryID, nil, required)}}
}

func answerDescriptor(entryID int64, options []any, required bool) []any {
	req := 0
	if required {
		req = 1
	}
	return []any{entryID, options, req}
}

func choiceItem(id int64, title string, typeCode int, entryID int64, required bool, options ...[]any) []any {
	opts := make([]any, len(options))
	for i, opt := range options {
		opts[i] = opt
	}
	return []any{id, title, nil, typeCode, []any{answerDescriptor(entryID, opts, required)}}
}

func option(text string, other bool) []any {
	entry := make([]any, 5)
	entry[0] = text
	if other {
		entry[4] = 1
	}
	return entry
}

func scaleItem(id int64, title string, entryID int64, points []any, low, high string) []any {
	opts := make([]any, len(points))
	for i, p := range points {
		opts[i] = []any{p}
	}
	descriptor := []any{entryID, opts, 0, []any{low, high}}
	return []any{id, title, nil, codeLinearScale, []any{descriptor}}
}

func gridItem(id int64, title string, rows ...[]any) []any {
	payload := make([]any, len(rows))
	for i, row := range rows {
		payload[i] = row
	}
	return []any{id, title, nil, codeGrid, payload}
}

func gridRow(entryID int64, columns []string, label string, required, multiSelect bool) []any {
	row := make([]any, 12)
	row[0] = entryID
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = []any{c}
	}
	row[1] = cols
	if required {
		row[2] = 1
	}
	row[3] = []any{label}
	if multiSelect {
		row[11] = []any{1}
	}
	return row
}

func sectionItem(id int64, title string) []any {
	return []any{id, title, nil, codePageBreak, nil}
}
