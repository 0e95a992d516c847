package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-formclone/internal/config"
	"github.com/goliatone/go-formclone/pkg/export"
	"github.com/goliatone/go-formclone/pkg/model"
	"github.com/goliatone/go-formclone/pkg/orchestrator"
	"github.com/goliatone/go-formclone/pkg/schema"
	"github.com/goliatone/go-formclone/pkg/source"
)

type stubParser struct {
	result schema.Result
	err    error
}

func (p *stubParser) Parse(ctx context.Context, doc source.Document) (schema.Result, error) {
	return p.result, p.err
}

type stubLoader struct{}

func (stubLoader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	return source.NewDocument(src, []byte("<html></html>"))
}

func testConfig() config.Config {
	return config.Config{
		Addr:         ":0",
		FetchTimeout: time.Second,
		StoreTTL:     time.Minute,
	}
}

func newTestServer(t *testing.T, parser *stubParser) *Server {
	t.Helper()
	s, err := New(testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if parser != nil {
		s.orch = orchestrator.New(
			orchestrator.WithLoader(stubLoader{}),
			orchestrator.WithParser(parser),
		)
	}
	return s
}

func sampleForm() model.FormModel {
	return model.FormModel{
		Title: model.PlainContent("Survey"),
		Pages: []model.Page{{Questions: []model.Question{
			{
				Type:          model.TypeShortText,
				Title:         model.PlainContent("Your name"),
				SubmissionKey: "entry.1",
			},
		}}},
	}
}

func TestHandleIndex(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="url"`) {
		t.Fatalf("landing page missing URL input: %s", body)
	}
}

func TestHandleClone_RendersForm(t *testing.T) {
	s := newTestServer(t, &stubParser{result: schema.Result{Form: sampleForm()}})

	payload := url.Values{"url": {"https://example.com/form"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Survey") || !strings.Contains(body, `name="entry.1"`) {
		t.Fatalf("rendered form incomplete: %s", body)
	}
	if !strings.Contains(body, `action="/submit/`) {
		t.Fatalf("submit action missing: %s", body)
	}
}

func TestHandleClone_InvalidURL(t *testing.T) {
	s := newTestServer(t, &stubParser{result: schema.Result{Form: sampleForm()}})

	payload := url.Values{"url": {"not a url"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Enter a valid form URL.") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestHandleClone_BuildFailure(t *testing.T) {
	s := newTestServer(t, &stubParser{err: schema.ErrSchemaUnrecognized})

	payload := url.Values{"url": {"https://example.com/form"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "recognizable form") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestHandleSubmit_DownloadsWorkbook(t *testing.T) {
	s := newTestServer(t, nil)

	key, err := s.store.Save(context.Background(), sampleForm())
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	payload := url.Values{"entry.1": {"Ada"}}
	req := httptest.NewRequest(http.MethodPost, "/submit/"+key, strings.NewReader(payload.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "form_responses.xlsx") {
		t.Fatalf("disposition: %q", got)
	}

	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	cells, err := f.GetRows(export.SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(cells) != 2 || cells[1][0] != "Your name" || cells[1][1] != "Ada" {
		t.Fatalf("workbook rows: %v", cells)
	}
}

func TestHandleSubmit_SecondSubmissionIsGone(t *testing.T) {
	s := newTestServer(t, nil)

	key, err := s.store.Save(context.Background(), sampleForm())
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	submit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/submit/"+key, strings.NewReader("entry.1=Ada"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		return rec
	}

	if rec := submit(); rec.Code != http.StatusOK {
		t.Fatalf("first submit status: %d", rec.Code)
	}
	rec := submit()
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second submit status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already submitted") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestHandleSubmit_UnknownKey(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/submit/unknown", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rec.Code)
	}
}
