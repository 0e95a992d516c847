package vanilla

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formclone/pkg/model"
	"github.com/goliatone/go-formclone/pkg/render"
)

func sampleForm() model.FormModel {
	return model.FormModel{
		Title:       model.PlainContent("Event Signup"),
		Description: model.PlainContent("All fields matter."),
		Pages: []model.Page{
			{Questions: []model.Question{
				{
					Type:          model.TypeShortText,
					Title:         model.PlainContent("Your name"),
					Required:      true,
					SubmissionKey: "entry.1",
				},
				{
					Type:          model.TypeSingleChoice,
					Title:         model.PlainContent("Shirt size"),
					SubmissionKey: "entry.2",
					HasOther:      true,
					Options:       []model.Option{{Text: "S"}, {Text: "M"}, {Text: "L"}},
				},
			}},
			{Questions: []model.Question{
				{
					Type:          model.TypeGrid,
					Title:         model.PlainContent("Availability"),
					SubmissionKey: "",
					Columns:       []string{"AM", "PM"},
					Rows: []model.GridRow{
						{Text: "Monday", SubmissionKey: "entry.31"},
						{Text: "Tuesday", SubmissionKey: "entry.32"},
					},
				},
			}},
		},
	}
}

func renderPage(t *testing.T, form model.FormModel, options render.Options) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_FullPage(t *testing.T) {
	page := renderPage(t, sampleForm(), render.Options{
		Action:      "/submit/abc",
		SubmitLabel: "Send",
	})

	for _, want := range []string{
		"<title>Event Signup</title>",
		`action="/submit/abc"`,
		`name="entry.1"`,
		`<span class="required-star">*</span>`,
		`value="__other_option__"`,
		`name="entry.2.other_option_response"`,
		`name="entry.31"`,
		`value="AM"`,
		`class="page-separator"`,
		">Send</button>",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("rendered page missing %q", want)
		}
	}
}

func TestRender_Defaults(t *testing.T) {
	page := renderPage(t, sampleForm(), render.Options{})
	if !strings.Contains(page, `action="/submit"`) {
		t.Fatalf("default action missing")
	}
	if !strings.Contains(page, ">Submit</button>") {
		t.Fatalf("default submit label missing")
	}
	if strings.Contains(page, "error-message") {
		t.Fatalf("error banner rendered without a message")
	}
}

func TestRender_ErrorBanner(t *testing.T) {
	page := renderPage(t, sampleForm(), render.Options{ErrorMessage: "could not reach the form"})
	if !strings.Contains(page, "could not reach the form") {
		t.Fatalf("error banner missing")
	}
}

func TestRender_RichTitleMarkup(t *testing.T) {
	form := sampleForm()
	form.Title = model.RichContent{Text: "Event Signup", HTML: "Event <b>Signup</b>"}
	page := renderPage(t, form, render.Options{})
	if !strings.Contains(page, "Event <b>Signup</b>") {
		t.Fatalf("rich title not emitted verbatim")
	}
}

func TestRender_CanceledContext(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, sampleForm(), render.Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRendererIdentity(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.Name() != "vanilla" {
		t.Fatalf("name: %q", r.Name())
	}
	if !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("content type: %q", r.ContentType())
	}
}
