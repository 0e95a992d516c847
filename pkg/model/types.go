package model

import "html"

// QuestionType enumerates the closed set of question variants the classifier
// recognises. Values are stable strings so JSON snapshots stay readable.
type QuestionType string

const (
	TypeShortText     QuestionType = "short_text"
	TypeParagraph     QuestionType = "paragraph"
	TypeSingleChoice  QuestionType = "single_choice"
	TypeMultiChoice   QuestionType = "multi_choice"
	TypeDropdown      QuestionType = "dropdown"
	TypeLinearScale   QuestionType = "linear_scale"
	TypeRating        QuestionType = "rating"
	TypeDate          QuestionType = "date"
	TypeTime          QuestionType = "time"
	TypeGrid          QuestionType = "grid"
	TypeSectionHeader QuestionType = "section_header"
	TypeEmail         QuestionType = "email"
)

// UntitledLabel is the placeholder used when neither the embedded schema nor
// the document markup yields a usable label. Blank labels are never emitted
// because they would collide in the tabular export.
const UntitledLabel = "(untitled question)"

// RichContent carries one piece of authored content in both plain and
// sanitized-markup form. HTML preserves semantic emphasis (b/i/u, links,
// lists); Text is the plain rendition used for labels and exports. Either may
// be empty. Values are immutable once attached to a question or option.
type RichContent struct {
	Text     string `json:"text,omitempty"`
	HTML     string `json:"html,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// PlainContent wraps a plain string as RichContent, escaping it for the HTML
// rendition. Used when the document markup has no richer counterpart.
func PlainContent(text string) RichContent {
	if text == "" {
		return RichContent{}
	}
	return RichContent{Text: text, HTML: html.EscapeString(text)}
}

// IsZero reports whether the content carries nothing at all.
func (c RichContent) IsZero() bool {
	return c.Text == "" && c.HTML == "" && c.ImageURL == ""
}

// Option is one selectable choice of a single- or multi-choice question.
type Option struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// GridRow is one answerable sub-row of a grid question. Each row carries its
// own submission key, distinct from the grid's item id.
type GridRow struct {
	Text          string `json:"text"`
	SubmissionKey string `json:"submissionKey"`
}

// Question is the tagged union over all recognised item variants. Type
// selects the variant; only the fields relevant to that variant are
// populated. SectionHeader questions carry no submission key and never
// contribute to exports.
type Question struct {
	ID          int64        `json:"id"`
	Type        QuestionType `json:"type"`
	Title       RichContent  `json:"title"`
	Description RichContent  `json:"description,omitempty"`
	Required    bool         `json:"required,omitempty"`

	// SubmissionKey is the identifier answers are keyed by. Empty for
	// SectionHeader and Grid (grid rows carry their own keys).
	SubmissionKey string `json:"submissionKey,omitempty"`

	// SingleChoice / MultiChoice.
	Options  []Option `json:"options,omitempty"`
	HasOther bool     `json:"hasOther,omitempty"`

	// Dropdown.
	Choices []string `json:"choices,omitempty"`

	// LinearScale / Rating. Scale holds the ordered point labels.
	Scale     []string `json:"scale,omitempty"`
	LowLabel  string   `json:"lowLabel,omitempty"`
	HighLabel string   `json:"highLabel,omitempty"`

	// Grid.
	Columns     []string  `json:"columns,omitempty"`
	Rows        []GridRow `json:"rows,omitempty"`
	MultiSelect bool      `json:"multiSelect,omitempty"`

	// PageBreak marks that segmentation starts a new page after this item.
	PageBreak bool `json:"pageBreak,omitempty"`
}

// Label returns the plain display label for the question, falling back to the
// untitled placeholder so exports never emit a blank key.
func (q Question) Label() string {
	if q.Title.Text != "" {
		return q.Title.Text
	}
	return UntitledLabel
}

// Page is an ordered run of questions delimited by page-break markers.
type Page struct {
	Questions []Question `json:"questions"`
}

// FormModel is the fully assembled questionnaire: header content plus at
// least one page. It is immutable once handed to a renderer or store.
type FormModel struct {
	Title       RichContent `json:"title"`
	Description RichContent `json:"description,omitempty"`
	Pages       []Page      `json:"pages"`
}

// Questions returns the model's questions in traversal order (pages in
// order, questions in order within each page).
func (f FormModel) Questions() []Question {
	var out []Question
	for _, page := range f.Pages {
		out = append(out, page.Questions...)
	}
	return out
}

// AnswerRow is one exported report row. Output-only, freely duplicable.
type AnswerRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
