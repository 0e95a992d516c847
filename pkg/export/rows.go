// Package export flattens a form model plus raw submitted answers into
// ordered report rows, and serializes those rows for spreadsheet transport.
package export

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formclone/pkg/model"
)

// Unanswered is the stable sentinel for a question nobody answered. An empty
// string would be ambiguous with "submitted empty text", so exports never
// use one.
const Unanswered = "(unanswered)"

// OtherUnspecified is emitted when the other-escape option was selected but
// its companion free-text field was blank or absent.
const OtherUnspecified = "Other (unspecified)"

const joinSeparator = ", "

// Rows flattens the model against the submitted answers: pages in order,
// questions in order within each page, so row order matches authoring order.
// Section headers contribute nothing; grids expand to one row per sub-row.
// Missing keys are never errors, only the unanswered sentinel.
func Rows(form model.FormModel, answers model.Answers) []model.AnswerRow {
	var rows []model.AnswerRow
	for _, page := range form.Pages {
		for _, q := range page.Questions {
			rows = append(rows, questionRows(q, answers)...)
		}
	}
	return rows
}

func questionRows(q model.Question, answers model.Answers) []model.AnswerRow {
	switch q.Type {
	case model.TypeSectionHeader:
		return nil
	case model.TypeGrid:
		return gridRows(q, answers)
	case model.TypeMultiChoice:
		return []model.AnswerRow{{Label: q.Label(), Value: multiChoiceValue(q, answers)}}
	case model.TypeSingleChoice:
		return []model.AnswerRow{{Label: q.Label(), Value: singleChoiceValue(q, answers)}}
	default:
		return []model.AnswerRow{{Label: q.Label(), Value: verbatimValue(answers.Get(q.SubmissionKey))}}
	}
}

func gridRows(q model.Question, answers model.Answers) []model.AnswerRow {
	rows := make([]model.AnswerRow, 0, len(q.Rows))
	for _, row := range q.Rows {
		label := fmt.Sprintf("%s [%s]", q.Label(), row.Text)
		value := ""
		if q.MultiSelect {
			value = joinValues(answers.All(row.SubmissionKey))
		} else {
			value = answers.Get(row.SubmissionKey)
		}
		rows = append(rows, model.AnswerRow{Label: label, Value: verbatimValue(value)})
	}
	return rows
}

// multiChoiceValue joins every submitted value in submission order, which
// reflects the respondent's interaction order rather than option-definition
// order. The other-escape sentinel is replaced by its resolved free-text
// form and contributes first.
func multiChoiceValue(q model.Question, answers model.Answers) string {
	submitted := answers.All(q.SubmissionKey)

	var values []string
	hasOther := false
	for _, v := range submitted {
		if v == model.OtherSentinel {
			hasOther = true
			continue
		}
		if strings.TrimSpace(v) != "" {
			values = append(values, v)
		}
	}
	if hasOther {
		values = append([]string{otherValue(q, answers)}, values...)
	}
	return verbatimValue(joinValues(values))
}

func singleChoiceValue(q model.Question, answers model.Answers) string {
	value := answers.Get(q.SubmissionKey)
	if value == model.OtherSentinel {
		return otherValue(q, answers)
	}
	return verbatimValue(value)
}

func otherValue(q model.Question, answers model.Answers) string {
	if text := strings.TrimSpace(answers.OtherResponse(q.SubmissionKey)); text != "" {
		return "Other: " + text
	}
	return OtherUnspecified
}

func joinValues(values []string) string {
	kept := values[:0:0]
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, joinSeparator)
}

func verbatimValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return Unanswered
	}
	return value
}
