// Package tui fills a reconstructed form interactively in the terminal,
// prompting per question variant and emitting the collected raw answer map
// in the same shape a browser submission would produce.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formclone/pkg/model"
	"github.com/goliatone/go-formclone/pkg/render"
)

// OutputFormat controls how collected values are serialized by Render.
type OutputFormat string

const (
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded
	// payloads, matching the browser submission shape.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatJSON emits the answer map as JSON.
	OutputFormatJSON OutputFormat = "json"
)

const skipChoice = "(skip)"
const otherChoice = "Other..."

// Option configures the renderer.
type Option func(*Renderer)

// WithDriver swaps the prompt implementation; used by tests.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization Render uses.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, urlencoded
// output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatFormURLEncoded,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "application/x-www-form-urlencoded"
}

// Render walks the form interactively and serializes the collected answers.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, _ render.Options) ([]byte, error) {
	answers, err := r.CollectAnswers(ctx, form)
	if err != nil {
		return nil, err
	}
	if r.outputFormat == OutputFormatJSON {
		return json.Marshal(answers)
	}
	return []byte(url.Values(answers).Encode()), nil
}

// CollectAnswers prompts for every answerable question in traversal order
// and returns the raw answer map keyed by submission key.
func (r *Renderer) CollectAnswers(ctx context.Context, form model.FormModel) (model.Answers, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	answers := model.Answers{}
	for pageIdx, page := range form.Pages {
		if len(form.Pages) > 1 {
			if err := r.driver.Info(ctx, fmt.Sprintf("-- Page %d of %d --", pageIdx+1, len(form.Pages))); err != nil {
				return nil, err
			}
		}
		for _, q := range page.Questions {
			if err := r.ask(ctx, q, answers); err != nil {
				return nil, err
			}
		}
	}
	return answers, nil
}

func (r *Renderer) ask(ctx context.Context, q model.Question, answers model.Answers) error {
	help := q.Description.Text

	switch q.Type {
	case model.TypeSectionHeader:
		msg := q.Label()
		if help != "" {
			msg += "\n" + help
		}
		return r.driver.Info(ctx, msg)

	case model.TypeShortText, model.TypeEmail, model.TypeDate, model.TypeTime:
		value, err := r.driver.Input(ctx, InputConfig{
			Message:   q.Label(),
			Help:      help,
			Validator: requiredValidator(q.Required),
		})
		if err != nil {
			return err
		}
		record(answers, q.SubmissionKey, value)
		return nil

	case model.TypeParagraph:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{Message: q.Label(), Help: help})
		if err != nil {
			return err
		}
		record(answers, q.SubmissionKey, value)
		return nil

	case model.TypeSingleChoice:
		return r.askSingleChoice(ctx, q, answers)

	case model.TypeMultiChoice:
		return r.askMultiChoice(ctx, q, answers)

	case model.TypeDropdown:
		return r.askFromList(ctx, q, answers, q.Choices)

	case model.TypeLinearScale:
		labeled := make([]string, len(q.Scale))
		for i, point := range q.Scale {
			labeled[i] = point
		}
		if len(labeled) > 0 && (q.LowLabel != "" || q.HighLabel != "") {
			labeled[0] = strings.TrimSpace(labeled[0] + " " + q.LowLabel)
			labeled[len(labeled)-1] = strings.TrimSpace(labeled[len(labeled)-1] + " " + q.HighLabel)
		}
		return r.askScale(ctx, q, answers, labeled)

	case model.TypeRating:
		return r.askFromList(ctx, q, answers, q.Scale)

	case model.TypeGrid:
		return r.askGrid(ctx, q, answers)
	}
	return nil
}

// askFromList prompts a single selection whose recorded value equals the
// displayed choice.
func (r *Renderer) askFromList(ctx context.Context, q model.Question, answers model.Answers, choices []string) error {
	options, skippable := withSkip(choices, q.Required)
	idx, err := r.driver.Select(ctx, SelectConfig{Message: q.Label(), Options: options, Help: q.Description.Text})
	if err != nil {
		return err
	}
	if skippable && idx == len(options)-1 {
		return nil
	}
	record(answers, q.SubmissionKey, choices[idx])
	return nil
}

// askScale is askFromList with decorated labels but raw point values.
func (r *Renderer) askScale(ctx context.Context, q model.Question, answers model.Answers, labeled []string) error {
	options, skippable := withSkip(labeled, q.Required)
	idx, err := r.driver.Select(ctx, SelectConfig{Message: q.Label(), Options: options, Help: q.Description.Text})
	if err != nil {
		return err
	}
	if skippable && idx == len(options)-1 {
		return nil
	}
	record(answers, q.SubmissionKey, q.Scale[idx])
	return nil
}

func (r *Renderer) askSingleChoice(ctx context.Context, q model.Question, answers model.Answers) error {
	choices := optionTexts(q.Options)
	if q.HasOther {
		choices = append(choices, otherChoice)
	}
	options, skippable := withSkip(choices, q.Required)

	idx, err := r.driver.Select(ctx, SelectConfig{Message: q.Label(), Options: options, Help: q.Description.Text})
	if err != nil {
		return err
	}
	if skippable && idx == len(options)-1 {
		return nil
	}
	if q.HasOther && idx == len(choices)-1 {
		return r.recordOther(ctx, q, answers)
	}
	record(answers, q.SubmissionKey, choices[idx])
	return nil
}

func (r *Renderer) askMultiChoice(ctx context.Context, q model.Question, answers model.Answers) error {
	choices := optionTexts(q.Options)
	if q.HasOther {
		choices = append(choices, otherChoice)
	}

	selected, err := r.driver.MultiSelect(ctx, SelectConfig{Message: q.Label(), Options: choices, Help: q.Description.Text})
	if err != nil {
		return err
	}
	for _, idx := range selected {
		if q.HasOther && idx == len(choices)-1 {
			if err := r.recordOther(ctx, q, answers); err != nil {
				return err
			}
			continue
		}
		record(answers, q.SubmissionKey, choices[idx])
	}
	return nil
}

func (r *Renderer) askGrid(ctx context.Context, q model.Question, answers model.Answers) error {
	for _, row := range q.Rows {
		message := fmt.Sprintf("%s [%s]", q.Label(), row.Text)
		if q.MultiSelect {
			selected, err := r.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: q.Columns})
			if err != nil {
				return err
			}
			for _, idx := range selected {
				record(answers, row.SubmissionKey, q.Columns[idx])
			}
			continue
		}

		options, skippable := withSkip(q.Columns, q.Required)
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options})
		if err != nil {
			return err
		}
		if skippable && idx == len(options)-1 {
			continue
		}
		record(answers, row.SubmissionKey, q.Columns[idx])
	}
	return nil
}

func (r *Renderer) recordOther(ctx context.Context, q model.Question, answers model.Answers) error {
	text, err := r.driver.Input(ctx, InputConfig{Message: "Other:"})
	if err != nil {
		return err
	}
	record(answers, q.SubmissionKey, model.OtherSentinel)
	record(answers, q.SubmissionKey+model.OtherResponseSuffix, text)
	return nil
}

func record(answers model.Answers, key, value string) {
	if key == "" || value == "" {
		return
	}
	answers[key] = append(answers[key], value)
}

func withSkip(choices []string, required bool) ([]string, bool) {
	if required {
		return choices, false
	}
	out := make([]string, 0, len(choices)+1)
	out = append(out, choices...)
	out = append(out, skipChoice)
	return out, true
}

func optionTexts(options []model.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Text
	}
	return out
}

func requiredValidator(required bool) func(string) error {
	if !required {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("an answer is required")
		}
		return nil
	}
}
