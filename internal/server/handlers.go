package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-formclone/pkg/export"
	"github.com/goliatone/go-formclone/pkg/model"
	"github.com/goliatone/go-formclone/pkg/orchestrator"
	"github.com/goliatone/go-formclone/pkg/render"
	"github.com/goliatone/go-formclone/pkg/schema"
	"github.com/goliatone/go-formclone/pkg/source"
	"github.com/goliatone/go-formclone/pkg/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderLanding(w, http.StatusOK, "")
}

func (s *Server) handleClone(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLanding(w, http.StatusBadRequest, "The request could not be read.")
		return
	}

	rawURL := strings.TrimSpace(r.PostFormValue("url"))
	src, err := source.ParseURL(rawURL)
	if err != nil {
		s.renderLanding(w, http.StatusBadRequest, "Enter a valid form URL.")
		return
	}

	result, err := s.orch.Build(r.Context(), orchestrator.Request{Source: src})
	if err != nil {
		s.logger.Warn("form build failed", zap.String("url", rawURL), zap.Error(err))
		s.renderLanding(w, http.StatusBadGateway, buildFailureMessage(err))
		return
	}

	// Skips stay invisible to respondents, but they are the trail for
	// diagnosing upstream format drift.
	for _, note := range result.Skipped {
		s.logger.Info("item skipped",
			zap.String("url", rawURL),
			zap.Int64("item_id", note.ItemID),
			zap.String("reason", note.Reason),
		)
	}

	key, err := s.store.Save(r.Context(), result.Form)
	if err != nil {
		s.logger.Error("store save failed", zap.Error(err))
		s.renderLanding(w, http.StatusInternalServerError, "The rebuilt form could not be stored.")
		return
	}

	page, err := s.renderer.Render(r.Context(), result.Form, render.Options{
		Action:      "/submit/" + key,
		SubmitLabel: "Submit and download answers",
	})
	if err != nil {
		s.logger.Error("render failed", zap.Error(err))
		s.renderLanding(w, http.StatusInternalServerError, "The rebuilt form could not be rendered.")
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	_, _ = w.Write(page)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	form, err := s.store.Take(r.Context(), key)
	if err != nil {
		status := http.StatusInternalServerError
		message := "The submission could not be processed."
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
			message = "This form session was not found or was already submitted."
		}
		s.renderLanding(w, status, message)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderLanding(w, http.StatusBadRequest, "The submitted answers could not be read.")
		return
	}

	rows := export.Rows(form, model.Answers(r.PostForm))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="form_responses.xlsx"`)
	if err := export.WriteXLSX(w, rows); err != nil {
		// Headers are already sent; nothing more to do than log.
		s.logger.Error("workbook write failed", zap.Error(err))
	}
}

// buildFailureMessage maps the error taxonomy to one short human-readable
// line without leaking positional-index detail.
func buildFailureMessage(err error) string {
	switch {
	case errors.Is(err, source.ErrFetch):
		return "The form could not be fetched. Check the URL and try again."
	case errors.Is(err, schema.ErrSchemaUnrecognized):
		return "The page does not contain a recognizable form. The source format may have changed."
	case errors.Is(err, schema.ErrEmptyForm):
		return "The form contains no questions to rebuild."
	default:
		return "The form could not be processed."
	}
}

func (s *Server) renderLanding(w http.ResponseWriter, status int, errorMessage string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := s.pages.Render("landing", map[string]any{"errorMessage": errorMessage}, w)
	if err != nil {
		s.logger.Error("landing render failed", zap.Error(err))
	}
}
