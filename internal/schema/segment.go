package schema

import "github.com/goliatone/go-formclone/pkg/model"

// segment splits the classified sequence into pages. Items accumulate in
// order; a page-break item closes the current page after being appended, so
// it always lands as the last element of the page it ends. A trailing
// non-empty buffer flushes as the final page, and a sequence with no breaks
// yields exactly one page.
func segment(questions []model.Question) []model.Page {
	var (
		pages   []model.Page
		current []model.Question
	)
	for _, q := range questions {
		current = append(current, q)
		if q.PageBreak {
			pages = append(pages, model.Page{Questions: current})
			current = nil
		}
	}
	if len(current) > 0 {
		pages = append(pages, model.Page{Questions: current})
	}
	if len(pages) == 0 {
		pages = append(pages, model.Page{})
	}
	return pages
}
