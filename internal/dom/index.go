// Package dom builds the cross-reference index over a form document's
// markup. The embedded schema omits formatted text and every image reference;
// the markup carries them, keyed by the same per-item identifier. The index
// recovers that content without interpreting item types: it is a pure
// auxiliary lookup consumed read-only by the classifier.
package dom

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Markup hooks observed in the wild. The item container and option value
// attributes are stable data hooks; the form header classes are the same ones
// the authoring frontend has shipped for years.
const (
	itemAttr        = "data-item-id"
	optionValueAttr = "data-value"
	formTitleSel    = "div.F9yp7e"
	formDescSel     = "div.cBGGJ"
)

// Content is one piece of markup-derived content in plain and rich form.
type Content struct {
	Text string
	HTML string
}

// OptionImage pairs an image URL with the option it decorates, by list index
// and, when the markup carries it, by the option's text value.
type OptionImage struct {
	Index      int
	OptionText string
	URL        string
}

// ItemContent is the auxiliary bundle for one item id.
type ItemContent struct {
	Title        Content
	Description  Content
	ImageURL     string
	OptionImages []OptionImage
}

// Index maps item ids to their markup-derived content, plus the form-level
// header. A missing entry is normal: classification falls back to the plain
// values already present in the embedded schema.
type Index struct {
	FormTitle       Content
	FormDescription Content
	Items           map[int64]ItemContent
}

// Lookup returns the bundle for an item id, or nil when the markup had no
// counterpart for it.
func (ix *Index) Lookup(id int64) *ItemContent {
	if ix == nil {
		return nil
	}
	if item, ok := ix.Items[id]; ok {
		return &item
	}
	return nil
}

// Parse parses raw HTML into a queryable document.
func Parse(raw []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return doc, nil
}

// BuildIndex walks every item-tagged node in the document and extracts its
// rich title/description, item-level image, and per-option images.
func BuildIndex(doc *goquery.Document) *Index {
	ix := &Index{Items: make(map[int64]ItemContent)}
	if doc == nil {
		return ix
	}

	ix.FormTitle = extractContent(doc.Find(formTitleSel).First())
	ix.FormDescription = extractContent(doc.Find(formDescSel).First())

	doc.Find("[" + itemAttr + "]").Each(func(_ int, container *goquery.Selection) {
		raw, _ := container.Attr(itemAttr)
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return
		}

		item := ItemContent{}

		heading := container.Find("[role='heading']").First()
		item.Title = extractContent(heading)
		item.Description = extractContent(heading.NextFiltered("div"))

		// The item-level image is the first one outside any option container.
		container.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			if img.ParentsFiltered("["+optionValueAttr+"]").Length() > 0 {
				return true
			}
			if src, ok := img.Attr("src"); ok && src != "" {
				item.ImageURL = src
				return false
			}
			return true
		})

		container.Find("[" + optionValueAttr + "]").Each(func(i int, opt *goquery.Selection) {
			src, ok := opt.Find("img").First().Attr("src")
			if !ok || src == "" {
				return
			}
			text, _ := opt.Attr(optionValueAttr)
			item.OptionImages = append(item.OptionImages, OptionImage{
				Index:      i,
				OptionText: text,
				URL:        src,
			})
		})

		ix.Items[id] = item
	})

	return ix
}

func extractContent(sel *goquery.Selection) Content {
	if sel == nil || sel.Length() == 0 {
		return Content{}
	}
	return Content{
		Text: strings.TrimSpace(sel.Text()),
		HTML: richHTML(sel),
	}
}

// ImageFor returns the option image URL matching either the option's list
// index or its text, preferring the text match when both are present.
func (item *ItemContent) ImageFor(index int, text string) string {
	if item == nil {
		return ""
	}
	byIndex := ""
	for _, img := range item.OptionImages {
		if text != "" && img.OptionText == text {
			return img.URL
		}
		if img.Index == index {
			byIndex = img.URL
		}
	}
	return byIndex
}
