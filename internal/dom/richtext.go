package dom

import (
	"html"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// contentPolicy allows only the semantic subset of markup the model keeps:
// emphasis, underline, links, lists, and line breaks.
func contentPolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "i", "u", "em", "strong", "ul", "ol", "li", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		markupPolicy = policy
	})
	return markupPolicy
}

// richHTML renders a selection's inner markup as sanitized semantic HTML.
// Authoring sessions express the same visual effect inconsistently (semantic
// tags in one revision, styled spans in another), so style attributes that
// encode bold/italic/underline are folded into their semantic equivalents
// before sanitization.
func richHTML(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, node := range sel.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			renderSemantic(&sb, child)
		}
	}
	return strings.TrimSpace(contentPolicy().Sanitize(sb.String()))
}

var keptTags = map[string]bool{
	"b": true, "i": true, "u": true, "em": true, "strong": true,
	"ul": true, "ol": true, "li": true, "a": true,
}

func renderSemantic(sb *strings.Builder, node *xhtml.Node) {
	switch node.Type {
	case xhtml.TextNode:
		sb.WriteString(html.EscapeString(node.Data))
		return
	case xhtml.ElementNode:
	default:
		return
	}

	tag := node.Data
	if tag == "br" {
		sb.WriteString("<br>")
		return
	}

	open, close := "", ""
	switch {
	case keptTags[tag]:
		open = "<" + tag + attrString(node, tag) + ">"
		close = "</" + tag + ">"
	default:
		// Unknown wrappers are unwrapped, but style-encoded emphasis on them
		// is converted to semantic tags first.
		open, close = styleTags(node)
	}

	sb.WriteString(open)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderSemantic(sb, child)
	}
	sb.WriteString(close)
}

func attrString(node *xhtml.Node, tag string) string {
	if tag != "a" {
		return ""
	}
	for _, attr := range node.Attr {
		if attr.Key == "href" {
			return ` href="` + html.EscapeString(attr.Val) + `"`
		}
	}
	return ""
}

// styleTags translates a style attribute's bold/italic/underline declarations
// into nested semantic tags.
func styleTags(node *xhtml.Node) (string, string) {
	style := ""
	for _, attr := range node.Attr {
		if attr.Key == "style" {
			style = strings.ToLower(attr.Val)
			break
		}
	}
	if style == "" {
		return "", ""
	}

	var open, close string
	if strings.Contains(style, "font-weight:bold") || strings.Contains(style, "font-weight: bold") ||
		strings.Contains(style, "font-weight:700") || strings.Contains(style, "font-weight: 700") {
		open += "<b>"
		close = "</b>" + close
	}
	if strings.Contains(style, "font-style:italic") || strings.Contains(style, "font-style: italic") {
		open += "<i>"
		close = "</i>" + close
	}
	if strings.Contains(style, "underline") {
		open += "<u>"
		close = "</u>" + close
	}
	return open, close
}
