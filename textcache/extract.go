package textcache

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Extract returns the visible text of an HTML fragment or document.
//
// The input is parsed as a full document with scripting disabled, so
// noscript content is kept as markup. script, style and template elements
// are removed and the text content of body is returned exactly as it
// appears, without whitespace normalization.
func Extract(markup string) string {
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return ""
	}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script, style, template").Remove()
	return doc.Find("body").Text()
}
