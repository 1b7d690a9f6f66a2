package present

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// unsafeElements are dropped before section text is shown.
const unsafeElements = "script, iframe, object, embed, link, img"

// Sanitize strips embedded and executable elements from section HTML and
// returns the remaining text content of the body. The result is plain text
// and is only ever written out as text.
func Sanitize(markup string) string {
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return ""
	}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find(unsafeElements).Remove()
	return doc.Find("body").Text()
}
