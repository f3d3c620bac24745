package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// encodedTag detects descriptions whose markup arrived entity-encoded,
	// sometimes doubly so ("&amp;lt;div&amp;gt;").
	encodedTag = regexp.MustCompile(`&(?:amp;)*lt;[a-zA-Z!/]`)

	divTags      = regexp.MustCompile(`(?i)</?div[^>]*>`)
	emptyPara    = regexp.MustCompile(`(?i)<p>(?:\s|&nbsp;|<br\s*/?>)*</p>`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
	trailingWS   = regexp.MustCompile(`[ \t]+\n`)
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
	boilerIntro  = regexp.MustCompile(`(?i)^\s*(please note|about us\b|eeo statement|equal opportunity)`)
	boilerplates = []string{"pay-transparency", "content-pay", "compensation-block", "content-conclusion"}
)

// SanitizeHTML reduces a raw description to clean readable markup: decodes
// entity-wrapped tags, drops scripts, trackers, styling attributes and
// compensation boilerplate, and normalizes whitespace. The function is
// idempotent so stored descriptions can be re-sanitized safely.
func SanitizeHTML(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	for i := 0; i < 3 && encodedTag.MatchString(s); i++ {
		s = html.UnescapeString(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	doc.Find("script, style, iframe, img, form, noscript").Remove()

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			kept := node.Attr[:0]
			for _, attr := range node.Attr {
				if dropAttr(attr.Key) {
					continue
				}
				kept = append(kept, attr)
			}
			node.Attr = kept
		}
	})

	for _, class := range boilerplates {
		doc.Find("div." + class).Remove()
	}
	removeBoilerplateSections(doc)

	out, err := doc.Find("body").Html()
	if err != nil {
		return strings.TrimSpace(s)
	}

	out = divTags.ReplaceAllString(out, "")
	out = emptyPara.ReplaceAllString(out, "")
	out = trailingWS.ReplaceAllString(out, "\n")
	out = blankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func dropAttr(key string) bool {
	switch key {
	case "class", "style", "id":
		return true
	}
	return strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "on")
}

// removeBoilerplateSections drops "PLEASE NOTE" / EEO style paragraphs and
// everything after them; those sections trail the real content.
func removeBoilerplateSections(doc *goquery.Document) {
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		strong := p.Children().Filter("strong").First()
		if strong.Length() == 0 {
			return
		}
		if !boilerIntro.MatchString(strings.TrimSpace(strong.Text())) {
			return
		}
		p.NextAll().Remove()
		p.Remove()
	})
}

// PlainText strips all markup from sanitized HTML, leaving normalized text
// for hashing and keyword matching.
func PlainText(sanitized string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err != nil {
		return strings.TrimSpace(sanitized)
	}
	text := doc.Text()
	text = multiSpace.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}

// hashLen matches the stored column width.
const hashLen = 16

// ContentHash fingerprints a description for repost detection. Identical
// sanitized text always yields the same hash.
func ContentHash(sanitized string) string {
	text := PlainText(sanitized)
	if text == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.ToLower(text)))
	return hex.EncodeToString(sum[:])[:hashLen]
}
