package parser

import (
	"bytes"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// normalizeLabel folds a table label for matching: diacritics removed,
// whitespace collapsed, lowercased. The portal is not consistent about
// spacing inside its <b> headers.
func normalizeLabel(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	result = innerWhitespace.ReplaceAllString(result, " ")
	return strings.ToLower(strings.TrimSpace(result))
}

// cleanCell trims a table cell's visible text.
func cleanCell(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

var amountStrip = regexp.MustCompile(`[₹,\s]`)

// parseAmount strips currency symbols and thousands separators and parses the
// remainder as a decimal. ok is false for anything non-numeric; callers drop
// such values instead of recording zero.
func parseAmount(s string) (float64, bool) {
	cleaned := amountStrip.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// resolveURL resolves href against the portal base. A href that does not
// parse is returned as-is rather than dropped.
func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

type anchor struct {
	name string
	href string
}

// anchorsIn collects every anchor under sel as (visible text, href) pairs,
// walking the raw nodes so nested markup inside the anchor is flattened.
func anchorsIn(sel *goquery.Selection) []anchor {
	var out []anchor
	for _, n := range sel.Find("a").Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		out = append(out, anchor{name: cleanCell(nodeText(n)), href: href})
	}
	return out
}

func nodeText(n *html.Node) string {
	var buf bytes.Buffer
	textRecursive(n, &buf)
	return buf.String()
}

func textRecursive(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		textRecursive(child, buf)
	}
}
