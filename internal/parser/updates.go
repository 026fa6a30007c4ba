package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-placement-automation/internal/models"
)

// The portal highlights the results block with an inline style rather than a
// class, so that styling is the primary marker.
const resultHighlight = "background-color:#c1fac3"

// ParseUpdatesPage extracts every round link from the highlighted results
// section of an updates page. When the highlight styling is missing it falls
// back to the block following a heading literally titled "Result". An updates
// page without either yields no links.
func ParseUpdatesPage(pageHTML, baseURL string) []models.RoundLink {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	section := resultSection(doc)
	if section == nil {
		return nil
	}

	var links []models.RoundLink
	for _, a := range anchorsIn(section) {
		links = append(links, models.RoundLink{
			Name: a.name,
			URL:  resolveURL(baseURL, a.href),
		})
	}
	return links
}

func resultSection(doc *goquery.Document) *goquery.Selection {
	var section *goquery.Selection
	doc.Find("div[style]").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		style, _ := div.Attr("style")
		if strings.Contains(strings.ReplaceAll(style, " ", ""), resultHighlight) {
			section = div
			return false
		}
		return true
	})
	if section != nil {
		return section
	}

	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.TrimSpace(h.Text()) != "Result" {
			return true
		}
		next := h.NextFiltered("div")
		if next.Length() > 0 {
			section = next
		} else {
			section = h.Parent()
		}
		return false
	})
	return section
}
