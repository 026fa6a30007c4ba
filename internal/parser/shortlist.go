package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseShortlistPage counts the body rows of the shortlist table: the number
// of shortlisted students for one round. The table is identified by the
// table-striped class convention, falling back to any table whose header cell
// is literally "SL" (the serial-number column). Returns 0 when neither exists.
func ParseShortlistPage(pageHTML string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return 0
	}

	table := doc.Find("table.table-striped").First()
	if table.Length() == 0 {
		doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
			found := false
			t.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
				if strings.TrimSpace(th.Text()) == "SL" {
					found = true
					return false
				}
				return true
			})
			if found {
				table = t
				return false
			}
			return true
		})
	}
	if table.Length() == 0 {
		return 0
	}

	return table.Find("tbody tr").Length()
}
