package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-placement-automation/internal/models"
)

const (
	fteLabel     = "SALARY DETAILS (PER ANNUM) - FTE"
	stipendLabel = "STIPEND DETAILS - INTERNSHIP"

	// Sentinel when the "Arrived For" section is absent entirely.
	ArrivedForNotFound = "Not Found"
)

var (
	digitRe = regexp.MustCompile(`\d`)
	// The stipend cell interleaves text and markup ("For UG <b>₹ 40,000"),
	// so it is matched against the cell's raw HTML, not its visible text.
	stipendRe = regexp.MustCompile(`For\s+(UG|PG)\s*<b>₹\s*([\d,]+)`)
)

// ParseDetailPage extracts the eligible roles, FTE salary rows and internship
// stipend rows from a "View & Apply" page. Every section is optional: a
// missing section leaves its default value and never affects the others.
func ParseDetailPage(pageHTML string) models.DetailInfo {
	info := models.DetailInfo{ArrivedFor: ArrivedForNotFound}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return info
	}

	parseArrivedFor(doc, &info)
	parseSalaries(doc, &info)
	parseStipends(doc, &info)
	return info
}

// parseArrivedFor reads the list items of the block following the first
// heading. Absence is tolerated, the sentinel stays in place.
func parseArrivedFor(doc *goquery.Document, info *models.DetailInfo) {
	items := doc.Find("h3").First().NextFiltered("div").Find("li")
	if items.Length() == 0 {
		return
	}
	var roles []string
	items.Each(func(_ int, li *goquery.Selection) {
		roles = append(roles, cleanCell(li.Text()))
	})
	info.ArrivedFor = strings.Join(roles, ", ")
}

func parseSalaries(doc *goquery.Document, info *models.DetailInfo) {
	table := labeledTable(doc, fteLabel)
	if table == nil {
		return
	}
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}
		amountText := cols.Eq(1).Text()
		// A salary row qualifies only if the amount cell holds a currency
		// marker or at least one digit.
		if !strings.Contains(amountText, "₹") && !digitRe.MatchString(amountText) {
			return
		}
		fields := strings.Fields(cols.Eq(0).Text())
		if len(fields) == 0 {
			return
		}
		ctc, ok := parseAmount(amountText)
		if !ok || ctc <= 0 {
			return
		}
		info.SalariesFTE = append(info.SalariesFTE, models.Salary{
			Programme: fields[0],
			CTC:       ctc,
		})
	})
}

func parseStipends(doc *goquery.Document, info *models.DetailInfo) {
	table := labeledTable(doc, stipendLabel)
	if table == nil {
		return
	}
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cellHTML, err := goquery.OuterHtml(row.Find("td").First())
		if err != nil {
			return
		}
		m := stipendRe.FindStringSubmatch(cellHTML)
		if m == nil {
			return
		}
		amount, ok := parseAmount(m[2])
		if !ok || amount <= 0 {
			return
		}
		info.Stipends = append(info.Stipends, models.Stipend{
			Programme: m[1],
			Stipend:   amount,
		})
	})
}

// labeledTable finds the sub-table whose <b> label contains the given text,
// matching case- and whitespace-insensitively.
func labeledTable(doc *goquery.Document, label string) *goquery.Selection {
	want := normalizeLabel(label)
	var table *goquery.Selection
	doc.Find("b").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		if !strings.Contains(normalizeLabel(b.Text()), want) {
			return true
		}
		parent := b.ParentsFiltered("table").First()
		if parent.Length() == 0 {
			return true
		}
		table = parent
		return false
	})
	return table
}
