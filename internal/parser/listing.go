package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-placement-automation/internal/models"
)

var viewApplyRe = regexp.MustCompile(`(?i)View\s*&\s*Apply`)

// ParseListingPage splits the listing table into regular job rows and PPO
// rows. A job row carries both an exact "Updates" anchor and a "View & Apply"
// anchor; a PPO row carries the literal "PPO" marker plus the Updates anchor.
// Rows matching neither shape are counted in skipped, never an error. A
// missing listing table yields empty results.
func ParseListingPage(pageHTML, baseURL string) (jobs []models.JobPosting, ppos []models.JobPosting, skipped int) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, nil, 0
	}

	table := doc.Find("table#job-listings").First()
	if table.Length() == 0 {
		return nil, nil, 0
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			skipped++
			return
		}

		name := cleanCell(cells.Eq(0).Text())
		datePosted := cleanCell(cells.Eq(2).Text())
		action := cells.Eq(3)

		var updatesHref, viewHref string
		hasUpdates, hasView := false, false
		action.Find("a").Each(func(_ int, a *goquery.Selection) {
			text := strings.TrimSpace(a.Text())
			href, _ := a.Attr("href")
			switch {
			case text == "Updates":
				updatesHref, hasUpdates = href, true
			case viewApplyRe.MatchString(text):
				viewHref, hasView = href, true
			}
		})

		switch {
		case strings.Contains(action.Text(), "PPO") && hasUpdates:
			ppos = append(ppos, models.JobPosting{
				Name:       name,
				DatePosted: datePosted,
				UpdatesURL: resolveURL(baseURL, updatesHref),
				IsPPO:      true,
			})
		case hasUpdates && hasView:
			jobs = append(jobs, models.JobPosting{
				Name:       name,
				DatePosted: datePosted,
				DetailURL:  resolveURL(baseURL, viewHref),
				UpdatesURL: resolveURL(baseURL, updatesHref),
			})
		default:
			skipped++
		}
	})

	return jobs, ppos, skipped
}
