// Per-item units of work. Each unit opens exactly one sub-context (tab or
// worker context tab), drives every sub-page through it, and closes it before
// returning, so sibling items never share a live page.

package extract

import (
	"fmt"
	"time"

	"go-placement-automation/internal/models"
	"go-placement-automation/internal/parser"
	"go-placement-automation/internal/portal"
)

// ExtractJob consolidates one job posting: detail page (roles, salaries,
// stipends), updates page (round links) and every round's shortlist count.
func ExtractJob(nav portal.Navigator, job models.JobPosting, baseURL string) (*models.CompanyRecord, error) {
	sub, err := nav.OpenPage(job.DetailURL)
	if err != nil {
		return nil, fmt.Errorf("open detail page for %s: %w", job.Name, err)
	}
	defer sub.Close()

	pageHTML, err := sub.HTML()
	if err != nil {
		return nil, fmt.Errorf("read detail page for %s: %w", job.Name, err)
	}
	detail := parser.ParseDetailPage(pageHTML)

	if err := sub.Navigate(job.UpdatesURL); err != nil {
		return nil, fmt.Errorf("open updates page for %s: %w", job.Name, err)
	}
	pageHTML, err = sub.HTML()
	if err != nil {
		return nil, fmt.Errorf("read updates page for %s: %w", job.Name, err)
	}
	roundLinks := parser.ParseUpdatesPage(pageHTML, baseURL)

	var rounds []models.RoundShortlist
	for _, rl := range roundLinks {
		if err := sub.Navigate(rl.URL); err != nil {
			return nil, fmt.Errorf("open shortlist %q for %s: %w", rl.Name, job.Name, err)
		}
		pageHTML, err = sub.HTML()
		if err != nil {
			return nil, fmt.Errorf("read shortlist %q for %s: %w", rl.Name, job.Name, err)
		}
		rounds = append(rounds, models.RoundShortlist{
			Round: rl.Name,
			Count: parser.ParseShortlistPage(pageHTML),
		})
	}

	return &models.CompanyRecord{
		CompanyName: job.Name,
		DatePosted:  parser.NormalizeDatePosted(job.DatePosted),
		ArrivedFor:  detail.ArrivedFor,
		SalariesFTE: detail.SalariesFTE,
		Stipends:    detail.Stipends,
		Rounds:      rounds,
		ScrapedAt:   time.Now(),
	}, nil
}

// ExtractPPO counts the students covered by one pre-placement offer. The
// FIRST round link on the updates page is treated as the authoritative final
// shortlist. That ordering is an assumption carried over from the portal's
// observed behavior, not a verified invariant.
func ExtractPPO(nav portal.Navigator, ppo models.JobPosting, baseURL string) (*models.PPORecord, error) {
	sub, err := nav.OpenPage(ppo.UpdatesURL)
	if err != nil {
		return nil, fmt.Errorf("open updates page for %s: %w", ppo.Name, err)
	}
	defer sub.Close()

	pageHTML, err := sub.HTML()
	if err != nil {
		return nil, fmt.Errorf("read updates page for %s: %w", ppo.Name, err)
	}
	links := parser.ParseUpdatesPage(pageHTML, baseURL)

	count := 0
	if len(links) > 0 {
		if err := sub.Navigate(links[0].URL); err != nil {
			return nil, fmt.Errorf("open shortlist for %s: %w", ppo.Name, err)
		}
		pageHTML, err = sub.HTML()
		if err != nil {
			return nil, fmt.Errorf("read shortlist for %s: %w", ppo.Name, err)
		}
		count = parser.ParseShortlistPage(pageHTML)
	}

	return &models.PPORecord{CompanyName: ppo.Name, StudentCount: count}, nil
}
