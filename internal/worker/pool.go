// Parallel execution mode: one authenticated session is captured once, then
// every work item gets its own short-lived browser context seeded with the
// session cookies. Workers share nothing mutable and return values; the page
// join is a full barrier, so page n+1 never starts before page n finishes.

package worker

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"go-placement-automation/internal/extract"
	"go-placement-automation/internal/models"
	"go-placement-automation/internal/portal"
)

// NavigatorFactory opens a fresh authenticated context and returns its root
// navigator plus a teardown closing the whole context. Each worker calls it
// once and owns the result end-to-end.
type NavigatorFactory func() (portal.Navigator, func(), error)

// PoolSize derives the worker count from a fraction of available CPUs,
// never below one.
func PoolSize(fraction float64) int {
	n := int(float64(runtime.NumCPU()) * fraction)
	if n < 1 {
		n = 1
	}
	return n
}

type Pool struct {
	size    int
	baseURL string
	factory NavigatorFactory
	logger  *slog.Logger
}

var _ extract.Dispatcher = (*Pool)(nil)

func NewPool(size int, baseURL string, factory NavigatorFactory, logger *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size, baseURL: baseURL, factory: factory, logger: logger}
}

// Dispatch fans one page's items out to the pool and waits for all of them.
// A worker failure drops that single item; it never aborts siblings. Only
// successful results are returned, in no particular order.
func (p *Pool) Dispatch(ctx context.Context, jobs []models.JobPosting, ppos []models.JobPosting) ([]models.CompanyRecord, []models.PPORecord) {
	sem := make(chan struct{}, p.size)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var records []models.CompanyRecord
	var ppoRecords []models.PPORecord

	run := func(item models.JobPosting) {
		defer wg.Done()
		sem <- struct{}{}
		defer func() { <-sem }()

		if ctx.Err() != nil {
			return
		}

		nav, teardown, err := p.factory()
		if err != nil {
			p.logger.Warn("worker context failed", "company", item.Name, "error", err)
			return
		}
		defer teardown()

		if item.IsPPO {
			rec, err := extract.ExtractPPO(nav, item, p.baseURL)
			if err != nil {
				p.logger.Warn("PPO extraction failed", "company", item.Name, "error", err)
				return
			}
			mu.Lock()
			ppoRecords = append(ppoRecords, *rec)
			mu.Unlock()
			return
		}

		rec, err := extract.ExtractJob(nav, item, p.baseURL)
		if err != nil {
			p.logger.Warn("job extraction failed", "company", item.Name, "error", err)
			return
		}
		mu.Lock()
		records = append(records, *rec)
		mu.Unlock()
	}

	for _, item := range ppos {
		wg.Add(1)
		go run(item)
	}
	for _, item := range jobs {
		wg.Add(1)
		go run(item)
	}
	wg.Wait()

	return records, ppoRecords
}
