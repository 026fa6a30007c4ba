package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-placement-automation/internal/dedup"
	"go-placement-automation/internal/models"
	"go-placement-automation/internal/parser"
	"go-placement-automation/internal/portal"
	"go-placement-automation/internal/sink"
)

// Dispatcher runs one page's items through independent worker contexts and
// returns only the results that succeeded: a subset of the submitted work, in
// no guaranteed order. The sequential path is used when it is nil.
type Dispatcher interface {
	Dispatch(ctx context.Context, jobs []models.JobPosting, ppos []models.JobPosting) ([]models.CompanyRecord, []models.PPORecord)
}

type Options struct {
	// BaseURL is the portal root that relative hrefs resolve against.
	BaseURL      string
	JobWorksheet string
	PPOWorksheet string

	// SettleDelay runs after year selection and after each pagination click,
	// on top of the explicit container wait, because the listing table is
	// repainted asynchronously once the container exists.
	SettleDelay time.Duration

	// WaitTimeout bounds the listing-container wait per page.
	WaitTimeout time.Duration
}

// Controller walks one year's listing pages and their sub-pages:
//
//	SelectingYear → ListingPage(n) → [detail → updates → shortlists]* →
//	FlushBatch → NextPage | Done
//
// Job rows flush once per listing page; PPO records accumulate run-wide and
// flush once, deduplicated, at the end of the run.
type Controller struct {
	opts       Options
	shape      RowShape
	sink       sink.Sink
	ppos       *dedup.PPOSet
	dispatcher Dispatcher
	logger     *slog.Logger

	rowsFlushed int
}

func NewController(opts Options, shape RowShape, s sink.Sink, logger *slog.Logger) *Controller {
	if opts.WaitTimeout == 0 {
		opts.WaitTimeout = 15 * time.Second
	}
	return &Controller{
		opts:   opts,
		shape:  shape,
		sink:   s,
		ppos:   dedup.NewPPOSet(),
		logger: logger,
	}
}

// SetDispatcher switches the controller into pooled-worker mode.
func (c *Controller) SetDispatcher(d Dispatcher) {
	c.dispatcher = d
}

// RunYear traverses every listing page of one placement year. An error from
// any page aborts pagination for the year; batches flushed before the failure
// are kept, and the partially accumulated page batch is flushed best-effort
// before returning.
func (c *Controller) RunYear(ctx context.Context, nav portal.Navigator, year string) error {
	if err := nav.SelectYear(year); err != nil {
		return fmt.Errorf("select year %s: %w", year, err)
	}
	c.settle()

	page := 1
	for {
		if err := nav.WaitFor(portal.ListingReadySelector, c.opts.WaitTimeout); err != nil {
			return fmt.Errorf("listing container missing on page %d: %w", page, err)
		}
		c.settle()

		pageHTML, err := nav.HTML()
		if err != nil {
			return fmt.Errorf("read listing page %d: %w", page, err)
		}
		jobs, ppos, skipped := parser.ParseListingPage(pageHTML, c.opts.BaseURL)
		c.logger.Info("parsed listing page",
			"year", year, "page", page,
			"jobs", len(jobs), "ppos", len(ppos), "skipped_rows", skipped)

		batch, err := c.processPage(ctx, nav, jobs, ppos)
		if err != nil {
			// Keep what the page produced before the failure, then stop
			// this year. Already-flushed pages are never rolled back.
			c.flushBatch(ctx, batch, page)
			c.captureFailure(nav, fmt.Sprintf("page-%d-failure", page))
			return fmt.Errorf("page %d: %w", page, err)
		}

		if err := c.flushBatch(ctx, batch, page); err != nil {
			return err
		}

		ok, err := nav.ClickPaginationNext()
		if err != nil {
			return fmt.Errorf("pagination on page %d: %w", page, err)
		}
		if !ok {
			c.logger.Info("reached last listing page", "year", year, "pages", page)
			return nil
		}
		page++
	}
}

func (c *Controller) processPage(ctx context.Context, nav portal.Navigator, jobs, ppos []models.JobPosting) ([][]any, error) {
	var batch [][]any

	if c.dispatcher != nil {
		records, ppoRecords := c.dispatcher.Dispatch(ctx, jobs, ppos)
		for _, rec := range records {
			batch = append(batch, c.shape.Rows(rec)...)
		}
		for _, rec := range ppoRecords {
			c.ppos.Add(rec)
		}
		return batch, nil
	}

	for _, ppo := range ppos {
		rec, err := ExtractPPO(nav, ppo, c.opts.BaseURL)
		if err != nil {
			return batch, err
		}
		c.ppos.Add(*rec)
	}

	for _, job := range jobs {
		c.logger.Info("scraping details", "company", job.Name)
		rec, err := ExtractJob(nav, job, c.opts.BaseURL)
		if err != nil {
			return batch, err
		}
		batch = append(batch, c.shape.Rows(*rec)...)
	}

	return batch, nil
}

func (c *Controller) flushBatch(ctx context.Context, batch [][]any, page int) error {
	if len(batch) == 0 {
		c.logger.Info("no job rows to flush", "page", page)
		return nil
	}
	if err := c.sink.AppendRows(ctx, c.opts.JobWorksheet, batch); err != nil {
		return fmt.Errorf("flush page %d batch: %w", page, err)
	}
	c.rowsFlushed += len(batch)
	c.logger.Info("flushed job rows", "page", page, "rows", len(batch))
	return nil
}

// RowsFlushed reports how many job rows have been flushed so far.
func (c *Controller) RowsFlushed() int {
	return c.rowsFlushed
}

// FlushPPOs writes the deduplicated run-wide PPO set in one batch, creating
// the PPO worksheet with its fixed header on first use.
func (c *Controller) FlushPPOs(ctx context.Context) error {
	records := c.ppos.Records()
	if len(records) == 0 {
		c.logger.Info("no PPO offerings found this run")
		return nil
	}

	if err := c.sink.EnsureWorksheet(ctx, c.opts.PPOWorksheet, PPOHeader); err != nil {
		return fmt.Errorf("ensure PPO worksheet: %w", err)
	}

	stamped := time.Now().Format(TimestampLayout)
	if err := c.sink.AppendRows(ctx, c.opts.PPOWorksheet, PPORows(records, stamped)); err != nil {
		return fmt.Errorf("flush PPO rows: %w", err)
	}
	c.logger.Info("flushed PPO rows", "companies", len(records))
	return nil
}

// PPOCount reports how many deduplicated PPO records have accumulated.
func (c *Controller) PPOCount() int {
	return c.ppos.Len()
}

func (c *Controller) settle() {
	if c.opts.SettleDelay > 0 {
		time.Sleep(c.opts.SettleDelay)
	}
}

func (c *Controller) captureFailure(nav portal.Navigator, name string) {
	if sc, ok := nav.(interface{ CaptureFailure(string) }); ok {
		sc.CaptureFailure(name)
	}
}
