package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-placement-automation/internal/models"
	"go-placement-automation/internal/portal"
)

const poolBase = "https://tp.example.ac.in/"

// stubNavigator serves canned documents from a url→html map. It stands in for
// a per-worker browser context.
type stubNavigator struct {
	pages   map[string]string
	current string
}

func (s *stubNavigator) Navigate(url string) error {
	doc, ok := s.pages[url]
	if !ok {
		return fmt.Errorf("no document at %s", url)
	}
	s.current = doc
	return nil
}

func (s *stubNavigator) HTML() (string, error) { return s.current, nil }

func (s *stubNavigator) WaitFor(selector string, timeout time.Duration) error { return nil }

func (s *stubNavigator) SelectYear(year string) error { return nil }

func (s *stubNavigator) ClickPaginationNext() (bool, error) { return false, nil }

func (s *stubNavigator) OpenPage(url string) (portal.Navigator, error) {
	sub := &stubNavigator{pages: s.pages}
	if err := sub.Navigate(url); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *stubNavigator) Close() error { return nil }

func stubShortlist(rows int) string {
	doc := `<table class="table-striped"><tbody>`
	for i := 0; i < rows; i++ {
		doc += `<tr><td>x</td></tr>`
	}
	return doc + `</tbody></table>`
}

func stubPages() map[string]string {
	return map[string]string{
		poolBase + "view/acme": `<table><tr><td><b>SALARY DETAILS (PER ANNUM) - FTE</b></td></tr>
			<tbody><tr><td>UG</td><td>₹10,00,000</td></tr></tbody></table>`,
		poolBase + "updates/acme": `<div style="background-color:#c1fac3">
			<a href="shortlist/r1">R1</a></div>`,
		poolBase + "shortlist/r1": stubShortlist(4),
		poolBase + "updates/globex": `<div style="background-color:#c1fac3">
			<a href="shortlist/final">Final</a></div>`,
		poolBase + "shortlist/final": stubShortlist(2),
	}
}

func TestPoolSize(t *testing.T) {
	assert.GreaterOrEqual(t, PoolSize(0.75), 1)
	assert.Equal(t, 1, PoolSize(0))
}

func TestPoolDispatch(t *testing.T) {
	var teardowns atomic.Int32
	factory := func() (portal.Navigator, func(), error) {
		return &stubNavigator{pages: stubPages()}, func() { teardowns.Add(1) }, nil
	}
	pool := NewPool(4, poolBase, factory, slog.New(slog.DiscardHandler))

	jobs := []models.JobPosting{
		{
			Name:       "Acme",
			DatePosted: "12/08/2025",
			DetailURL:  poolBase + "view/acme",
			UpdatesURL: poolBase + "updates/acme",
		},
		{
			// No documents exist for this one; it must be dropped, not
			// take the page down.
			Name:       "Broken",
			DetailURL:  poolBase + "view/broken",
			UpdatesURL: poolBase + "updates/broken",
		},
	}
	ppos := []models.JobPosting{
		{Name: "Globex", UpdatesURL: poolBase + "updates/globex", IsPPO: true},
	}

	records, ppoRecords := pool.Dispatch(context.Background(), jobs, ppos)

	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].CompanyName)
	assert.Equal(t, []models.Salary{{Programme: "UG", CTC: 1000000}}, records[0].SalariesFTE)
	assert.Equal(t, []models.RoundShortlist{{Round: "R1", Count: 4}}, records[0].Rounds)

	require.Len(t, ppoRecords, 1)
	assert.Equal(t, models.PPORecord{CompanyName: "Globex", StudentCount: 2}, ppoRecords[0])

	// every item got a context, and every context was torn down
	assert.Equal(t, int32(3), teardowns.Load())
}

func TestPoolDispatch_FactoryFailureDropsItem(t *testing.T) {
	factory := func() (portal.Navigator, func(), error) {
		return nil, nil, fmt.Errorf("browser context unavailable")
	}
	pool := NewPool(2, poolBase, factory, slog.New(slog.DiscardHandler))

	records, ppoRecords := pool.Dispatch(context.Background(),
		[]models.JobPosting{{Name: "Acme"}}, nil)
	assert.Empty(t, records)
	assert.Empty(t, ppoRecords)
}

func TestPoolDispatch_CancelledContextDoesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var factoryCalls atomic.Int32
	factory := func() (portal.Navigator, func(), error) {
		factoryCalls.Add(1)
		return &stubNavigator{pages: stubPages()}, func() {}, nil
	}
	pool := NewPool(2, poolBase, factory, slog.New(slog.DiscardHandler))

	records, _ := pool.Dispatch(ctx, []models.JobPosting{{Name: "Acme"}}, nil)
	assert.Empty(t, records)
	assert.Equal(t, int32(0), factoryCalls.Load())
}
