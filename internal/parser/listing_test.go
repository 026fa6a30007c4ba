package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const baseURL = "https://tp.example.ac.in/"

const listingHTML = `
<html><body>
<table id="job-listings">
  <thead><tr><th>Company</th><th>Status</th><th>Date</th><th>Action</th></tr></thead>
  <tbody>
    <tr>
      <td>Acme Corp</td><td>Open</td><td>12/08/2025</td>
      <td><a href="company/view/101">View &amp; Apply</a> <a href="company/updates/101">Updates</a></td>
    </tr>
    <tr>
      <td>Globex</td><td>Closed</td><td>01/07/2025</td>
      <td>PPO Offered <a href="company/updates/102">Updates</a></td>
    </tr>
    <tr>
      <td>NoUpdates Ltd</td><td>Open</td><td>02/07/2025</td>
      <td><a href="company/view/103">View &amp; Apply</a></td>
    </tr>
    <tr><td>Truncated Row</td><td>Open</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseListingPage(t *testing.T) {
	jobs, ppos, skipped := ParseListingPage(listingHTML, baseURL)

	assert.Len(t, jobs, 1)
	assert.Len(t, ppos, 1)
	assert.Equal(t, 2, skipped)

	job := jobs[0]
	assert.Equal(t, "Acme Corp", job.Name)
	assert.Equal(t, "12/08/2025", job.DatePosted)
	assert.Equal(t, "https://tp.example.ac.in/company/view/101", job.DetailURL)
	assert.Equal(t, "https://tp.example.ac.in/company/updates/101", job.UpdatesURL)
	assert.False(t, job.IsPPO)

	ppo := ppos[0]
	assert.Equal(t, "Globex", ppo.Name)
	assert.True(t, ppo.IsPPO)
	assert.Empty(t, ppo.DetailURL, "PPO rows never get a detail URL")
	assert.Equal(t, "https://tp.example.ac.in/company/updates/102", ppo.UpdatesURL)
}

// A row lacking the "Updates" anchor must end up in neither output.
func TestParseListingPage_RowWithoutUpdatesExcluded(t *testing.T) {
	jobs, ppos, _ := ParseListingPage(listingHTML, baseURL)
	for _, j := range append(jobs, ppos...) {
		assert.NotEqual(t, "NoUpdates Ltd", j.Name)
	}
}

func TestParseListingPage_MissingTable(t *testing.T) {
	jobs, ppos, skipped := ParseListingPage("<html><body><p>maintenance</p></body></html>", baseURL)
	assert.Empty(t, jobs)
	assert.Empty(t, ppos)
	assert.Zero(t, skipped)
}

// Re-parsing the same document must yield identical records: the parsers are
// deterministic, timestamps only enter at serialization time.
func TestParseListingPage_Idempotent(t *testing.T) {
	jobs1, ppos1, skipped1 := ParseListingPage(listingHTML, baseURL)
	jobs2, ppos2, skipped2 := ParseListingPage(listingHTML, baseURL)
	assert.Equal(t, jobs1, jobs2)
	assert.Equal(t, ppos1, ppos2)
	assert.Equal(t, skipped1, skipped2)
}
