package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-placement-automation/internal/models"
)

const detailHTML = `
<html><body>
<h3>Company Profile</h3>
<div>
  <ul>
    <li>Software Engineer</li>
    <li>Data Analyst</li>
  </ul>
</div>
<table class="table">
  <tr><td><b>SALARY DETAILS (PER ANNUM) - FTE</b></td></tr>
  <tbody>
    <tr><td>UG (B.Tech)</td><td>₹ 12,00,000</td></tr>
    <tr><td>PG (M.Tech)</td><td>₹ 0</td></tr>
    <tr><td>PhD</td><td>To be decided</td></tr>
    <tr><td>IMSC Integrated</td><td>9,50,000</td></tr>
  </tbody>
</table>
<table class="table">
  <tr><td><b>STIPEND DETAILS - INTERNSHIP</b></td></tr>
  <tbody>
    <tr><td>For UG <b>₹ 40,000</b> per month</td></tr>
    <tr><td>For PG <b>₹ 45,000</b> per month</td></tr>
    <tr><td>Details will be shared later</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseDetailPage(t *testing.T) {
	info := ParseDetailPage(detailHTML)

	assert.Equal(t, "Software Engineer, Data Analyst", info.ArrivedFor)

	// Zero and unparseable CTC rows are dropped, not zeroed.
	assert.Equal(t, []models.Salary{
		{Programme: "UG", CTC: 1200000},
		{Programme: "IMSC", CTC: 950000},
	}, info.SalariesFTE)
	for _, s := range info.SalariesFTE {
		assert.Greater(t, s.CTC, 0.0)
	}

	assert.Equal(t, []models.Stipend{
		{Programme: "UG", Stipend: 40000},
		{Programme: "PG", Stipend: 45000},
	}, info.Stipends)
}

// A page without the "Arrived For" heading keeps the sentinel and still
// parses the salary and stipend tables.
func TestParseDetailPage_MissingArrivedFor(t *testing.T) {
	html := `
<html><body>
<table>
  <tr><td><b>SALARY DETAILS (PER ANNUM) - FTE</b></td></tr>
  <tbody><tr><td>UG</td><td>₹ 8,00,000</td></tr></tbody>
</table>
</body></html>`

	info := ParseDetailPage(html)
	assert.Equal(t, ArrivedForNotFound, info.ArrivedFor)
	assert.Len(t, info.SalariesFTE, 1)
	assert.Equal(t, 800000.0, info.SalariesFTE[0].CTC)
}

func TestParseDetailPage_Empty(t *testing.T) {
	info := ParseDetailPage("<html><body><p>nothing here</p></body></html>")
	assert.Equal(t, ArrivedForNotFound, info.ArrivedFor)
	assert.Empty(t, info.SalariesFTE)
	assert.Empty(t, info.Stipends)
}

func TestParseDetailPage_Idempotent(t *testing.T) {
	assert.Equal(t, ParseDetailPage(detailHTML), ParseDetailPage(detailHTML))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"₹ 12,00,000", 1200000, true},
		{"9,50,000", 950000, true},
		{"12.5", 12.5, true},
		{"0", 0, true},
		{"To be decided", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
