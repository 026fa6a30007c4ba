package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func shortlistFixture(rows int) string {
	var b strings.Builder
	b.WriteString(`<html><body><table class="table-striped"><thead><tr><th>SL</th><th>Name</th></tr></thead><tbody>`)
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "<tr><td>%d</td><td>Student %d</td></tr>", i+1, i+1)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

func TestParseShortlistPage_CountsBodyRows(t *testing.T) {
	for _, k := range []int{0, 1, 5, 42} {
		assert.Equal(t, k, ParseShortlistPage(shortlistFixture(k)), "rows=%d", k)
	}
}

func TestParseShortlistPage_SLHeaderFallback(t *testing.T) {
	html := `
<html><body>
<table>
  <thead><tr><th>SL</th><th>Roll No</th></tr></thead>
  <tbody><tr><td>1</td><td>BT21CS001</td></tr><tr><td>2</td><td>BT21CS002</td></tr></tbody>
</table>
</body></html>`
	assert.Equal(t, 2, ParseShortlistPage(html))
}

func TestParseShortlistPage_TableAbsent(t *testing.T) {
	assert.Equal(t, 0, ParseShortlistPage("<html><body><p>Not published</p></body></html>"))
}

func TestNormalizeDatePosted(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12/08/2025", "12/08/2025"},
		{"1/7/2025", "01/07/2025"},
		{"2025-08-12", "12/08/2025"},
		{"2025-08-12T10:30:00", "12/08/2025"},
		{"  12/08/2025 ", "12/08/2025"},
		{"August 2025", "August 2025"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDatePosted(tt.in), tt.in)
	}
}
