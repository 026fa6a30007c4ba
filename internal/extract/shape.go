package extract

import (
	"encoding/json"
	"fmt"

	"go-placement-automation/internal/models"
)

// TimestampLayout is the textual form of Scrape Timestamp columns.
const TimestampLayout = "2006-01-02 15:04:05"

// PPOHeader is the fixed header row of the PPO worksheet, created on first
// use when the worksheet is missing.
var PPOHeader = []string{"Company Name", "PPO Student Count", "Scrape Timestamp"}

// RowShape turns one CompanyRecord into worksheet rows. The two variants
// replace what used to be separate near-duplicate scraper scripts.
type RowShape interface {
	Name() string
	Header() []string
	Rows(rec models.CompanyRecord) [][]any
}

// ShapeFor maps a configured shape name onto its strategy.
func ShapeFor(name string) (RowShape, error) {
	switch name {
	case "consolidated":
		return Consolidated{}, nil
	case "exploded":
		return Exploded{}, nil
	default:
		return nil, fmt.Errorf("unknown row shape %q", name)
	}
}

// Consolidated emits one row per company with the list-valued fields encoded
// as JSON text columns, the form the dashboard reads.
type Consolidated struct{}

func (Consolidated) Name() string { return "consolidated" }

func (Consolidated) Header() []string {
	return []string{
		"Company Name", "Date Posted", "Arrived For",
		"Salaries_FTE_JSON", "Stipends_Internship_JSON", "Rounds_Shortlists_JSON",
		"Scrape Timestamp",
	}
}

func (Consolidated) Rows(rec models.CompanyRecord) [][]any {
	return [][]any{{
		rec.CompanyName,
		rec.DatePosted,
		rec.ArrivedFor,
		jsonColumn(rec.SalariesFTE),
		jsonColumn(rec.Stipends),
		jsonColumn(rec.Rounds),
		rec.ScrapedAt.Format(TimestampLayout),
	}}
}

// Exploded emits one row per FTE salary programme. Companies without any
// salary row still produce a single row with empty programme columns so the
// company itself is not lost.
type Exploded struct{}

func (Exploded) Name() string { return "exploded" }

func (Exploded) Header() []string {
	return []string{
		"Company Name", "Date Posted", "Arrived For",
		"Programme", "CTC",
		"Stipends_Internship_JSON", "Rounds_Shortlists_JSON",
		"Scrape Timestamp",
	}
}

func (Exploded) Rows(rec models.CompanyRecord) [][]any {
	stipends := jsonColumn(rec.Stipends)
	rounds := jsonColumn(rec.Rounds)
	ts := rec.ScrapedAt.Format(TimestampLayout)

	if len(rec.SalariesFTE) == 0 {
		return [][]any{{rec.CompanyName, rec.DatePosted, rec.ArrivedFor, "", "", stipends, rounds, ts}}
	}

	rows := make([][]any, 0, len(rec.SalariesFTE))
	for _, s := range rec.SalariesFTE {
		rows = append(rows, []any{
			rec.CompanyName, rec.DatePosted, rec.ArrivedFor,
			s.Programme, s.CTC,
			stipends, rounds, ts,
		})
	}
	return rows
}

// PPORows serializes the deduplicated PPO set into worksheet rows, stamping
// them with one shared timestamp.
func PPORows(records []models.PPORecord, stamped string) [][]any {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.CompanyName, r.StudentCount, stamped})
	}
	return rows
}

// jsonColumn encodes a list field as a JSON text column. The consumer
// contract requires the empty-array sentinel "[]" rather than null.
func jsonColumn[T any](items []T) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}
