// Value types shared by the parsers, the extraction controller and the sinks.
// None of these own browser resources.

package models

import "time"

// JobPosting is one row of the paginated listing table. PPO rows carry no
// detail URL: they are routed to the PPO path instead of the detail path.
type JobPosting struct {
	Name       string
	DatePosted string
	DetailURL  string
	UpdatesURL string
	IsPPO      bool
}

// Salary is one FTE salary line from a detail page. CTC is always > 0;
// rows that fail numeric parsing are dropped by the parser, never zeroed.
type Salary struct {
	Programme string  `json:"programme"`
	CTC       float64 `json:"ctc"`
}

// Stipend is one internship stipend line. Programme is "UG" or "PG".
type Stipend struct {
	Programme string  `json:"programme"`
	Stipend   float64 `json:"stipend"`
}

// RoundShortlist pairs a recruitment round with its shortlist row count.
type RoundShortlist struct {
	Round string `json:"round"`
	Count int    `json:"count"`
}

// RoundLink points at one round's shortlist page. Transient: produced by the
// updates-page parser, consumed by the shortlist-count step, never persisted.
type RoundLink struct {
	Name string
	URL  string
}

// DetailInfo is the result of parsing one "View & Apply" page.
type DetailInfo struct {
	ArrivedFor  string
	SalariesFTE []Salary
	Stipends    []Stipend
}

// CompanyRecord is the consolidated result of extracting one job's sub-pages
// (detail page, updates page, per-round shortlist pages).
type CompanyRecord struct {
	CompanyName string
	DatePosted  string
	ArrivedFor  string
	SalariesFTE []Salary
	Stipends    []Stipend
	Rounds      []RoundShortlist
	ScrapedAt   time.Time
}

// PPORecord is one pre-placement-offer entry. The run-wide PPO set is
// deduplicated by the full (CompanyName, StudentCount) tuple before flushing.
type PPORecord struct {
	CompanyName  string
	StudentCount int
}
