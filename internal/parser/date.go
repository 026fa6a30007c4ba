package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// NormalizeDatePosted coerces the portal's loosely formatted posting dates
// into the dd/mm/yyyy textual form the dashboard parses. Unrecognized inputs
// pass through trimmed rather than being dropped: the date column is
// informational, not load-bearing.
func NormalizeDatePosted(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}

	//Case 1: ISO format "2026-01-27" or 2026-01-27T...
	if isoDateRe.MatchString(dateStr) {
		if d, err := time.Parse("2006-01-02", dateStr[:10]); err == nil {
			return d.Format("02/01/2006")
		}
	}

	//Case 2: dd/mm/yyyy, possibly without zero padding
	if strings.Contains(dateStr, "/") {
		parts := strings.Split(dateStr, "/")
		if len(parts) == 3 {
			day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
			month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
			year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
			if errD == nil && errM == nil && errY == nil &&
				day >= 1 && day <= 31 && month >= 1 && month <= 12 {
				return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
			}
		}
	}

	//Fallback: keep the portal's own text
	return dateStr
}
