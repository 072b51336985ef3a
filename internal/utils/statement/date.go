package statement

import (
	"strings"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
)

var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"2-1-2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate reads the date formats banks export. ok is false when nothing matched,
// in which case the returned date is the calendar day of now.
func ParseDate(raw string, now time.Time) (t time.Time, ok bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return domain.DateOnly(parsed), true
		}
	}
	return domain.DateOnly(now), false
}

// parseOFXDate reads the leading YYYYMMDD of a DTPOSTED value such as "20240305120000[-3:BRT]".
func parseOFXDate(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if len(s) >= 8 {
		if parsed, err := time.Parse("20060102", s[:8]); err == nil {
			return parsed, true
		}
	}
	return domain.DateOnly(now), false
}
