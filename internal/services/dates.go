package services

import (
	"math"
	"time"

	apperrors "bondledger/internal/errors"
)

// isoDateLayouts are the accepted issuer-feed date formats, tried in order.
// RFC3339 covers zoned timestamps; the remaining layouts cover zone-less
// timestamps (with and without fractional seconds) and plain dates.
var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseISODate parses an ISO-8601 date string from bond terms.
func parseISODate(s string) (time.Time, error) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidDate, "Malformed date: "+s)
}

// wholeDays returns the number of whole days from from to to, floored, so
// it goes negative once to lies in the past.
func wholeDays(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
