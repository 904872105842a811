package elections

import (
	"errors"
	"strings"
	"time"

	"github.com/skcvote/ballotd/internal/core"
)

var errUnparseableTimestamp = errors.New("unparseable timestamp")

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp accepts either a bare calendar date or a full timestamp.
// Bare dates are coerced to end-of-day UTC for end times and start-of-day
// UTC for start times.
func ParseTimestamp(raw string, dayEnd bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if len(raw) == len("2006-01-02") {
		if dayEnd {
			raw += "T23:59:59Z"
		} else {
			raw += "T00:00:00Z"
		}
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, errUnparseableTimestamp
}

// SlugifyElectionID derives an election id from a display name: lowercase,
// runs of non-alphanumerics collapsed to single underscores, trimmed, and
// truncated to the maximum id length.
func SlugifyElectionID(name string) string {
	var b strings.Builder

	lastUnderscore := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false

			continue
		}

		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	slug := strings.Trim(b.String(), "_")

	if len(slug) > core.MaxElectionIDLength {
		slug = slug[:core.MaxElectionIDLength]
	}

	return slug
}
