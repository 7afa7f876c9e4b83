package filter

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseTime understands ISO dates and natural language ("yesterday",
// "2 hours ago"). Fixed layouts are tried first so that a timestamp's
// clock part is not read as a bare time of day.
func ParseTime(expr string, now time.Time) (time.Time, bool) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006/01/02",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, expr, now.Location()); err == nil {
			return t, true
		}
	}

	result, err := dateParser.Parse(expr, now)
	if err == nil && result != nil {
		return result.Time, true
	}

	return time.Time{}, false
}

// OpportunitiesSince keeps opportunities created at or after since
func OpportunitiesSince(opps []models.Opportunity, since time.Time) []models.Opportunity {
	out := make([]models.Opportunity, 0, len(opps))
	for _, o := range opps {
		if !o.CreatedAt.Before(since) {
			out = append(out, o)
		}
	}
	return out
}
