package bulletin

import (
	"regexp"
	"time"

	"github.com/beevik/etree"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
)

// timeStepTextRe matches TimeStep element content in raw markup, tolerating
// any namespace prefix. Last-resort fallback when the parsed tree carries no
// recognizable temporal encoding.
var timeStepTextRe = regexp.MustCompile(`(?is)<(?:[\w.-]+:)?TimeStep[^>]*>\s*([^<]+?)\s*</(?:[\w.-]+:)?TimeStep>`)

// timeLayouts are the timestamp shapes observed across format generations.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ResolveTimeAxis discovers the shared forecast time axis. It prefers
// TimeStep elements, then the Track/when temporal convention, then a raw-text
// pattern match. Unparseable timestamps are dropped; if none survive the run
// fails with ErrNoTimeAxis.
func ResolveTimeAxis(root *etree.Element, raw string) (domain.TimeAxis, error) {
	var stamps []string

	if root != nil {
		for _, step := range findAll(root, "TimeStep") {
			if s := text(step); s != "" {
				stamps = append(stamps, s)
			}
		}
		if len(stamps) == 0 {
			for _, track := range findAll(root, "Track") {
				for _, when := range findAll(track, "when") {
					if s := text(when); s != "" {
						stamps = append(stamps, s)
					}
				}
			}
		}
	}

	if len(stamps) == 0 && raw != "" {
		for _, m := range timeStepTextRe.FindAllStringSubmatch(raw, -1) {
			stamps = append(stamps, m[1])
		}
	}

	axis := make(domain.TimeAxis, 0, len(stamps))
	for _, s := range stamps {
		if ts, ok := parseTimestamp(s); ok {
			axis = append(axis, ts)
		}
	}

	if len(axis) == 0 {
		return nil, ErrNoTimeAxis
	}
	return axis, nil
}

// parseTimestamp tries each known layout, interpreting zone-less stamps in
// the reference time zone (UTC).
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
