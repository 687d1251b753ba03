package bulletin

import (
	"log/slog"

	"github.com/beevik/etree"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
)

// Extractor runs the ordered strategy chain over a parsed bulletin.
type Extractor struct {
	strategies []strategy
	logger     *slog.Logger
}

// NewExtractor builds the chain in priority order: the three tree layouts
// most-specific-first, then the raw-text scan, then the generic walk. The
// ordering keeps the generic fallback from shadowing exact layouts with
// spurious matches.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		strategies: []strategy{
			arrayStrategy{},
			seriesStrategy{},
			attributeStrategy{},
			rawTextStrategy{},
			genericStrategy{},
		},
		logger: logger,
	}
}

// Extract returns the parameter set of the first strategy that finds any,
// along with that strategy's name. An empty set is a valid outcome: the time
// axis alone still carries information, so extraction never fails here.
//
// With diagnostics enabled every strategy runs and the per-strategy code
// counts are returned, to aid triage when the provider ships a new format
// generation; the winning set is unchanged.
func (e *Extractor) Extract(root *etree.Element, raw string, diagnostics bool) (domain.ParameterSet, string, map[string]int) {
	var (
		winner     domain.ParameterSet
		winnerName string
		counts     map[string]int
	)
	if diagnostics {
		counts = make(map[string]int, len(e.strategies))
	}

	for _, s := range e.strategies {
		if root == nil && !usesRawText(s) {
			continue
		}
		set := s.Extract(root, raw)
		if diagnostics {
			counts[s.Name()] = len(set)
		}
		if winner == nil && len(set) > 0 {
			winner = set
			winnerName = s.Name()
			e.logger.Debug("parameter extraction succeeded",
				"strategy", winnerName, "codes", len(set))
			if !diagnostics {
				break
			}
		}
	}

	if winner == nil {
		e.logger.Warn("no extraction strategy found parameters")
		winner = domain.ParameterSet{}
	}
	return winner, winnerName, counts
}

func usesRawText(s strategy) bool {
	_, ok := s.(rawTextStrategy)
	return ok
}
