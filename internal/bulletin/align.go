package bulletin

import "github.com/couchcryptid/forecast-bulletin-etl/internal/domain"

// Align reconciles every series with the time axis length: overlong series
// are truncated from the end, undersized ones right-padded with absent
// markers. Afterwards series[i] is defined for every i in [0, n).
func Align(params domain.ParameterSet, n int) domain.ParameterSet {
	out := make(domain.ParameterSet, len(params))
	for code, series := range params {
		vals := series.Values
		switch {
		case len(vals) > n:
			vals = vals[:n]
		case len(vals) < n:
			padded := make([]*float64, n)
			copy(padded, vals)
			vals = padded
		}
		out[code] = domain.ParameterSeries{Code: series.Code, Unit: series.Unit, Values: vals}
	}
	return out
}
