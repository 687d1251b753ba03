package domain

import (
	"math"
	"time"
)

// OnlyFuture drops every timestep whose instant is before now, truncating the
// axis and all series in lockstep. If every instant is in the past the result
// is empty, not an error.
func OnlyFuture(axis TimeAxis, params ParameterSet, now time.Time) (TimeAxis, ParameterSet) {
	start := len(axis)
	for i, ts := range axis {
		if !ts.Before(now) {
			start = i
			break
		}
	}
	return slice(axis, params, start, len(axis))
}

// ClipHorizon keeps timesteps within [now, now+hours]. When no instant falls
// inside that window but future instants exist, it falls back to the earliest
// ceil(hours) future instants so sparse data still yields a bounded result.
func ClipHorizon(axis TimeAxis, params ParameterSet, now time.Time, hours float64) (TimeAxis, ParameterSet) {
	if hours <= 0 {
		return axis, params
	}
	limit := now.Add(time.Duration(hours * float64(time.Hour)))

	start := len(axis)
	for i, ts := range axis {
		if !ts.Before(now) {
			start = i
			break
		}
	}

	end := start
	for end < len(axis) && !axis[end].After(limit) {
		end++
	}

	if end == start && start < len(axis) {
		// Nothing inside the window; take the earliest future instants.
		end = start + int(math.Ceil(hours))
		if end > len(axis) {
			end = len(axis)
		}
	}

	return slice(axis, params, start, end)
}

// slice cuts the axis and every series to [start, end), keeping alignment.
func slice(axis TimeAxis, params ParameterSet, start, end int) (TimeAxis, ParameterSet) {
	if start >= len(axis) {
		return TimeAxis{}, emptySeries(params)
	}
	if end > len(axis) {
		end = len(axis)
	}

	out := make(ParameterSet, len(params))
	for code, series := range params {
		vals := series.Values
		s, e := start, end
		if s > len(vals) {
			s = len(vals)
		}
		if e > len(vals) {
			e = len(vals)
		}
		out[code] = ParameterSeries{Code: series.Code, Unit: series.Unit, Values: vals[s:e]}
	}
	return axis[start:end], out
}

func emptySeries(params ParameterSet) ParameterSet {
	out := make(ParameterSet, len(params))
	for code, series := range params {
		out[code] = ParameterSeries{Code: series.Code, Unit: series.Unit, Values: nil}
	}
	return out
}
