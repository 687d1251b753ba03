package domain

import (
	"fmt"
	"math"
)

// Parameter code lookups per physical quantity. The producing authority has
// used different codes across format generations, so each quantity carries an
// ordered preference list; the first code present in the set wins.
var (
	temperatureCodes = []string{"TTT", "T"}
	dewPointCodes    = []string{"Td", "TD"}
	humidityCodes    = []string{"RH", "Rh"}
	pressureCodes    = []string{"PPPP", "PPPP0"}
	windSpeedCodes   = []string{"FF", "ff"}
	windDirCodes     = []string{"DD", "dd"}
	visibilityCodes  = []string{"VV"}
	cloudCoverCodes  = []string{"Neff", "N"}
	precipRateCodes  = []string{"RR1c", "RR1"}
)

// WindLabelMode selects how wind direction is rendered.
type WindLabelMode string

const (
	WindDegrees    WindLabelMode = "degrees"
	WindCardinal8  WindLabelMode = "cardinal8"
	WindCardinal16 WindLabelMode = "cardinal16"
)

var sectors16 = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

var sectors8 = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// NormalizeOptions controls unit conversion and derived-field rendering.
// Each conversion toggle is independent; disabled conversions pass the
// bulletin's native unit through untouched.
type NormalizeOptions struct {
	ConvertTemperature bool // Kelvin -> Celsius
	ConvertWindSpeed   bool // m/s -> km/h
	ConvertPressure    bool // Pa -> hPa
	ConvertVisibility  bool // m -> km
	WindLabel          WindLabelMode
	Compact            bool
}

// DefaultNormalizeOptions enables all unit conversions with numeric wind
// direction output.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		ConvertTemperature: true,
		ConvertWindSpeed:   true,
		ConvertPressure:    true,
		ConvertVisibility:  true,
		WindLabel:          WindDegrees,
	}
}

// BuildRecords constructs one ForecastRecord per timestep from an aligned
// parameter set. Series must already be aligned to the axis length; a lookup
// past a series end is treated as absent.
func BuildRecords(axis TimeAxis, params ParameterSet, opts NormalizeOptions) []ForecastRecord {
	records := make([]ForecastRecord, 0, len(axis))
	for i, ts := range axis {
		rec := ForecastRecord{Timestamp: ts}

		tempK := lookup(params, i, temperatureCodes)
		dewK := lookup(params, i, dewPointCodes)

		rec.Temperature = convert(tempK, opts.ConvertTemperature, kelvinToCelsius)
		rec.DewPoint = convert(dewK, opts.ConvertTemperature, kelvinToCelsius)
		rec.Humidity = deriveHumidity(lookup(params, i, humidityCodes), tempK, dewK)
		rec.Pressure = convert(lookup(params, i, pressureCodes), opts.ConvertPressure, pascalToHectopascal)
		rec.WindSpeed = convert(lookup(params, i, windSpeedCodes), opts.ConvertWindSpeed, metersPerSecondToKmh)
		rec.WindDirection = lookup(params, i, windDirCodes)
		rec.Visibility = convert(lookup(params, i, visibilityCodes), opts.ConvertVisibility, metersToKilometers)
		rec.CloudCover = lookup(params, i, cloudCoverCodes)
		rec.PrecipRate = lookup(params, i, precipRateCodes)
		rec.Precipitation = describePrecipitation(rec.PrecipRate)

		if opts.WindLabel != WindDegrees && opts.WindLabel != "" && rec.WindDirection != nil {
			rec.WindCardinal = windCardinal(*rec.WindDirection, opts.WindLabel)
		}

		if opts.Compact {
			rec = compactRecord(rec)
		}

		records = append(records, rec)
	}
	return records
}

// lookup returns the value at timestep i for the first code present in the
// set, or nil when no listed code carries a value there.
func lookup(params ParameterSet, i int, codes []string) *float64 {
	for _, code := range codes {
		series, ok := params[code]
		if !ok {
			continue
		}
		if i >= len(series.Values) {
			return nil
		}
		if v := series.Values[i]; v != nil {
			return v
		}
	}
	return nil
}

// convert applies fn when enabled, passing the absent marker through.
func convert(v *float64, enabled bool, fn func(float64) float64) *float64 {
	if v == nil || !enabled {
		return v
	}
	out := fn(*v)
	return &out
}

func kelvinToCelsius(k float64) float64 { return k - 273.15 }

func metersPerSecondToKmh(ms float64) float64 { return ms * 3.6 }

func pascalToHectopascal(pa float64) float64 { return math.Round(pa / 100) }

func metersToKilometers(m float64) float64 { return math.Round(m/100) / 10 }

// deriveHumidity prefers a reported relative-humidity value and falls back to
// the Magnus-Tetens approximation when temperature and dew point (Kelvin) are
// both present. The result is a whole percentage clamped to [0, 100].
func deriveHumidity(reported, tempK, dewK *float64) *float64 {
	if reported != nil {
		return reported
	}
	if tempK == nil || dewK == nil {
		return nil
	}

	const a, b = 17.625, 243.04
	t := kelvinToCelsius(*tempK)
	td := kelvinToCelsius(*dewK)
	rh := 100 * math.Exp(a*td/(b+td)-a*t/(b+t))
	rh = math.Round(math.Min(100, math.Max(0, rh)))
	return &rh
}

// describePrecipitation classifies a precipitation rate (mm/h) into an
// intensity label. Absent or non-positive rates mean no precipitation.
func describePrecipitation(rate *float64) string {
	if rate == nil || *rate <= 0 {
		return "no precipitation"
	}

	var intensity string
	switch {
	case *rate < 0.3:
		intensity = "light"
	case *rate < 1.0:
		intensity = "moderate"
	default:
		intensity = "heavy"
	}
	return fmt.Sprintf("%s rain (%.1f mm/h)", intensity, *rate)
}

// windCardinal maps a 0-360 degree direction onto a compass sector label.
// Sector boundaries round up, matching the provider's own published labels.
func windCardinal(deg float64, mode WindLabelMode) string {
	sectors := sectors8
	width := 45.0
	if mode == WindCardinal16 {
		sectors = sectors16
		width = 22.5
	}

	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Ceil(deg/width)) % len(sectors)
	return sectors[idx]
}

// compactRecord projects a record onto its semantically primary fields.
func compactRecord(rec ForecastRecord) ForecastRecord {
	return ForecastRecord{
		Timestamp:     rec.Timestamp,
		Temperature:   rec.Temperature,
		Humidity:      rec.Humidity,
		WindSpeed:     rec.WindSpeed,
		Precipitation: rec.Precipitation,
	}
}
