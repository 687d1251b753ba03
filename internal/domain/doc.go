// Package domain models normalized point-forecast data extracted from
// provider weather bulletins.
//
// # Data Source
//
// Bulletins are compressed archives, one per observation site, each holding a
// single markup document of parameter time series aligned to a shared time
// axis. The producing authority revises the document layout across format
// generations without notice, which is why extraction (package bulletin) is a
// fallback chain rather than a schema-bound parser.
//
// # Parameter Codes
//
// Series are identified by short mnemonic codes. Codes have shifted between
// format generations, so each physical quantity carries an ordered preference
// list:
//
//	Temperature:    TTT, T       (Kelvin)
//	Dew point:      Td, TD       (Kelvin)
//	Humidity:       RH, Rh       (percent; rarely reported, usually derived)
//	Pressure:       PPPP, PPPP0  (Pascal)
//	Wind speed:     FF, ff       (m/s)
//	Wind direction: DD, dd       (degrees, 0-360)
//	Visibility:     VV           (meters)
//	Cloud cover:    Neff, N      (percent)
//	Precip rate:    RR1c, RR1    (mm/h)
//
// # Derived Fields
//
// Relative humidity falls back to the Magnus-Tetens approximation when the
// bulletin reports temperature and dew point but no humidity series:
//
//	RH = 100 * exp(a*Td/(b+Td) - a*T/(b+T))   a=17.625, b=243.04 (Celsius)
//
// clamped to [0, 100] and rounded to a whole percent.
//
// Precipitation rates are classified into intensity labels:
//
//	< 0.3 mm/h light | < 1.0 mm/h moderate | otherwise heavy
//
// Non-positive or absent rates render as "no precipitation".
//
// # Absent Values
//
// A nil pointer is the explicit absent marker, distinct from zero. Tokens
// that fail numeric parsing upstream are mapped to nil rather than surfacing
// an error; a bulletin with a valid time axis but no usable parameters still
// produces records, with every field absent.
package domain
