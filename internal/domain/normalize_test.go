package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func singleStep(code string, v *float64) (TimeAxis, ParameterSet) {
	axis := TimeAxis{time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	return axis, ParameterSet{code: {Code: code, Values: []*float64{v}}}
}

func TestBuildRecords_UnitConversions(t *testing.T) {
	opts := DefaultNormalizeOptions()

	t.Run("temperature Kelvin to Celsius", func(t *testing.T) {
		axis, params := singleStep("TTT", fp(300.0))
		records := BuildRecords(axis, params, opts)
		require.NotNil(t, records[0].Temperature)
		assert.InDelta(t, 26.85, *records[0].Temperature, 0.01)
	})

	t.Run("wind speed m/s to km/h", func(t *testing.T) {
		axis, params := singleStep("FF", fp(10.0))
		records := BuildRecords(axis, params, opts)
		require.NotNil(t, records[0].WindSpeed)
		assert.Equal(t, 36.0, *records[0].WindSpeed)
	})

	t.Run("pressure Pa to hPa", func(t *testing.T) {
		axis, params := singleStep("PPPP", fp(101300.0))
		records := BuildRecords(axis, params, opts)
		require.NotNil(t, records[0].Pressure)
		assert.Equal(t, 1013.0, *records[0].Pressure)
	})

	t.Run("visibility m to km", func(t *testing.T) {
		axis, params := singleStep("VV", fp(5000.0))
		records := BuildRecords(axis, params, opts)
		require.NotNil(t, records[0].Visibility)
		assert.Equal(t, 5.0, *records[0].Visibility)
	})

	t.Run("disabled conversion passes native unit through", func(t *testing.T) {
		axis, params := singleStep("TTT", fp(300.0))
		noConvert := opts
		noConvert.ConvertTemperature = false
		records := BuildRecords(axis, params, noConvert)
		require.NotNil(t, records[0].Temperature)
		assert.Equal(t, 300.0, *records[0].Temperature)
	})

	t.Run("absent marker survives conversion", func(t *testing.T) {
		axis, params := singleStep("TTT", nil)
		records := BuildRecords(axis, params, opts)
		assert.Nil(t, records[0].Temperature)
	})
}

func TestBuildRecords_HumidityDerivation(t *testing.T) {
	axis := TimeAxis{time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}

	t.Run("Magnus-Tetens fallback from temperature and dew point", func(t *testing.T) {
		params := ParameterSet{
			"TTT": {Code: "TTT", Values: []*float64{fp(283.15)}}, // 10 C
			"Td":  {Code: "Td", Values: []*float64{fp(278.15)}},  // 5 C
		}
		records := BuildRecords(axis, params, DefaultNormalizeOptions())
		require.NotNil(t, records[0].Humidity)
		assert.GreaterOrEqual(t, *records[0].Humidity, 65.0)
		assert.LessOrEqual(t, *records[0].Humidity, 72.0)
	})

	t.Run("saturated air is 100 percent", func(t *testing.T) {
		params := ParameterSet{
			"TTT": {Code: "TTT", Values: []*float64{fp(283.15)}},
			"Td":  {Code: "Td", Values: []*float64{fp(283.15)}},
		}
		records := BuildRecords(axis, params, DefaultNormalizeOptions())
		require.NotNil(t, records[0].Humidity)
		assert.Equal(t, 100.0, *records[0].Humidity)
	})

	t.Run("reported humidity wins over derivation", func(t *testing.T) {
		params := ParameterSet{
			"RH":  {Code: "RH", Values: []*float64{fp(55.0)}},
			"TTT": {Code: "TTT", Values: []*float64{fp(283.15)}},
			"Td":  {Code: "Td", Values: []*float64{fp(283.15)}},
		}
		records := BuildRecords(axis, params, DefaultNormalizeOptions())
		require.NotNil(t, records[0].Humidity)
		assert.Equal(t, 55.0, *records[0].Humidity)
	})

	t.Run("absent without dew point", func(t *testing.T) {
		params := ParameterSet{
			"TTT": {Code: "TTT", Values: []*float64{fp(283.15)}},
		}
		records := BuildRecords(axis, params, DefaultNormalizeOptions())
		assert.Nil(t, records[0].Humidity)
	})
}

func TestBuildRecords_PrecipitationDescription(t *testing.T) {
	tests := []struct {
		name string
		rate *float64
		want string
	}{
		{"absent rate", nil, "no precipitation"},
		{"zero rate", fp(0), "no precipitation"},
		{"light", fp(0.2), "light rain (0.2 mm/h)"},
		{"moderate", fp(0.5), "moderate rain (0.5 mm/h)"},
		{"heavy", fp(2.4), "heavy rain (2.4 mm/h)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, params := singleStep("RR1c", tt.rate)
			records := BuildRecords(axis, params, DefaultNormalizeOptions())
			assert.Equal(t, tt.want, records[0].Precipitation)
		})
	}
}

func TestBuildRecords_WindCardinal(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		mode WindLabelMode
		want string
	}{
		{"north 8-way", 0, WindCardinal8, "N"},
		{"north 16-way", 0, WindCardinal16, "N"},
		{"southwest 8-way", 225, WindCardinal8, "SW"},
		{"east-southeast 16-way", 100, WindCardinal16, "ESE"},
		{"full circle wraps to north", 360, WindCardinal8, "N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, params := singleStep("DD", fp(tt.deg))
			opts := DefaultNormalizeOptions()
			opts.WindLabel = tt.mode
			records := BuildRecords(axis, params, opts)
			assert.Equal(t, tt.want, records[0].WindCardinal)
		})
	}

	t.Run("omitted in degrees mode", func(t *testing.T) {
		axis, params := singleStep("DD", fp(225))
		records := BuildRecords(axis, params, DefaultNormalizeOptions())
		assert.Empty(t, records[0].WindCardinal)
	})
}

func TestBuildRecords_CodeFallback(t *testing.T) {
	axis := TimeAxis{time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	params := ParameterSet{
		"T": {Code: "T", Values: []*float64{fp(300.0)}}, // alternate temperature code
	}

	records := BuildRecords(axis, params, DefaultNormalizeOptions())

	require.NotNil(t, records[0].Temperature)
	assert.InDelta(t, 26.85, *records[0].Temperature, 0.01)
}

func TestBuildRecords_CompactProjection(t *testing.T) {
	axis := TimeAxis{time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	params := ParameterSet{
		"TTT":  {Code: "TTT", Values: []*float64{fp(283.15)}},
		"FF":   {Code: "FF", Values: []*float64{fp(10.0)}},
		"PPPP": {Code: "PPPP", Values: []*float64{fp(101300.0)}},
		"VV":   {Code: "VV", Values: []*float64{fp(5000.0)}},
	}
	opts := DefaultNormalizeOptions()
	opts.Compact = true

	records := BuildRecords(axis, params, opts)

	rec := records[0]
	assert.NotNil(t, rec.Temperature)
	assert.NotNil(t, rec.WindSpeed)
	assert.Equal(t, "no precipitation", rec.Precipitation)
	assert.Nil(t, rec.Pressure, "secondary fields are dropped in compact mode")
	assert.Nil(t, rec.Visibility)
}

func TestBuildRecords_EmptyParameterSet(t *testing.T) {
	axis := TimeAxis{
		time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 25, 13, 0, 0, 0, time.UTC),
	}

	records := BuildRecords(axis, ParameterSet{}, DefaultNormalizeOptions())

	require.Len(t, records, 2)
	assert.Nil(t, records[0].Temperature)
	assert.Equal(t, "no precipitation", records[0].Precipitation)
}
