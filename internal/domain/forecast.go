package domain

import (
	"sort"
	"time"
)

// TimeAxis is the ordered sequence of forecast instants shared by every
// parameter series in one bulletin. All instants are in UTC.
type TimeAxis []time.Time

// ParameterSeries is one physical quantity's numeric sequence, identified by
// a short mnemonic code (e.g. "TTT" for air temperature). A nil entry is the
// absent marker: no value was reported for that timestep.
type ParameterSeries struct {
	Code   string
	Unit   string
	Values []*float64
}

// ParameterSet maps parameter codes to their series. It is populated by
// exactly one extraction strategy per run.
type ParameterSet map[string]ParameterSeries

// Codes returns the parameter codes present in the set, sorted.
func (ps ParameterSet) Codes() []string {
	codes := make([]string, 0, len(ps))
	for code := range ps {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ForecastRecord is one normalized timestep. All scalar fields are nullable;
// nil means the bulletin carried no usable value for that quantity.
type ForecastRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	Temperature   *float64  `json:"temperature,omitempty"`
	DewPoint      *float64  `json:"dew_point,omitempty"`
	Humidity      *float64  `json:"humidity,omitempty"`
	Pressure      *float64  `json:"pressure,omitempty"`
	WindSpeed     *float64  `json:"wind_speed,omitempty"`
	WindDirection *float64  `json:"wind_direction,omitempty"`
	WindCardinal  string    `json:"wind_cardinal,omitempty"`
	Visibility    *float64  `json:"visibility,omitempty"`
	CloudCover    *float64  `json:"cloud_cover,omitempty"`
	PrecipRate    *float64  `json:"precip_rate,omitempty"`
	Precipitation string    `json:"precipitation,omitempty"`
}

// ForecastResult is the unit of caching: the normalized records of one
// extraction run plus run metadata. Immutable once produced.
type ForecastResult struct {
	Station        string           `json:"station"`
	SiteName       string           `json:"site_name,omitempty"`
	SourceURL      string           `json:"source_url,omitempty"`
	Records        []ForecastRecord `json:"records"`
	RecordCount    int              `json:"record_count"`
	Codes          []string         `json:"codes,omitempty"`
	Stale          bool             `json:"stale"`
	FetchedAt      time.Time        `json:"fetched_at"`
	Error          string           `json:"error,omitempty"`
	StrategyCounts map[string]int   `json:"strategy_counts,omitempty"`
}
