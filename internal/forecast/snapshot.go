package forecast

import (
	"errors"
	"time"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by ParseSnapshot for payloads that are not valid JSON.
var ErrInvalidJSON = errors.New("invalid forecast json")

// Snapshot is one MET Norway locationforecast payload. Lookups never fail:
// absent or mistyped fields resolve to documented defaults.
type Snapshot struct {
	series []gjson.Result
}

// ParseSnapshot wraps a raw locationforecast payload. Only JSON syntax is
// checked; a valid document without properties.timeseries is an empty snapshot.
func ParseSnapshot(payload []byte) (Snapshot, error) {
	if !gjson.ValidBytes(payload) {
		return Snapshot{}, ErrInvalidJSON
	}
	series := gjson.GetBytes(payload, "properties.timeseries")
	if !series.IsArray() {
		return Snapshot{}, nil
	}
	return Snapshot{series: series.Array()}, nil
}

// Len returns the number of time-series entries.
func (s Snapshot) Len() int { return len(s.series) }

// Entry returns entry i; out of range yields an empty entry whose fields all default.
func (s Snapshot) Entry(i int) Entry {
	if i < 0 || i >= len(s.series) {
		return Entry{}
	}
	return Entry{raw: s.series[i]}
}

// Entry is a single time-stamped forecast record.
type Entry struct {
	raw gjson.Result
}

// RawTime returns the timestamp string as given, or "".
func (e Entry) RawTime() string {
	return str(e.raw, "time", "")
}

// Time parses the entry timestamp as RFC 3339, keeping its offset.
func (e Entry) Time() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, e.RawTime())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (e Entry) Temperature() float64 {
	return num(e.raw, "data.instant.details.air_temperature")
}

func (e Entry) WindSpeed() float64 {
	return num(e.raw, "data.instant.details.wind_speed")
}

func (e Entry) Humidity() float64 {
	return num(e.raw, "data.instant.details.relative_humidity")
}

// Precipitation is the expected amount for the next hour, in mm.
func (e Entry) Precipitation() float64 {
	return num(e.raw, "data.next_1_hours.details.precipitation_amount")
}

// Symbol returns the next_1_hours summary code, falling back to
// next_6_hours and then DefaultSymbol.
func (e Entry) Symbol() string {
	if code := str(e.raw, "data.next_1_hours.summary.symbol_code", ""); code != "" {
		return code
	}
	return str(e.raw, "data.next_6_hours.summary.symbol_code", DefaultSymbol)
}

func num(r gjson.Result, path string) float64 {
	v := r.Get(path)
	if v.Type != gjson.Number {
		return 0
	}
	return v.Num
}

func str(r gjson.Result, path, fallback string) string {
	v := r.Get(path)
	if v.Type != gjson.String {
		return fallback
	}
	return v.Str
}

// CurrentWeather is the condition summary taken from entry 0.
type CurrentWeather struct {
	Temperature   float64
	Symbol        string
	WindSpeed     float64
	Humidity      float64
	Precipitation float64
}

// Current extracts the current conditions from the first entry.
func (s Snapshot) Current() CurrentWeather {
	e := s.Entry(0)
	return CurrentWeather{
		Temperature:   e.Temperature(),
		Symbol:        e.Symbol(),
		WindSpeed:     e.WindSpeed(),
		Humidity:      e.Humidity(),
		Precipitation: e.Precipitation(),
	}
}
