package forecast

import (
	"encoding/json"
	"testing"
	"time"
)

type testEntry struct {
	time     string
	temp     float64
	wind     float64
	humidity float64
	precip   float64
	symbol1  string
	symbol6  string
}

func (e testEntry) toJSON() map[string]any {
	data := map[string]any{
		"instant": map[string]any{
			"details": map[string]any{
				"air_temperature":   e.temp,
				"wind_speed":        e.wind,
				"relative_humidity": e.humidity,
			},
		},
	}
	if e.symbol1 != "" {
		data["next_1_hours"] = map[string]any{
			"summary": map[string]any{"symbol_code": e.symbol1},
			"details": map[string]any{"precipitation_amount": e.precip},
		}
	}
	if e.symbol6 != "" {
		data["next_6_hours"] = map[string]any{
			"summary": map[string]any{"symbol_code": e.symbol6},
		}
	}
	return map[string]any{"time": e.time, "data": data}
}

func buildSnapshot(t *testing.T, entries []testEntry) Snapshot {
	t.Helper()
	series := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		series = append(series, e.toJSON())
	}
	payload, err := json.Marshal(map[string]any{
		"type":       "Feature",
		"properties": map[string]any{"timeseries": series},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snap, err := ParseSnapshot(payload)
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	return snap
}

// hourlyEntries returns n entries one hour apart, with temperature equal to the index.
func hourlyEntries(t *testing.T, start string, n int) []testEntry {
	t.Helper()
	base, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	entries := make([]testEntry, n)
	for i := range entries {
		entries[i] = testEntry{
			time:    base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			temp:    float64(i),
			symbol1: "clearsky_day",
		}
	}
	return entries
}
