package forecast

// Slot is one sampled forecast entry ready for display.
type Slot struct {
	// Label is the hour ("14") in hourly mode and "MM-DD HH" in sampled
	// mode. It is "?" when no hour can be read from the timestamp.
	Label       string
	Symbol      string
	Temperature float64
}

func newSlot(e Entry, label string) Slot {
	return Slot{Label: label, Symbol: e.Symbol(), Temperature: e.Temperature()}
}

// Hourly returns one slot for each of the first hours entries after the
// current one, in series order.
func Hourly(s Snapshot, hours int) []Slot {
	end := min(hours+1, s.Len())
	if end <= 1 {
		return nil
	}

	slots := make([]Slot, 0, end-1)
	for i := 1; i < end; i++ {
		e := s.Entry(i)
		slots = append(slots, newSlot(e, hourLabel(e)))
	}
	return slots
}

// hourLabel is the two-digit hour of the entry. Timestamps that are not
// RFC 3339 but carry an hour at the fixed position (e.g. "2024-01-01T14:00")
// still yield it; anything shorter is "?".
func hourLabel(e Entry) string {
	if t, ok := e.Time(); ok {
		return t.Format("15")
	}
	if raw := e.RawTime(); len(raw) >= 13 {
		return raw[11:13]
	}
	return "?"
}

// Sampled walks the series after entry 0 and emits the first entry at or
// past each target offset from the first timestamp. Targets start at
// interval hours and advance by interval after every emission, independent
// of when the emitted entry actually fell. At most maxEntries slots are
// returned; entries with unparseable timestamps are skipped.
func Sampled(s Snapshot, maxEntries, interval int) []Slot {
	if s.Len() == 0 || maxEntries <= 0 {
		return nil
	}
	start, ok := s.Entry(0).Time()
	if !ok {
		return nil
	}

	var slots []Slot
	target := int64(interval)
	for i := 1; i < s.Len() && len(slots) < maxEntries; i++ {
		e := s.Entry(i)
		t, ok := e.Time()
		if !ok {
			continue
		}
		// Truncates toward zero, so 2h59m counts as 2 hours.
		elapsed := int64(t.Sub(start).Hours())
		if elapsed < target {
			continue
		}
		slots = append(slots, newSlot(e, t.Format("01-02 15")))
		target += int64(interval)
	}
	return slots
}
