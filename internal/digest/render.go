// Package digest turns a forecast snapshot into the text, tooltip and class
// shown by the Waybar module.
package digest

import (
	"fmt"
	"strings"

	"github.com/egset/waybar-weather/internal/forecast"
	"github.com/egset/waybar-weather/internal/i18n"
)

// IndicatorStyle selects how much is shown in the bar itself.
type IndicatorStyle string

const (
	Concise  IndicatorStyle = "concise"
	Detailed IndicatorStyle = "detailed"
	Full     IndicatorStyle = "full"
)

// TooltipStyle selects the forecast horizon in the tooltip.
type TooltipStyle string

const (
	CurrentDay TooltipStyle = "current-day"
	ThreeDays  TooltipStyle = "three-days"
	Week       TooltipStyle = "week"
)

// Options are the per-render selections. Zero values render as English,
// concise, current-day and Celsius.
type Options struct {
	Lang      i18n.Lang
	Indicator IndicatorStyle
	Tooltip   TooltipStyle
	Unit      forecast.Unit
}

// Digest holds the three strings Waybar displays.
type Digest struct {
	Text    string
	Tooltip string
	Class   string
}

// Render builds the digest for a snapshot. It never fails; missing data
// shows up as default values in the output.
func Render(snap forecast.Snapshot, opts Options) Digest {
	current := snap.Current()
	return Digest{
		Text:    Indicator(current, opts.Indicator, opts.Unit),
		Tooltip: Tooltip(snap, current, opts),
		Class:   forecast.Class(current.Symbol),
	}
}

// Indicator formats the bar text, e.g. "⛅ 5°C 💨3m/s".
func Indicator(cw forecast.CurrentWeather, style IndicatorStyle, unit forecast.Unit) string {
	icon := forecast.Icon(cw.Symbol)
	temp := unit.Format(cw.Temperature)

	switch style {
	case Detailed:
		return fmt.Sprintf("%s %s 💧%.1fmm 💨%.0fm/s", icon, temp, cw.Precipitation, cw.WindSpeed)
	case Full:
		return fmt.Sprintf("%s %s 💧%.1fmm 💨%.0fm/s 💦%.0f%%", icon, temp, cw.Precipitation, cw.WindSpeed, cw.Humidity)
	default:
		return fmt.Sprintf("%s %s 💨%.0fm/s", icon, temp, cw.WindSpeed)
	}
}

type horizon struct {
	title   string
	sample  func(forecast.Snapshot) []forecast.Slot
	label   func(forecast.Slot) string
	columns int
	width   int
}

func hourLabel(s forecast.Slot) string { return s.Label + ":00" }
func dateLabel(s forecast.Slot) string { return s.Label }

var horizons = map[TooltipStyle]horizon{
	CurrentDay: {
		title:   "Next hours:",
		sample:  func(s forecast.Snapshot) []forecast.Slot { return forecast.Hourly(s, 12) },
		label:   hourLabel,
		columns: 3,
		width:   15,
	},
	ThreeDays: {
		title:   "Next 3 days:",
		sample:  func(s forecast.Snapshot) []forecast.Slot { return forecast.Sampled(s, 24, 3) },
		label:   dateLabel,
		columns: 2,
		width:   18,
	},
	Week: {
		title:   "Next week:",
		sample:  func(s forecast.Snapshot) []forecast.Slot { return forecast.Sampled(s, 28, 6) },
		label:   dateLabel,
		columns: 2,
		width:   18,
	},
}

// Tooltip formats the current conditions followed by the forecast block
// for the selected horizon.
func Tooltip(snap forecast.Snapshot, cw forecast.CurrentWeather, opts Options) string {
	lang := opts.Lang
	if lang == "" {
		lang = i18n.English
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", lang.Describe(cw.Symbol))
	fmt.Fprintf(&b, "%s: %s\n", lang.Temperature(), opts.Unit.Format(cw.Temperature))
	fmt.Fprintf(&b, "%s: %.1f m/s\n", lang.Wind(), cw.WindSpeed)
	fmt.Fprintf(&b, "%s: %.0f%%\n", lang.Humidity(), cw.Humidity)
	fmt.Fprintf(&b, "%s: %.1f mm\n", lang.Precipitation(), cw.Precipitation)

	h, ok := horizons[opts.Tooltip]
	if !ok {
		h = horizons[CurrentDay]
	}
	fmt.Fprintf(&b, "\n<b>%s</b>\n", h.title)

	slots := h.sample(snap)
	entries := make([]string, 0, len(slots))
	for _, s := range slots {
		entries = append(entries, fmt.Sprintf("%s %s %d°", h.label(s), forecast.Icon(s.Symbol), opts.Unit.Display(s.Temperature)))
	}
	b.WriteString(Columns(entries, h.columns, h.width))
	return b.String()
}
