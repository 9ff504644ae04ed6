package forecast

import "strings"

// DefaultSymbol is used when an entry carries no symbol code.
const DefaultSymbol = "cloudy"

// FallbackIcon is shown for symbol codes missing from the icon table.
const FallbackIcon = "🌡️"

// DefaultClass is the class for symbol codes matching no category.
const DefaultClass = "weather"

var symbolSuffixes = []string{"_day", "_night", "_polartwilight"}

// BaseSymbol strips at most one variant suffix (_day, _night, _polartwilight).
func BaseSymbol(code string) string {
	for _, suffix := range symbolSuffixes {
		if strings.HasSuffix(code, suffix) {
			return strings.TrimSuffix(code, suffix)
		}
	}
	return code
}

// icons maps MET Norway base symbol codes to a glyph. Lookups are exact.
// The "lights..." spellings are MET's own legacy codes.
var icons = map[string]string{
	"clearsky":     "☀️",
	"fair":         "🌤️",
	"partlycloudy": "⛅",
	"cloudy":       "☁️",
	"fog":          "🌫️",

	"lightrain":        "🌧️",
	"rain":             "🌧️",
	"heavyrain":        "🌧️",
	"lightrainshowers": "🌦️",
	"rainshowers":      "🌦️",
	"heavyrainshowers": "🌦️",

	"lightrainandthunder":        "⛈️",
	"rainandthunder":             "⛈️",
	"heavyrainandthunder":        "⛈️",
	"lightrainshowersandthunder": "⛈️",
	"rainshowersandthunder":      "⛈️",
	"heavyrainshowersandthunder": "⛈️",

	"lightsleet":        "🌨️",
	"sleet":             "🌨️",
	"heavysleet":        "🌨️",
	"lightsleetshowers": "🌨️",
	"sleetshowers":      "🌨️",
	"heavysleetshowers": "🌨️",

	"lightsleetandthunder":         "⛈️",
	"sleetandthunder":              "⛈️",
	"heavysleetandthunder":         "⛈️",
	"lightssleetshowersandthunder": "⛈️",
	"sleetshowersandthunder":       "⛈️",
	"heavysleetshowersandthunder":  "⛈️",

	"lightsnow":        "❄️",
	"snow":             "❄️",
	"heavysnow":        "❄️",
	"lightsnowshowers": "🌨️",
	"snowshowers":      "🌨️",
	"heavysnowshowers": "🌨️",

	"lightsnowandthunder":         "⛈️",
	"snowandthunder":              "⛈️",
	"heavysnowandthunder":         "⛈️",
	"lightssnowshowersandthunder": "⛈️",
	"snowshowersandthunder":       "⛈️",
	"heavysnowshowersandthunder":  "⛈️",
}

// Icon returns the glyph for a symbol code, or FallbackIcon.
func Icon(code string) string {
	if icon, ok := icons[BaseSymbol(code)]; ok {
		return icon
	}
	return FallbackIcon
}

type classRule struct {
	keywords []string
	class    string
}

// classRules are evaluated in order; the first keyword contained in the code wins.
var classRules = []classRule{
	{[]string{"clearsky"}, "clear"},
	{[]string{"fair"}, "fair"},
	{[]string{"cloudy"}, "cloudy"},
	{[]string{"rain", "sleet"}, "rain"},
	{[]string{"snow"}, "snow"},
	{[]string{"thunder"}, "thunder"},
	{[]string{"fog"}, "fog"},
}

// Class returns the CSS class for a symbol code, or DefaultClass.
func Class(code string) string {
	base := BaseSymbol(code)
	for _, rule := range classRules {
		for _, kw := range rule.keywords {
			if strings.Contains(base, kw) {
				return rule.class
			}
		}
	}
	return DefaultClass
}
