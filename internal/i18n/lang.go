// Package i18n holds the display strings for each supported locale.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported locale.
type Lang string

const (
	English      Lang = "en"
	Bokmal       Lang = "nb"
	Nynorsk      Lang = "nn"
	NorthernSami Lang = "sme"
	French       Lang = "fr"
	German       Lang = "de"
	Spanish      Lang = "es"
)

// Supported lists the locales in the order the matcher prefers them.
var Supported = []Lang{English, Bokmal, Nynorsk, NorthernSami, French, German, Spanish}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("nb"),
	language.MustParse("nn"),
	language.MustParse("se"),
	language.French,
	language.German,
	language.Spanish,
})

// ParseLang accepts one of the supported codes or any BCP 47 tag that
// matches one of them with at least high confidence, e.g. "nb-NO" or "de-AT".
func ParseLang(s string) (Lang, error) {
	s = strings.TrimSpace(s)
	for _, l := range Supported {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return Supported[idx], nil
}

// text holds one phrase in every supported locale.
type text struct {
	en, nb, nn, sme, fr, de, es string
}

func (t text) in(l Lang) string {
	switch l {
	case Bokmal:
		return t.nb
	case Nynorsk:
		return t.nn
	case NorthernSami:
		return t.sme
	case French:
		return t.fr
	case German:
		return t.de
	case Spanish:
		return t.es
	default:
		return t.en
	}
}

var (
	temperatureLabel = text{"Temperature", "Temperatur", "Temperatur", "Temperatuvra", "Température", "Temperatur", "Temperatura"}
	windLabel        = text{"Wind", "Vind", "Vind", "Biegga", "Vent", "Wind", "Viento"}
	humidityLabel    = text{"Humidity", "Luftfuktighet", "Luftfuktigheit", "Vuoigatvuohta", "Humidité", "Luftfeuchtigkeit", "Humedad"}
	precipLabel      = text{"Precipitation", "Nedbør", "Nedbør", "Šaddadeapmi", "Précipitations", "Niederschlag", "Precipitación"}
	unknownPhrase    = text{"Unknown", "Ukjent", "Ukjend", "Amas", "Inconnu", "Unbekannt", "Desconocido"}
)

func (l Lang) Temperature() string   { return temperatureLabel.in(l) }
func (l Lang) Wind() string          { return windLabel.in(l) }
func (l Lang) Humidity() string      { return humidityLabel.in(l) }
func (l Lang) Precipitation() string { return precipLabel.in(l) }
