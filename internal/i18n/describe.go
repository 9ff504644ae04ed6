package i18n

import (
	"strings"

	"github.com/egset/waybar-weather/internal/forecast"
)

type phrase struct {
	prefix string
	text   text
}

// phrases are matched in order against the suffix-stripped symbol code.
// A longer prefix always precedes any prefix it extends, so
// "heavyrainshowers" wins over "heavyrain" and "lightsnowshowers" over
// "lightsnow". Thunder variants fall through to their precipitation phrase.
var phrases = []phrase{
	{"clearsky", text{"Clear sky", "Klar himmel", "Klar himmel", "Čeaskat allahas", "Ciel dégagé", "Klarer Himmel", "Cielo despejado"}},
	{"fair", text{"Fair", "Lettskyet", "Lettskya", "Geaidnolaš", "Beau", "Heiter", "Despejado"}},
	{"partlycloudy", text{"Partly cloudy", "Delvis skyet", "Delvis skya", "Muhtun ládje pilvehagas", "Partiellement nuageux", "Teilweise bewölkt", "Parcialmente nublado"}},
	{"cloudy", text{"Cloudy", "Skyet", "Skya", "Pilvehagas", "Nuageux", "Bewölkt", "Nublado"}},

	{"lightrainshowers", text{"Light rain showers", "Lette regnbyger", "Lette regnbyer", "Geahpes arvebuolus", "Averses légères", "Leichte Regenschauer", "Chubascos ligeros"}},
	{"heavyrainshowers", text{"Heavy rain showers", "Kraftige regnbyger", "Kraftige regnbyer", "Garrasat arvebuolus", "Fortes averses", "Starke Regenschauer", "Chubascos fuertes"}},
	{"rainshowers", text{"Rain showers", "Regnbyger", "Regnbyer", "Arvebuolus", "Averses", "Regenschauer", "Chubascos"}},
	{"lightrain", text{"Light rain", "Lett regn", "Lett regn", "Geahpes arvi", "Pluie légère", "Leichter Regen", "Lluvia ligera"}},
	{"heavyrain", text{"Heavy rain", "Kraftig regn", "Kraftig regn", "Garrasat arvi", "Forte pluie", "Starker Regen", "Lluvia fuerte"}},
	{"rain", text{"Rain", "Regn", "Regn", "Arvi", "Pluie", "Regen", "Lluvia"}},

	{"lightsleetshowers", lightSleetShowers},
	{"lightssleetshowers", lightSleetShowers},
	{"heavysleetshowers", text{"Heavy sleet showers", "Kraftige sluddbyger", "Kraftige sluddbyer", "Garrasat čievžabuolus", "Fortes averses de neige fondue", "Starke Schneeregenschauer", "Chubascos fuertes de aguanieve"}},
	{"sleetshowers", text{"Sleet showers", "Sluddbyger", "Sluddbyer", "Čievžabuolus", "Averses de neige fondue", "Schneeregenschauer", "Chubascos de aguanieve"}},
	{"lightsleet", text{"Light sleet", "Lett sludd", "Lett sludd", "Geahpes čievža", "Neige fondue légère", "Leichter Schneeregen", "Aguanieve ligera"}},
	{"heavysleet", text{"Heavy sleet", "Kraftig sludd", "Kraftig sludd", "Garrasat čievža", "Forte neige fondue", "Starker Schneeregen", "Aguanieve fuerte"}},
	{"sleet", text{"Sleet", "Sludd", "Sludd", "Čievža", "Neige fondue", "Schneeregen", "Aguanieve"}},

	{"lightsnowshowers", lightSnowShowers},
	{"lightssnowshowers", lightSnowShowers},
	{"heavysnowshowers", text{"Heavy snow showers", "Kraftige snøbyger", "Kraftige snøbyer", "Garrasat muohttabuolus", "Fortes averses de neige", "Starke Schneeschauer", "Chubascos de nieve fuertes"}},
	{"snowshowers", text{"Snow showers", "Snøbyger", "Snøbyer", "Muohttabuolus", "Averses de neige", "Schneeschauer", "Chubascos de nieve"}},
	{"lightsnow", text{"Light snow", "Lett snø", "Lett snø", "Geahpes muohta", "Neige légère", "Leichter Schnee", "Nieve ligera"}},
	{"heavysnow", text{"Heavy snow", "Kraftig snø", "Kraftig snø", "Garrasat muohta", "Forte neige", "Starker Schnee", "Nieve fuerte"}},
	{"snow", text{"Snow", "Snø", "Snø", "Muohta", "Neige", "Schnee", "Nieve"}},

	{"fog", text{"Fog", "Tåke", "Tåke", "Heahka", "Brouillard", "Nebel", "Niebla"}},
}

var (
	lightSleetShowers = text{"Light sleet showers", "Lette sluddbyger", "Lette sluddbyer", "Geahpes čievžabuolus", "Averses légères de neige fondue", "Leichte Schneeregenschauer", "Chubascos ligeros de aguanieve"}
	lightSnowShowers  = text{"Light snow showers", "Lette snøbyger", "Lette snøbyer", "Geahpes muohttabuolus", "Averses de neige légères", "Leichte Schneeschauer", "Chubascos de nieve ligeros"}
)

// Describe returns the localized description of a symbol code, or the
// localized "Unknown".
func (l Lang) Describe(code string) string {
	base := forecast.BaseSymbol(code)
	for _, p := range phrases {
		if strings.HasPrefix(base, p.prefix) {
			return p.text.in(l)
		}
	}
	return unknownPhrase.in(l)
}
