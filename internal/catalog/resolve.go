package catalog

import "github.com/i474232898/weather-sample-server/internal/weather"

// Effect identifies which ambient weather effect should play.
type Effect string

const (
	EffectNone         Effect = "none"
	EffectDrizzle      Effect = "drizzle"
	EffectRain         Effect = "rain"
	EffectThunderstorm Effect = "thunderstorm"
)

// Resolve returns the sample file for set and hour under the given weather.
func (c *Catalog) Resolve(set, hour string, r weather.Reading) (string, error) {
	vs, err := c.Variants(set, hour)
	if err != nil {
		return "", err
	}
	return vs.Sample(r), nil
}

// EffectFor picks the ambient effect for a reading. Any snow plays the
// thunderstorm effect; heavy rain plays rain and light rain plays drizzle.
func EffectFor(r weather.Reading) Effect {
	switch {
	case r.Snow > 0:
		return EffectThunderstorm
	case r.Rain > 1:
		return EffectRain
	case r.Rain > 0:
		return EffectDrizzle
	default:
		return EffectNone
	}
}

// Effect returns the effect for the reading and its configured file.
// The file is empty for EffectNone.
func (c *Catalog) Effect(r weather.Reading) (Effect, string) {
	e := EffectFor(r)
	switch e {
	case EffectThunderstorm:
		return e, c.effects.Thunderstorm
	case EffectRain:
		return e, c.effects.Rain
	case EffectDrizzle:
		return e, c.effects.Drizzle
	default:
		return e, ""
	}
}
