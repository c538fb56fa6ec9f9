package catalog

import (
	"fmt"

	"github.com/i474232898/weather-sample-server/internal/weather"
)

// VariantSet holds the sample file for each weather condition of one
// (music set, hour) slot. Fields without a configured sample are empty.
type VariantSet struct {
	None         string `json:"none"`
	Rain         string `json:"rain"`
	Drizzle      string `json:"drizzle"`
	Thunderstorm string `json:"thunderstorm"`
	Snow         string `json:"snow"`
}

// Uniform returns a VariantSet that plays name regardless of weather.
func Uniform(name string) VariantSet {
	return VariantSet{
		None:         name,
		Rain:         name,
		Drizzle:      name,
		Thunderstorm: name,
		Snow:         name,
	}
}

// ParseVariantSet normalizes a decoded config value into a VariantSet.
// The value is either a string, used for every condition, or a mapping
// of condition names to strings. Unrecognized condition keys are ignored.
func ParseVariantSet(path string, v any) (VariantSet, error) {
	switch val := v.(type) {
	case string:
		return Uniform(val), nil
	case map[string]any:
		return parseVariantMap(path, val)
	case map[any]any:
		m, err := stringKeys(path, val)
		if err != nil {
			return VariantSet{}, err
		}
		return parseVariantMap(path, m)
	default:
		return VariantSet{}, &ConfigFormatError{
			Path:   path,
			Reason: fmt.Sprintf("expected string or mapping, got %s", describe(v)),
		}
	}
}

func parseVariantMap(path string, m map[string]any) (VariantSet, error) {
	var vs VariantSet
	for key, raw := range m {
		var field *string
		switch key {
		case "none":
			field = &vs.None
		case "rain":
			field = &vs.Rain
		case "drizzle":
			field = &vs.Drizzle
		case "thunderstorm":
			field = &vs.Thunderstorm
		case "snow":
			field = &vs.Snow
		default:
			continue
		}

		s, ok := raw.(string)
		if !ok {
			return VariantSet{}, &ConfigFormatError{
				Path:   join(path, key),
				Reason: fmt.Sprintf("expected string, got %s", describe(raw)),
			}
		}
		*field = s
	}
	return vs, nil
}

// Sample picks the file for the reading: snow wins over rain, and
// anything else plays the dry variant. Drizzle and Thunderstorm are
// never selected here.
func (v VariantSet) Sample(r weather.Reading) string {
	switch {
	case r.Snow > 0:
		return v.Snow
	case r.Rain > 0:
		return v.Rain
	default:
		return v.None
	}
}
