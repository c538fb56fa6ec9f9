// Package catalog holds the sample catalog: which sound file plays for a
// music set, an hour label and the current weather.
//
// A Catalog is built once from a configuration document and never mutated,
// so it can be shared by concurrent request handlers without locking.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the document format from a file extension.
// Anything other than .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// WeatherEffects names the ambient effect sounds played on top of samples.
type WeatherEffects struct {
	Rain         string `json:"rain"`
	Drizzle      string `json:"drizzle"`
	Thunderstorm string `json:"thunderstorm"`
}

// Catalog is the parsed, read-only configuration snapshot.
type Catalog struct {
	bellSound string
	effects   WeatherEffects
	sets      []string
	music     map[string]map[string]VariantSet
}

// Load reads and parses the catalog document at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse builds a Catalog from a document. On error no catalog is returned.
func Parse(data []byte, format Format) (*Catalog, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	root, err := asMap("", doc)
	if err != nil {
		return nil, err
	}

	c := &Catalog{}

	if c.bellSound, err = requireString(root, "", "bell_sound"); err != nil {
		return nil, err
	}

	effectsRaw, err := requireField(root, "", "weather_effects")
	if err != nil {
		return nil, err
	}
	effects, err := asMap("weather_effects", effectsRaw)
	if err != nil {
		return nil, err
	}
	if c.effects.Rain, err = requireString(effects, "weather_effects", "rain"); err != nil {
		return nil, err
	}
	if c.effects.Drizzle, err = requireString(effects, "weather_effects", "drizzle"); err != nil {
		return nil, err
	}
	if c.effects.Thunderstorm, err = requireString(effects, "weather_effects", "thunderstorm"); err != nil {
		return nil, err
	}

	setsRaw, err := requireField(root, "", "sets")
	if err != nil {
		return nil, err
	}
	if c.sets, err = parseSets(setsRaw); err != nil {
		return nil, err
	}

	musicRaw, err := requireField(root, "", "music")
	if err != nil {
		return nil, err
	}
	if c.music, err = parseMusic(musicRaw); err != nil {
		return nil, err
	}

	return c, nil
}

func decode(data []byte, format Format) (any, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ConfigFormatError{Reason: "malformed yaml", Err: err}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, &ConfigFormatError{Reason: "malformed json", Err: err}
		}
		if dec.More() {
			return nil, &ConfigFormatError{Reason: "trailing data after json document"}
		}
	}
	return doc, nil
}

func parseSets(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, &ConfigFormatError{Path: "sets", Reason: fmt.Sprintf("expected list, got %s", describe(v))}
	}
	sets := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &ConfigFormatError{
				Path:   fmt.Sprintf("sets[%d]", i),
				Reason: fmt.Sprintf("expected string, got %s", describe(item)),
			}
		}
		sets = append(sets, s)
	}
	return sets, nil
}

func parseMusic(v any) (map[string]map[string]VariantSet, error) {
	sets, err := asMap("music", v)
	if err != nil {
		return nil, err
	}

	music := make(map[string]map[string]VariantSet, len(sets))
	for name, hoursRaw := range sets {
		setPath := join("music", name)
		hours, err := asMap(setPath, hoursRaw)
		if err != nil {
			return nil, err
		}

		slots := make(map[string]VariantSet, len(hours))
		for hour, raw := range hours {
			vs, err := ParseVariantSet(join(setPath, hour), raw)
			if err != nil {
				return nil, err
			}
			slots[hour] = vs
		}
		music[name] = slots
	}
	return music, nil
}

func requireField(m map[string]any, path, key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, &ConfigMissingFieldError{Field: join(path, key)}
	}
	return v, nil
}

func requireString(m map[string]any, path, key string) (string, error) {
	v, err := requireField(m, path, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &ConfigFormatError{
			Path:   join(path, key),
			Reason: fmt.Sprintf("expected string, got %s", describe(v)),
		}
	}
	return s, nil
}

// asMap accepts both decoder representations of a mapping: encoding/json
// always yields map[string]any, yaml.v3 yields map[any]any when a key is
// not a string, e.g. numeric hour labels.
func asMap(path string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		return stringKeys(path, m)
	default:
		return nil, &ConfigFormatError{Path: path, Reason: fmt.Sprintf("expected mapping, got %s", describe(v))}
	}
}

// stringKeys renders scalar keys the way they would be spelled in JSON,
// so `13:` in YAML and "13" in JSON name the same hour.
func stringKeys(path string, m map[any]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		var ks string
		switch key := k.(type) {
		case string:
			ks = key
		case int, int64, uint64, float64, bool:
			ks = fmt.Sprint(key)
		default:
			return nil, &ConfigFormatError{Path: path, Reason: fmt.Sprintf("unsupported key %v", k)}
		}
		if _, dup := out[ks]; dup {
			return nil, &ConfigFormatError{Path: join(path, ks), Reason: "duplicate key"}
		}
		out[ks] = v
	}
	return out, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, uint64:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// BellSound is the file played on the hour.
func (c *Catalog) BellSound() string {
	return c.bellSound
}

// WeatherEffects returns the configured effect sounds.
func (c *Catalog) WeatherEffects() WeatherEffects {
	return c.effects
}

// Sets returns the music set names in document order.
func (c *Catalog) Sets() []string {
	out := make([]string, len(c.sets))
	copy(out, c.sets)
	return out
}

// Variants returns the VariantSet configured for a set and hour label.
func (c *Catalog) Variants(set, hour string) (VariantSet, error) {
	hours, ok := c.music[set]
	if !ok {
		return VariantSet{}, &UnknownSetError{Set: set}
	}
	vs, ok := hours[hour]
	if !ok {
		return VariantSet{}, &UnknownHourError{Set: set, Hour: hour}
	}
	return vs, nil
}
