package config

import "sort"

// Presets are partial configurations applied over the defaults. Only the
// fields a preset cares about are set.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {
		c.Colors = ColorConfig{Cold: DefaultCold, Hot: DefaultHot}
	},
	"thermal": func(c *Config) {
		c.Colors = ColorConfig{Cold: "#2c7bb6", Hot: "#d7191c", Clamp: true}
		c.Playback.Theme = "sunset"
	},
	"slow": func(c *Config) {
		c.Playback.Speed = 0.25
	},
	"fast": func(c *Config) {
		c.Playback.Speed = 4
		c.Playback.FPS = 30
	},
	"lenient": func(c *Config) {
		c.Strict = false
	},
	"indexed": func(c *Config) {
		c.Indexed = true
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset to cfg in place.
func ApplyPreset(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
