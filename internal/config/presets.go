package config

// Presets holds reference outbreak scenarios keyed by variant then name.
var Presets = map[string]map[string]*Config{
	"si": {
		"textbook": {
			Variant: "si", Population: 1000, Horizon: 50, Step: 1,
			Params:  map[string]float64{"beta": 0.5},
			Initial: map[string]float64{"I": 1},
		},
	},
	"sis": {
		"endemic": {
			Variant: "sis", Population: 1000, Horizon: 200, Step: 1,
			Params:  map[string]float64{"beta": 0.4, "gamma": 0.1},
			Initial: map[string]float64{"I": 10},
		},
	},
	"sir": {
		"severe": {
			// R0 = 15, infectious period 8 days
			Variant: "sir", Population: 100000, Horizon: 100, Step: 1,
			Params:  map[string]float64{"beta": 15.0 / 8.0, "gamma": 1.0 / 8.0},
			Initial: map[string]float64{"I": 10},
		},
		"mild": {
			// R0 = 1.5, slow burn
			Variant: "sir", Population: 100000, Horizon: 400, Step: 1,
			Params:  map[string]float64{"beta": 0.15, "gamma": 0.1},
			Initial: map[string]float64{"I": 10},
		},
	},
	"seir": {
		"baseline": {
			// R0 = 2.5, 5-day latency, 7-day infectious period
			Variant: "seir", Population: 100000, Horizon: 200, Step: 1,
			Params:  map[string]float64{"beta": 2.5 / 7.0, "sigma": 0.2, "gamma": 1.0 / 7.0},
			Initial: map[string]float64{"E": 10},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when the variant or
// preset is unknown. Callers own the copy; the table itself is never handed
// out.
func GetPreset(variant, preset string) *Config {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	cfg, ok := variantPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	return names
}
