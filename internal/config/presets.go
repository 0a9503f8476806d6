package config

// Scenes are named whole-tube setups layered over DefaultConfig.
var Scenes = map[string]func(*Config){
	"classroom": func(c *Config) {
		c.Drive.Accel = 2000
		c.Trace.Duration = 4
		_ = c.ApplyPreset("circle")
	},
	"high-voltage": func(c *Config) {
		c.Drive.Accel = 5000
		c.Drive.Vertical = 600
		c.Drive.Horizontal = 600
	},
	"low-voltage": func(c *Config) {
		c.Drive.Accel = 500
		c.Drive.Vertical = 100
		c.Drive.Horizontal = -100
	},
	"short-tube": func(c *Config) {
		c.Tube.Gap = 0
		c.Tube.ScreenDistance = 0.10
	},
	"pretzel": func(c *Config) {
		c.Trace.Duration = 2
		c.Trace.SampleRate = 2000
		_ = c.ApplyPreset("pretzel")
	},
}

// GetScene returns DefaultConfig with the named scene applied, or nil.
func GetScene(name string) *Config {
	apply, ok := Scenes[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListScenes() []string {
	names := make([]string, 0, len(Scenes))
	for name := range Scenes {
		names = append(names, name)
	}
	return names
}
