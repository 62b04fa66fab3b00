package config

// Overrides carries command line values that win over the config file.
// Zero values mean "not set".
type Overrides struct {
	Debug    bool
	LogFile  string
	Frontend string
	Width    int
	Height   int
	NoWatch  bool
}

// apply applies the overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Frontend != "" {
		cfg.Viewer.Frontend = o.Frontend
	}
	if o.Width > 0 {
		cfg.Window.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Window.Height = o.Height
	}
	if o.NoWatch {
		cfg.Viewer.Watch = false
	}
}
