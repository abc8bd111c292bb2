package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to every new optimization run
	DefaultKerfWidth  float64    `json:"default_kerf_width"`
	DefaultFitMode    FitMode    `json:"default_fit_mode"`
	DefaultPhilosophy Philosophy `json:"default_philosophy"`
	DefaultAlgorithm  Algorithm  `json:"default_algorithm"`
	CustomWeights     Weights    `json:"custom_weights"`
	MaxAttempts       int        `json:"max_attempts"`
	DownsizeSheets    bool       `json:"downsize_sheets"`

	// Application preferences
	DataDir  string `json:"data_dir"`  // Saved calculations and warehouse; empty = ~/.panelcut
	LogLevel string `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultKerfWidth:  defaults.KerfWidth,
		DefaultFitMode:    defaults.FitMode,
		DefaultPhilosophy: defaults.Philosophy,
		DefaultAlgorithm:  defaults.Algorithm,
		CustomWeights:     defaults.CustomWeights,
		MaxAttempts:       defaults.MaxAttempts,
		DownsizeSheets:    defaults.DownsizeSheets,
		LogLevel:          "warn",
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.KerfWidth = c.DefaultKerfWidth
	if c.DefaultFitMode != "" {
		s.FitMode = c.DefaultFitMode
	}
	if c.DefaultPhilosophy != "" {
		s.Philosophy = c.DefaultPhilosophy
	}
	if c.DefaultAlgorithm != "" {
		s.Algorithm = c.DefaultAlgorithm
	}
	s.CustomWeights = c.CustomWeights
	s.MaxAttempts = c.MaxAttempts
	s.DownsizeSheets = c.DownsizeSheets
}
