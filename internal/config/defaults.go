// Package config provides configuration loading and defaults for scorecard.
package config

// DefaultConfigDir is the default location for scorecard configuration.
const DefaultConfigDir = "~/.config/scorecard"

// DefaultDBName is the filename for the SQLite history database.
const DefaultDBName = "scorecard.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultConcurrency bounds how many analyzers run at once.
const DefaultConcurrency = 4

// DefaultWeights holds the default category weights. They sum to 100.
var DefaultWeights = Weights{
	Structure:    20,
	Quality:      20,
	Performance:  15,
	Testing:      15,
	Security:     15,
	DevExp:       10,
	Completeness: 5,
}

// DefaultGateThresholds holds the default overall gate and the scale factors
// used to derive per-category thresholds from weights.
var DefaultGateThresholds = GateThresholds{
	OverallMin:  70,
	OverallWarn: 80,
	MinScale:    0.75,
	WarnScale:   0.90,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
