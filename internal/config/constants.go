package config

// Application constants shared by the gapcli tools
const (
	AppName    = "gapcli"
	AppVersion = "0.38.0"

	ConfigFileName = "config.yaml"

	// Directory layout (relative to the executable)
	DefaultDataDir      = "data"
	DefaultDownloadsDir = "data/downloads"
	DefaultReportsDir   = "data/reports"
	DefaultLogsDir      = "logs"
)
