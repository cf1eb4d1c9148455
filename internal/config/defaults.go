package config

// DefaultConfig returns the built-in defaults, matching a local
// development server.
func DefaultConfig() *Config {
	return &Config{
		APIURL:                "http://localhost:8000",
		RequestTimeoutSeconds: 10,
		PollIntervalSeconds:   30,
		ExportDir:             ".",
		SortBy:                "name",
		SortOrder:             "asc",
	}
}
