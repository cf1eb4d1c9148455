package config

// Config holds tropedeck's client settings, loaded from .tropedeck.yml
// with TROPEDECK_* environment overrides.
type Config struct {
	// APIURL is the base URL of the trope database API server.
	APIURL string `koanf:"api_url" yaml:"api_url"`

	// RequestTimeoutSeconds bounds every API request. Health checks
	// use the same bound; a timed-out health check reports
	// "disconnected" rather than an error.
	RequestTimeoutSeconds int `koanf:"request_timeout_seconds" yaml:"request_timeout_seconds"`

	// PollIntervalSeconds is the cadence of the background health
	// poll in the browse UI. Zero disables polling.
	PollIntervalSeconds int `koanf:"poll_interval_seconds" yaml:"poll_interval_seconds"`

	// ExportDir is where client-side CSV exports are written.
	ExportDir string `koanf:"export_dir" yaml:"export_dir"`

	// SortBy and SortOrder are the default trope list ordering sent
	// to the server.
	SortBy    string `koanf:"sort_by" yaml:"sort_by"`
	SortOrder string `koanf:"sort_order" yaml:"sort_order"`
}
