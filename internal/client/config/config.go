package config

import "time"

// Config holds runtime settings for the Daybook CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the journal backend (HTTP/JSON).
//   - DatabasePath: path of the local sqlite database (settings + secrets).
//   - AutosaveQuietPeriod: idle window before a debounced save fires.
//   - Locale: BCP-47 tag used for greeting generation.
//
// Units: AutosaveQuietPeriod is a time.Duration (e.g., 5*time.Second).
type Config struct {
	ServerEndpointAddr  string
	DatabasePath        string
	AutosaveQuietPeriod time.Duration
	Locale              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8642"
	c.DatabasePath = "daybook.db"
	c.AutosaveQuietPeriod = 5 * time.Second
	c.Locale = "en"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
