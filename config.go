package hub

// Config holds configuration for a Hub.
type Config struct {
	// Name identifies the hub in diagnostics and telemetry.
	Name string

	// MaxListeners is the global listener ceiling. Zero means unlimited.
	MaxListeners int

	// WarnThreshold is how many free registration slots may remain before
	// a ceiling-proximity warning is logged on each further registration.
	WarnThreshold int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Name:          "hub",
		MaxListeners:  0,
		WarnThreshold: 5,
	}
}
