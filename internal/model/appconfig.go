package model

// AppConfig holds application-wide preferences and defaults.
type AppConfig struct {
	// Catalog ids selected when no explicit selection is given
	DefaultContainers []string `json:"default_containers"`
	OutputDir         string   `json:"output_dir"`

	// Result cache; empty RedisAddr disables caching
	RedisAddr       string `json:"redis_addr"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes"`

	RecentProjects []string `json:"recent_projects"`
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
// The default selection is a 20ft general purpose plus a 40ft high cube.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultContainers: []string{"20gp", "40hq"},
		OutputDir:         ".",
		CacheTTLMinutes:   24 * 60,
		RecentProjects:    []string{},
		LogLevel:          "info",
	}
}

// AddRecentProject moves path to the front of RecentProjects, keeping at
// most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
