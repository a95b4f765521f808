package datasetdbsdk

import "strings"

// Config defines the SDK behavior for direct core access.
type Config struct {
	// DBPath is the SQLite database holding the dataset tables.
	DBPath string
	// Fast relaxes SQLite durability (WAL, NORMAL sync) for faster writes.
	Fast bool
}

// DefaultConfig returns defaults suitable for embedding.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath: dbPath,
		Fast:   false,
	}
}

func normalizeConfig(cfg Config) (Config, error) {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, ErrDBPathRequired
	}
	return cfg, nil
}
