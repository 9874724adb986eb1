package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when neither a flag nor an environment variable is set
const (
	DefaultPort           = 3000
	DefaultAPIBase        = "http://localhost:8000"
	DefaultRequestTimeout = 5 * time.Second
	DefaultVoterID        = "web-demo-user"
	DefaultDatabaseURL    = "file:dashboard.db"
	DefaultDatabaseType   = "sqlite"
)

type Config struct {
	Port           int
	APIBase        string
	RequestTimeout time.Duration
	VoterID        string
	DatabaseURL    string
	DatabaseType   string
}

// ParseFlags reads CLI flags, falling back to environment variables and
// then to defaults. CLI always wins over env.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("clean-karachi", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.APIBase, "api", "", "Complaints backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Per-request backend timeout")

	// Identity sent with votes
	fs.StringVar(&cfg.VoterID, "voter", "", "Default voter ID")

	// Activity journal
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.APIBase == "" {
		cfg.APIBase = os.Getenv("API_BASE")
		if cfg.APIBase == "" {
			cfg.APIBase = DefaultAPIBase
		}
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if !strings.HasPrefix(cfg.APIBase, "http://") && !strings.HasPrefix(cfg.APIBase, "https://") {
		return Config{}, fmt.Errorf("API base %q must be an http(s) URL", cfg.APIBase)
	}

	if cfg.RequestTimeout == 0 {
		if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			cfg.RequestTimeout = d
		} else {
			cfg.RequestTimeout = DefaultRequestTimeout
		}
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, errors.New("request timeout must be positive")
	}

	if cfg.VoterID == "" {
		cfg.VoterID = os.Getenv("VOTER_ID")
		if cfg.VoterID == "" {
			cfg.VoterID = DefaultVoterID
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultDatabaseURL
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	return cfg, nil
}
