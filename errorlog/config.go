package errorlog

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

const (
	envLogPath   = "CDSMODEL_LOG_PATH"
	envRingLines = "CDSMODEL_LOG_RING_LINES"
	envRingWidth = "CDSMODEL_LOG_RING_WIDTH"

	defaultRingLines = 512
	defaultRingWidth = 256
)

var loadEnvOnce sync.Once

// Config is the set of externally configurable knobs for the default
// process-wide Logger, all resolved from environment variables — shell
// environment wins over a local .env file, following
// ericpeers-portfolio/config/config.go's precedence rule.
type Config struct {
	LogPath   string
	RingLines int
	RingWidth int
}

// LoadConfig loads a .env file (if present, without overriding existing
// shell variables) and resolves Config from the environment.
func LoadConfig() Config {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg := Config{
		LogPath:   os.Getenv(envLogPath),
		RingLines: defaultRingLines,
		RingWidth: defaultRingWidth,
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath()
	}
	if v := os.Getenv(envRingLines); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RingLines = n
		}
	}
	if v := os.Getenv(envRingWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RingWidth = n
		}
	}
	return cfg
}

// defaultLogPath returns an OS-specific fallback log path when
// CDSMODEL_LOG_PATH is unset.
func defaultLogPath() string {
	dir := os.TempDir()
	name := "cdsmodel.log"
	if runtime.GOOS == "windows" {
		return dir + "\\" + name
	}
	return dir + "/" + name
}
