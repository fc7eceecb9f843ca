package config

import (
	"sync"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config is read once per instance from the environment set in app.yaml.
type Config struct {
	TgToken     string `env:"TG_TOKEN,required,notEmpty"`
	InitAdminID int64  `env:"INIT_ADMIN_ID,required"`

	// Defaults to the app's default bucket.
	GCSBucket string `env:"GCS_BUCKET"`

	// Prefix of public links to archived files, shown in the web UI.
	WebUIFileURLPrefix string `env:"WEBUI_FILE_URL_PREFIX"`

	// Used when Protoconf sets no parse_mode.
	DefaultParseMode string `env:"DEFAULT_PARSE_MODE" envDefault:"combined"`
}

var (
	once   sync.Once
	loaded *Config
)

// Load parses c from the environment, after applying any local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the instance config. A missing required variable is fatal.
func Get() *Config {
	once.Do(func() {
		c, err := Load()
		if err != nil {
			panic("config.Load: " + err.Error())
		}
		loaded = c
	})
	return loaded
}
