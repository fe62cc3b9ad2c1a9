package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/logging"
)

const (
	FetcherBrowser = "browser"
	FetcherHTTP    = "http"
)

// Config stores runtime configuration for the commands.
type Config struct {
	BaseURL          string `validate:"required,url"`
	SeasonLabel      string `validate:"required"`
	TeamURL          string `validate:"required,url"`
	PlayerDelayMS    int    `validate:"gte=0,lte=5000"`
	FetchTimeoutMS   int    `validate:"gt=0"`
	Fetcher          string `validate:"oneof=browser http"`
	Headless         bool
	AppearancesTable string
	ArtifactBucket   string
	ArtifactPrefix   string
	LogLevel         logging.Level
}

func Load() (Config, error) {
	delay, err := getEnvAsInt("PLAYER_DELAY_MS", 200)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getEnvAsInt("FETCH_TIMEOUT_MS", 30000)
	if err != nil {
		return Config{}, err
	}
	headless, err := strconv.ParseBool(getEnv("HEADLESS", "true"))
	if err != nil {
		return Config{}, errors.Wrap(err, "parse HEADLESS")
	}

	level := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if getEnv("DEBUG", "") == "1" {
		level = logging.LevelDebug
	}

	cfg := Config{
		BaseURL:          strings.TrimRight(getEnv("BASE_URL", innebandy.DefaultBaseURL), "/"),
		SeasonLabel:      getEnv("SEASON_LABEL", innebandy.DefaultSeasonLabel),
		TeamURL:          getEnv("TEAM_URL", innebandy.DefaultRosterURL),
		PlayerDelayMS:    delay,
		FetchTimeoutMS:   timeout,
		Fetcher:          strings.ToLower(getEnv("FETCHER", FetcherBrowser)),
		Headless:         headless,
		AppearancesTable: getEnv("APPEARANCES_TABLE", ""),
		ArtifactBucket:   getEnv("ARTIFACT_BUCKET", ""),
		ArtifactPrefix:   strings.Trim(getEnv("ARTIFACT_PREFIX", ""), "/"),
		LogLevel:         level,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func (c Config) PlayerDelay() time.Duration {
	return time.Duration(c.PlayerDelayMS) * time.Millisecond
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// Site builds the immutable site description used by the extractor.
func (c Config) Site() innebandy.Site {
	return innebandy.NewSite(c.BaseURL, c.SeasonLabel, c.PlayerDelay())
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}
