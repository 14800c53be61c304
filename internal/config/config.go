package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultOutputFileName = "index.html"

	defaultCurrentKpURL = "https://services.swpc.noaa.gov/products/noaa-planetary-k-index.json"
	defaultForecastURL  = "https://services.swpc.noaa.gov/products/noaa-planetary-k-index-forecast.json"
	defaultUserAgent    = "Aurora Skywatch Archive (educational; non-commercial)"
)

type SiteConfig struct {
	Name     string `yaml:"name"`
	Subtitle string `yaml:"subtitle"`
	Location string `yaml:"location"`
}

type WeatherConfig struct {
	CurrentKpURL   string `yaml:"current_kp_url"`
	ForecastURL    string `yaml:"forecast_url"`
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	StaleAfter     string `yaml:"stale_after"` // duration string, e.g. "6h"
}

func (w *WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

func (w *WeatherConfig) StaleAfterDuration() time.Duration {
	d, err := time.ParseDuration(w.StaleAfter)
	if err != nil || d <= 0 {
		return 6 * time.Hour
	}

	return d
}

type ScannerConfig struct {
	AboutFileName    string `yaml:"about_filename"`
	TemplateFileName string `yaml:"template_filename"`
}

type Config struct {
	Output    string        `yaml:"output"`
	Verbose   bool          `yaml:"verbose"`
	NoWeather bool          `yaml:"no_weather"`
	Site      SiteConfig    `yaml:"site"`
	Weather   WeatherConfig `yaml:"weather"`
	Scanner   ScannerConfig `yaml:"scanner"`

	// TargetDir comes from the positional argument, never from the file.
	TargetDir string `yaml:"-"`
}

func (c *Config) SetDefaults() {
	c.Output = DefaultOutputFileName
	c.Site.Name = "Aurora Skywatch Archive"
	c.Site.Subtitle = "Northern Lights & Sky Timelapse Observatory"
	c.Site.Location = "Gilman, Wisconsin"
	c.Weather.CurrentKpURL = defaultCurrentKpURL
	c.Weather.ForecastURL = defaultForecastURL
	c.Weather.UserAgent = defaultUserAgent
	c.Weather.TimeoutSeconds = 30
	c.Weather.StaleAfter = "6h"
	c.Scanner.AboutFileName = "about.md"
	c.Scanner.TemplateFileName = "template.html"
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order. An empty cfgPath skips the file;
// a named file that does not exist is an error.
func Load(cfgPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.SetDefaults()

	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Output = getenvDefault("SKYWATCH_OUTPUT", c.Output)
	c.Site.Name = getenvDefault("SKYWATCH_SITE_NAME", c.Site.Name)
	c.Site.Subtitle = getenvDefault("SKYWATCH_SITE_SUBTITLE", c.Site.Subtitle)
	c.Site.Location = getenvDefault("SKYWATCH_SITE_LOCATION", c.Site.Location)
	c.Weather.CurrentKpURL = getenvDefault("SKYWATCH_CURRENT_KP_URL", c.Weather.CurrentKpURL)
	c.Weather.ForecastURL = getenvDefault("SKYWATCH_FORECAST_URL", c.Weather.ForecastURL)
	c.Weather.UserAgent = getenvDefault("SKYWATCH_USER_AGENT", c.Weather.UserAgent)
	c.Weather.TimeoutSeconds = getenvInt("SKYWATCH_TIMEOUT_SECONDS", c.Weather.TimeoutSeconds)
	c.Weather.StaleAfter = getenvDefault("SKYWATCH_STALE_AFTER", c.Weather.StaleAfter)

	if v := os.Getenv("SKYWATCH_NO_WEATHER"); v != "" {
		c.NoWeather = isTruthy(v)
	}
	if v := os.Getenv("SKYWATCH_VERBOSE"); v != "" {
		c.Verbose = isTruthy(v)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}

	return def
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes", "on", "True", "TRUE":
		return true
	}

	return false
}
