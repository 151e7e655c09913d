package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by MustLoad.
const EnvPrefix = "WAZE"

// Config holds the configuration settings for the resolution service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port of the HTTP API and metrics server.
// - ProviderType: The place-details provider to use (places, google).
// - APIKey: The Places API key; empty disables the place-id stage.
// - Workers: The number of concurrent workers for batch resolution.
// - HTTPTimeout: The overall timeout of one outbound request.
// - RateLimit: Requests per second allowed against the Places API.
// - MaxURLLength: Inputs longer than this are rejected.
// - AllowedHosts: Host substrings accepted as map links.
// - CORSOrigins: Origins allowed to call the HTTP API.
// - DeepFetch: Whether short links get the header and page deep pass.
type Config struct {
	Env          string        `mapstructure:"env"`            // Env is the current environment: local, development, production.
	Port         int           `mapstructure:"port"`           // Port is the HTTP server port.
	ProviderType string        `mapstructure:"provider_type"`  // ProviderType specifies which place-details provider to use.
	APIKey       string        `mapstructure:"places_api_key"` // APIKey is the Places API credential.
	Workers      int           `mapstructure:"workers"`        // Workers is the batch worker pool size.
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`   // HTTPTimeout bounds one outbound request.
	RateLimit    int           `mapstructure:"rate_limit"`     // RateLimit is the Places API rate in requests per second.
	MaxURLLength int           `mapstructure:"max_url_length"` // MaxURLLength bounds accepted inputs.
	AllowedHosts []string      `mapstructure:"allowed_hosts"`  // AllowedHosts are accepted host substrings.
	CORSOrigins  []string      `mapstructure:"cors_origins"`   // CORSOrigins are the origins allowed by the API.
	DeepFetch    bool          `mapstructure:"deep_fetch"`     // DeepFetch enables the short-link deep pass.
}

// MustLoad reads .env files (the working directory's .env when none are given),
// then WAZE_* environment variables, and returns the resulting Config.
// It panics when a value cannot be parsed.
func MustLoad(files ...string) *Config {
	_ = godotenv.Load(files...)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("provider_type", "places")
	v.SetDefault("workers", "10")
	v.SetDefault("http_timeout", "20s")
	v.SetDefault("rate_limit", "5")
	v.SetDefault("max_url_length", "2048")
	v.SetDefault("allowed_hosts", "google.,goo.gl")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("deep_fetch", "true")

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	timeout, err := time.ParseDuration(v.GetString("http_timeout"))
	if err != nil {
		panic("failed to parse http timeout from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("rate_limit"))
	if err != nil {
		panic("failed to parse rate limit from configuration")
	}

	maxURLLength, err := strconv.Atoi(v.GetString("max_url_length"))
	if err != nil {
		panic("failed to parse max url length from configuration")
	}

	deepFetch, err := strconv.ParseBool(v.GetString("deep_fetch"))
	if err != nil {
		panic("failed to parse deep fetch flag from configuration")
	}

	return &Config{
		Env:          v.GetString("env"),
		Port:         port,
		ProviderType: v.GetString("provider_type"),
		APIKey:       v.GetString("places_api_key"),
		Workers:      workers,
		HTTPTimeout:  timeout,
		RateLimit:    rateLimit,
		MaxURLLength: maxURLLength,
		AllowedHosts: splitList(v.GetString("allowed_hosts")),
		CORSOrigins:  splitList(v.GetString("cors_origins")),
		DeepFetch:    deepFetch,
	}
}

// splitList splits a comma separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
