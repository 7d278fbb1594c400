// Package config reads the settings shared by the Lambda entry points from
// the environment, with an optional config.toml for local development.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const DefaultPlaylistID = "0pm5pbUgvyQtdJdcAIffNO"

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "console"}
)

// Spotify holds the catalog service credentials.
type Spotify struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
	PlaylistID   string
	TokenURL     string
	APIURL       string
}

type Config struct {
	RSVPTable         string
	SongRequestsTable string
	EventsQueueURL    string
	CORSOrigin        string
	MetricsNamespace  string

	Spotify Spotify

	LogLevel  string
	LogFormat string

	RunLocal     bool
	LocalAddr    string
	MaxBodyBytes int64
	// LocalSQSBody is the message the worker processes when run locally.
	LocalSQSBody string

	AWSRegion   string
	AWSEndpoint string
}

// Load reads configuration into a fresh viper instance. A missing config
// file is not an error; a malformed one is.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("rsvp.table", "DYNAMODB_TABLE")
	v.BindEnv("songs.table", "SONG_REQUESTS_TABLE")
	v.BindEnv("events.queue_url", "EVENTS_QUEUE_URL")
	v.BindEnv("cors.origin", "CORS_ORIGIN")
	v.BindEnv("metrics.namespace", "METRICS_NAMESPACE")

	v.BindEnv("spotify.client_id", "SPOTIFY_CLIENT_ID")
	v.BindEnv("spotify.client_secret", "SPOTIFY_CLIENT_SECRET")
	v.BindEnv("spotify.redirect_uri", "SPOTIFY_REDIRECT_URI")
	v.BindEnv("spotify.refresh_token", "SPOTIFY_REFRESH_TOKEN")
	v.BindEnv("spotify.playlist_id", "SPOTIFY_PLAYLIST_ID")
	v.BindEnv("spotify.token_url", "SPOTIFY_TOKEN_URL")
	v.BindEnv("spotify.api_url", "SPOTIFY_API_URL")

	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")

	v.BindEnv("local.enabled", "RUN_LOCAL")
	v.BindEnv("local.addr", "LOCAL_ADDR")
	v.BindEnv("local.sqs_body", "LOCAL_SQS_BODY")
	v.BindEnv("http.max_body_bytes", "MAX_BODY_BYTES")

	v.BindEnv("aws.region", "AWS_REGION")
	v.BindEnv("aws.endpoint", "AWS_ENDPOINT_OVERRIDE")

	//
	// Defaults
	//
	v.SetDefault("cors.origin", "*")
	v.SetDefault("metrics.namespace", "WeddingSite")
	v.SetDefault("spotify.playlist_id", DefaultPlaylistID)
	v.SetDefault("spotify.token_url", "https://accounts.spotify.com/api/token")
	v.SetDefault("spotify.api_url", "https://api.spotify.com/v1/")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("local.enabled", false)
	v.SetDefault("local.addr", ":8080")
	v.SetDefault("local.sqs_body", `{"type":"rsvp.submitted","submission_id":"local-1","guest_count":2,"attending_count":2}`)
	v.SetDefault("http.max_body_bytes", 1<<20)
	v.SetDefault("aws.region", "us-east-1")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	cfg := &Config{
		RSVPTable:         v.GetString("rsvp.table"),
		SongRequestsTable: v.GetString("songs.table"),
		EventsQueueURL:    v.GetString("events.queue_url"),
		CORSOrigin:        v.GetString("cors.origin"),
		MetricsNamespace:  v.GetString("metrics.namespace"),
		Spotify: Spotify{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			RedirectURI:  v.GetString("spotify.redirect_uri"),
			RefreshToken: v.GetString("spotify.refresh_token"),
			PlaylistID:   v.GetString("spotify.playlist_id"),
			TokenURL:     v.GetString("spotify.token_url"),
			APIURL:       v.GetString("spotify.api_url"),
		},
		LogLevel:     strings.ToLower(v.GetString("log.level")),
		LogFormat:    strings.ToLower(v.GetString("log.format")),
		RunLocal:     v.GetBool("local.enabled"),
		LocalAddr:    v.GetString("local.addr"),
		LocalSQSBody: v.GetString("local.sqs_body"),
		MaxBodyBytes: v.GetInt64("http.max_body_bytes"),
		AWSRegion:    v.GetString("aws.region"),
		AWSEndpoint:  v.GetString("aws.endpoint"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every entry point depends on.
func (c *Config) Validate() error {
	var errs []string
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, "LOG_LEVEL must be one of "+strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errs = append(errs, "LOG_FORMAT must be one of "+strings.Join(validLogFormats, ", "))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, "MAX_BODY_BYTES must be > 0")
	}
	if c.CORSOrigin == "" {
		errs = append(errs, "CORS_ORIGIN must not be empty")
	}
	return joinErrs(errs)
}

// ValidateRSVP checks the settings needed by the RSVP function.
func (c *Config) ValidateRSVP() error {
	var errs []string
	if c.RSVPTable == "" {
		errs = append(errs, "DYNAMODB_TABLE is required")
	}
	return joinErrs(errs)
}

// ValidateMusic checks the settings needed by the music proxy.
func (c *Config) ValidateMusic() error {
	var errs []string
	if c.Spotify.ClientID == "" {
		errs = append(errs, "SPOTIFY_CLIENT_ID is required")
	}
	if c.Spotify.ClientSecret == "" {
		errs = append(errs, "SPOTIFY_CLIENT_SECRET is required")
	}
	if c.Spotify.TokenURL == "" {
		errs = append(errs, "SPOTIFY_TOKEN_URL must not be empty")
	}
	if c.Spotify.APIURL != "" && !strings.HasSuffix(c.Spotify.APIURL, "/") {
		errs = append(errs, "SPOTIFY_API_URL must end with /")
	}
	return joinErrs(errs)
}

func joinErrs(errs []string) error {
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
