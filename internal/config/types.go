package config

import "time"

// Config holds all configuration for the directory client and its entrypoints.
type Config struct {
	Integrator IntegratorConfig `json:"integrator"`
	Membership MembershipConfig `json:"membership"`
	Log        LogConfig        `json:"log"`
	Metrics    MetricsConfig    `json:"metrics"`
	IsLambda   bool             `json:"-"`
}

// IntegratorConfig holds the directory endpoint and integrator credentials.
type IntegratorConfig struct {
	BaseURL        string        `json:"base_url"`
	Username       string        `json:"username"`
	Password       string        `json:"-"`
	PasswordSecret string        `json:"password_secret,omitempty"`
	PasswordFile   string        `json:"password_file,omitempty"`
	Timeout        time.Duration `json:"timeout"`
}

// MembershipConfig holds membership check settings.
type MembershipConfig struct {
	ChapterID string `json:"chapter_id"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// MetricsConfig holds CloudWatch settings for membership check metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
	Region    string `json:"region"`
}
