package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures configuration is complete and well-formed.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var errs []string

	requireNonEmpty := func(value string, field string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
	}

	requireHTTPURL := func(value string, field string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
			return
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("%s must be an absolute http(s) URL", field))
		}
	}

	requireHTTPURL(cfg.Integrator.BaseURL, "integrator.base_url")
	requireNonEmpty(cfg.Integrator.Username, "integrator.username")

	if cfg.IsLambda {
		if cfg.Integrator.Password == "" {
			requireNonEmpty(cfg.Integrator.PasswordSecret, "integrator.password_secret")
		}
	} else if cfg.Integrator.Password == "" && cfg.Integrator.PasswordSecret == "" {
		requireNonEmpty(cfg.Integrator.PasswordFile, "integrator.password_file")
	}

	if cfg.Integrator.Timeout < 0 {
		errs = append(errs, "integrator.timeout must not be negative")
	}
	requireNonEmpty(cfg.Membership.ChapterID, "membership.chapter_id")

	if cfg.Metrics.Enabled {
		requireNonEmpty(cfg.Metrics.Namespace, "metrics.namespace")
		requireNonEmpty(cfg.Metrics.Region, "metrics.region")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
