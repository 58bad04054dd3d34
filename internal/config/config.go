package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment variables, and defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("integrator.timeout", 30*time.Second)
	v.SetDefault("membership.chapter_id", "BMWCCA")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "BMWCCA/SSO")
	v.SetDefault("metrics.region", "us-east-1")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("integrator.base_url", "INTEGRATOR_URL")
	_ = v.BindEnv("integrator.username", "INTEGRATOR_USERNAME")
	_ = v.BindEnv("integrator.password", "INTEGRATOR_PASSWORD")
	_ = v.BindEnv("integrator.password_secret", "INTEGRATOR_PASSWORD_SECRET")
	_ = v.BindEnv("integrator.password_file", "INTEGRATOR_PASSWORD_FILE")
	_ = v.BindEnv("integrator.timeout", "INTEGRATOR_TIMEOUT")
	_ = v.BindEnv("membership.chapter_id", "CHAPTER_ID")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")
	_ = v.BindEnv("metrics.enabled", "METRICS_ENABLED")
	_ = v.BindEnv("metrics.namespace", "METRICS_NAMESPACE")
	_ = v.BindEnv("metrics.region", "METRICS_REGION")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	// Map explicitly; the structs carry json tags, not mapstructure tags.
	cfg.Integrator.BaseURL = v.GetString("integrator.base_url")
	cfg.Integrator.Username = v.GetString("integrator.username")
	cfg.Integrator.Password = v.GetString("integrator.password")
	cfg.Integrator.PasswordSecret = v.GetString("integrator.password_secret")
	cfg.Integrator.PasswordFile = v.GetString("integrator.password_file")
	cfg.Integrator.Timeout = v.GetDuration("integrator.timeout")

	cfg.Membership.ChapterID = v.GetString("membership.chapter_id")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.Namespace = v.GetString("metrics.namespace")
	cfg.Metrics.Region = v.GetString("metrics.region")

	cfg.IsLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	return cfg, nil
}
