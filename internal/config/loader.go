package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultFile is the config file Load looks for when no explicit path is
// given.
const DefaultFile = "claireops.yaml"

// envBindings maps config keys to the environment variables that
// override them. The names match what the hosting dashboards already
// use, so a deploy needs no translation layer.
var envBindings = map[string]string{
	"server.port":             "PORT",
	"zoho.client_id":          "ZOHO_CLIENT_ID",
	"zoho.client_secret":      "ZOHO_CLIENT_SECRET",
	"zoho.refresh_token":      "ZOHO_REFRESH_TOKEN",
	"zoho.sender_email":       "ZOHO_SENDER_EMAIL",
	"stripe.secret_key":       "STRIPE_SECRET_KEY",
	"cloneops.api_key":        "CLONEOPS_API_KEY",
	"cloneops.base_url":       "CLONEOPS_API_URL",
	"slack.webhook_url":       "SLACK_WEBHOOK_URL",
	"routing.primary_number":  "PRIMARY_PHONE_NUMBER",
	"routing.fallback_number": "FALLBACK_PHONE_NUMBER",
	"routing.cutoff_hour":     "ROUTING_CUTOFF_HOUR",
	"routing.zone":            "ROUTING_ZONE",
	"documents.output_dir":    "DOCUMENTS_OUTPUT_DIR",
	"documents.profile":       "DOCUMENTS_PROFILE",
	"billing.default_fee":     "DEFAULT_SETUP_FEE",
}

// Load merges defaults, an optional yaml file, and environment
// overrides, in that order. path may be empty, in which case
// DefaultFile is used if it exists.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Routing.CutoffHour < 0 || c.Routing.CutoffHour > 23 {
		return fmt.Errorf("invalid routing cutoff hour %d", c.Routing.CutoffHour)
	}
	if c.Routing.RingSeconds <= 0 {
		return fmt.Errorf("invalid ring seconds %d", c.Routing.RingSeconds)
	}
	if c.Billing.DefaultFee <= 0 {
		return fmt.Errorf("invalid default setup fee %d", c.Billing.DefaultFee)
	}
	return nil
}
