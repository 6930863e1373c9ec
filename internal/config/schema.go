// Package config holds the runtime configuration for the claireops
// service: vendor credentials, routing numbers, and rendering options.
package config

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Zoho      ZohoConfig      `yaml:"zoho" mapstructure:"zoho"`
	Stripe    StripeConfig    `yaml:"stripe" mapstructure:"stripe"`
	CloneOps  CloneOpsConfig  `yaml:"cloneops" mapstructure:"cloneops"`
	Slack     SlackConfig     `yaml:"slack" mapstructure:"slack"`
	Routing   RoutingConfig   `yaml:"routing" mapstructure:"routing"`
	Documents DocumentsConfig `yaml:"documents" mapstructure:"documents"`
	Billing   BillingConfig   `yaml:"billing" mapstructure:"billing"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// ZohoConfig holds the CRM OAuth credentials and sender identity.
type ZohoConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	RefreshToken string `yaml:"refresh_token" mapstructure:"refresh_token"`
	SenderName   string `yaml:"sender_name" mapstructure:"sender_name"`
	SenderEmail  string `yaml:"sender_email" mapstructure:"sender_email"`
}

// StripeConfig holds the payments API key.
type StripeConfig struct {
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
}

// CloneOpsConfig holds the provisioning vendor credentials.
type CloneOpsConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SlackConfig holds the team notification webhook.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// RoutingConfig configures the inbound call router.
type RoutingConfig struct {
	PrimaryNumber   string `yaml:"primary_number" mapstructure:"primary_number"`
	FallbackNumber  string `yaml:"fallback_number" mapstructure:"fallback_number"`
	CutoffHour      int    `yaml:"cutoff_hour" mapstructure:"cutoff_hour"`
	Zone            string `yaml:"zone" mapstructure:"zone"`
	RingSeconds     int    `yaml:"ring_seconds" mapstructure:"ring_seconds"`
	TransferMessage string `yaml:"transfer_message" mapstructure:"transfer_message"`
}

// DocumentsConfig configures PDF rendering.
type DocumentsConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Profile   string `yaml:"profile" mapstructure:"profile"`
}

// BillingConfig configures invoice generation.
type BillingConfig struct {
	DefaultFee int64 `yaml:"default_fee" mapstructure:"default_fee"`
}
