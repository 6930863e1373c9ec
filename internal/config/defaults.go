package config

// DefaultConfig returns the configuration the service runs with when no
// file or environment overrides are present. Vendor credentials default
// to empty, which puts every client into simulation mode.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
		},
		Zoho: ZohoConfig{
			SenderName:  "Claire AI",
			SenderEmail: "billing@theclaireai.com",
		},
		Routing: RoutingConfig{
			CutoffHour:      13,
			Zone:            "America/New_York",
			RingSeconds:     20,
			TransferMessage: "Please hold while we transfer you to our after-hours assistant.",
		},
		Documents: DocumentsConfig{
			OutputDir: "/tmp/documents",
			Profile:   "institutional",
		},
		Billing: BillingConfig{
			DefaultFee: 1250,
		},
	}
}
