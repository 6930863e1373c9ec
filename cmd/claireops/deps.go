package main

import (
	"time"

	"github.com/theclaireai/claireops/internal/billing"
	"github.com/theclaireai/claireops/internal/config"
	"github.com/theclaireai/claireops/internal/core"
	"github.com/theclaireai/claireops/internal/crm"
	"github.com/theclaireai/claireops/internal/documents"
	"github.com/theclaireai/claireops/internal/notify"
	"github.com/theclaireai/claireops/internal/payments"
	"github.com/theclaireai/claireops/internal/provisioning"
	"github.com/theclaireai/claireops/internal/routing"
)

// clients bundles every configured collaborator.
type clients struct {
	crm      *crm.Client
	billing  *billing.Service
	payments *payments.LinkBuilder
	docs     *documents.Renderer
	agents   *provisioning.Client
	slack    *notify.SlackClient
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func buildClients(cfg *config.Config) (*clients, error) {
	docs, err := documents.NewRenderer(cfg.Documents.OutputDir, cfg.Documents.Profile)
	if err != nil {
		return nil, err
	}

	creds := crm.Credentials{
		ClientID:     cfg.Zoho.ClientID,
		ClientSecret: cfg.Zoho.ClientSecret,
		RefreshToken: cfg.Zoho.RefreshToken,
	}
	sender := crm.Sender{Name: cfg.Zoho.SenderName, Email: cfg.Zoho.SenderEmail}

	return &clients{
		crm:      crm.NewClient(creds, sender),
		billing:  billing.NewService(),
		payments: payments.NewLinkBuilder(cfg.Stripe.SecretKey),
		docs:     docs,
		agents:   provisioning.NewClient(cfg.CloneOps.APIKey, cfg.CloneOps.BaseURL),
		slack:    notify.NewSlackClient(cfg.Slack.WebhookURL),
	}, nil
}

func buildEngine(cfg *config.Config, cl *clients) *core.Engine {
	return core.NewEngine(core.EngineDeps{
		Config:      core.Config{DefaultFee: cfg.Billing.DefaultFee},
		Provisioner: cl.agents,
		CRM:         cl.crm,
		Billing:     cl.billing,
		Payments:    cl.payments,
		Documents:   cl.docs,
		Mailer:      cl.crm,
		Notifier:    cl.slack,
	})
}

func buildRouter(cfg *config.Config) (*routing.Router, error) {
	zone, err := time.LoadLocation(cfg.Routing.Zone)
	if err != nil {
		return nil, err
	}
	return routing.NewRouter(routing.Config{
		CutoffHour:      cfg.Routing.CutoffHour,
		Zone:            zone,
		PrimaryNumber:   cfg.Routing.PrimaryNumber,
		FallbackNumber:  cfg.Routing.FallbackNumber,
		RingTimeout:     time.Duration(cfg.Routing.RingSeconds) * time.Second,
		StatusCallback:  "/voice/dial-status",
		TransferMessage: cfg.Routing.TransferMessage,
	}), nil
}
