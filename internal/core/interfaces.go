package core

import "context"

// Provisioner creates the client's AI agent from a provisioning template.
// Implementations: provisioning.Client (CloneOps API)
type Provisioner interface {
	Provision(ctx context.Context, intent OnboardingIntent) (ProvisionReceipt, error)
}

// CRMUpdater writes the provisioning status back to the source CRM deal.
// Implementations: crm.Client (Zoho Deals API)
type CRMUpdater interface {
	UpdateDeal(ctx context.Context, dealID, firmName, archetype string) error
}

// InvoiceCreator issues the setup-fee invoice.
// Implementations: billing.Service
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, firmName string, amount int64) (Invoice, error)
}

// PaymentLinker creates a hosted checkout link for the setup fee. Its
// contract is non-failing: on any upstream problem it returns a clearly
// marked fallback URL instead of an error.
// Implementations: payments.LinkBuilder (Stripe Checkout)
type PaymentLinker interface {
	CreateLink(ctx context.Context, firmName string, amount int64, referenceID string) string
}

// DocumentRenderer produces the client-facing PDFs.
// Implementations: documents.Renderer
type DocumentRenderer interface {
	RenderInvoice(invoice Invoice, firmName, paymentURL string) (string, error)
	RenderContract(firmName, archetype, paymentURL string) (string, error)
}

// Mailer delivers transactional email through the CRM's mail-send API.
// Implementations: crm.Client (Zoho send_mail)
type Mailer interface {
	SendInvoice(ctx context.Context, dealID, toEmail string, invoice Invoice, attachmentPath, paymentURL string) (MailReceipt, error)
	SendWelcome(ctx context.Context, dealID, toEmail, firmName, archetype, attachmentPath, paymentURL string) (MailReceipt, error)
}

// Notifier posts internal team notifications.
// Implementations: notify.SlackClient
type Notifier interface {
	NotifyNewAgent(ctx context.Context, firmName, archetype, status string) error
}
