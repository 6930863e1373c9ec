package core

import (
	"context"
	"fmt"
	"log"
)

// PlaceholderProvisionID marks an onboarding whose agent must be
// provisioned by hand because the provisioning call failed or was skipped.
const PlaceholderProvisionID = "manual-provision"

// Config holds engine-level settings.
type Config struct {
	// DefaultFee is the standard setup fee in whole dollars, charged when
	// the deal carries no amount.
	DefaultFee int64
}

// Engine executes the onboarding pipeline: provision, CRM write-back,
// invoice, payment link, document, email, welcome packet, internal
// notification. Each run is request-scoped; the engine itself holds no
// mutable state.
type Engine struct {
	config      Config
	provisioner Provisioner
	crm         CRMUpdater
	billing     InvoiceCreator
	payments    PaymentLinker
	documents   DocumentRenderer
	mailer      Mailer
	notifier    Notifier
}

// EngineDeps holds dependencies for constructing an Engine.
type EngineDeps struct {
	Config      Config
	Provisioner Provisioner
	CRM         CRMUpdater
	Billing     InvoiceCreator
	Payments    PaymentLinker
	Documents   DocumentRenderer
	Mailer      Mailer
	Notifier    Notifier
}

// NewEngine creates an onboarding engine with explicit dependencies.
func NewEngine(deps EngineDeps) *Engine {
	cfg := deps.Config
	if cfg.DefaultFee <= 0 {
		cfg.DefaultFee = 1250 // Growth plan
	}
	return &Engine{
		config:      cfg,
		provisioner: deps.Provisioner,
		crm:         deps.CRM,
		billing:     deps.Billing,
		payments:    deps.Payments,
		documents:   deps.Documents,
		mailer:      deps.Mailer,
		notifier:    deps.Notifier,
	}
}

// pipelineState accumulates step outputs across one run.
type pipelineState struct {
	provisioningID string
	invoice        Invoice
	paymentURL     string
	invoicePDF     string
	emailReceipt   MailReceipt
}

// step is one stage of the pipeline. Non-required steps degrade
// gracefully: their failures are logged and the run continues. Required
// steps abort the run with a StepError.
type step struct {
	name     Step
	required bool
	run      func(ctx context.Context, intent OnboardingIntent, st *pipelineState) error
}

func (e *Engine) steps() []step {
	return []step{
		{StepProvision, false, e.runProvision},
		{StepCRMUpdate, false, e.runCRMUpdate},
		{StepInvoice, true, e.runInvoice},
		{StepPaymentLink, true, e.runPaymentLink},
		{StepDocument, true, e.runDocument},
		{StepEmail, true, e.runEmail},
		{StepWelcome, false, e.runWelcomePacket},
		{StepNotify, false, e.runNotify},
	}
}

// ProcessOnboarding runs the full pipeline for one intent. Side effects
// are not rolled back on failure: the caller sees a single error and must
// re-trigger manually, accepting duplicate invoices.
func (e *Engine) ProcessOnboarding(ctx context.Context, intent OnboardingIntent) (*OnboardingResult, error) {
	if intent.FirmName == "" {
		return nil, &ValidationError{Field: "firm_name"}
	}
	if intent.AgentArchetype == "" {
		return nil, &ValidationError{Field: "agent_archetype"}
	}

	log.Printf("[Engine] Processing onboarding for %s", intent.FirmName)

	st := &pipelineState{}
	for _, s := range e.steps() {
		if err := s.run(ctx, intent, st); err != nil {
			if s.required {
				return nil, &StepError{Step: s.name, Err: err}
			}
			log.Printf("[Engine] Step %s failed (non-fatal): %v", s.name, err)
		}
	}

	return &OnboardingResult{
		Message:        "Professional onboarding initiated",
		ProvisioningID: st.provisioningID,
		InvoiceID:      st.invoice.ID,
		PaymentURL:     st.paymentURL,
		DocumentPath:   st.invoicePDF,
		EmailReceipt:   st.emailReceipt,
	}, nil
}

// Provisioning failure is non-fatal by product decision: the run degrades
// to a placeholder id and an operator provisions the agent by hand.
func (e *Engine) runProvision(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	st.provisioningID = PlaceholderProvisionID
	if e.provisioner == nil {
		return nil
	}
	receipt, err := e.provisioner.Provision(ctx, intent)
	if err != nil {
		return err
	}
	if receipt.ID != "" {
		st.provisioningID = receipt.ID
	}
	return nil
}

// CRM write-back is skipped for untracked and reserved (demo/synthetic)
// deals, and never blocks billing when it fails.
func (e *Engine) runCRMUpdate(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	if intent.ReferenceID == "" || HasReservedPrefix(intent.ReferenceID) {
		log.Printf("[Engine] Skipping CRM update for %q", intent.ReferenceID)
		return nil
	}
	return e.crm.UpdateDeal(ctx, intent.ReferenceID, intent.FirmName, intent.AgentArchetype)
}

func (e *Engine) runInvoice(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	amount := intent.SetupFee
	if amount <= 0 {
		amount = e.config.DefaultFee
	}
	invoice, err := e.billing.CreateInvoice(ctx, intent.FirmName, amount)
	if err != nil {
		return err
	}
	st.invoice = invoice
	return nil
}

// The payment-link collaborator is non-failing by contract; it degrades
// to a fallback URL internally, so this step never aborts the run.
func (e *Engine) runPaymentLink(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	st.paymentURL = e.payments.CreateLink(ctx, intent.FirmName, st.invoice.Amount, intent.ReferenceID)
	return nil
}

func (e *Engine) runDocument(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	path, err := e.documents.RenderInvoice(st.invoice, intent.FirmName, st.paymentURL)
	if err != nil {
		return fmt.Errorf("invoice PDF: %w", err)
	}
	st.invoicePDF = path
	return nil
}

func (e *Engine) runEmail(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	dealID := intent.ReferenceID
	if dealID == "" {
		dealID = "DEMO"
	}
	receipt, err := e.mailer.SendInvoice(ctx, dealID, intent.ClientEmail, st.invoice, st.invoicePDF, st.paymentURL)
	if err != nil {
		return err
	}
	st.emailReceipt = receipt
	return nil
}

// The welcome packet rides behind the invoice email: by the time it runs
// the client is already billed, so its failure only loses the contract
// attachment, not revenue.
func (e *Engine) runWelcomePacket(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	if e.mailer == nil || intent.ClientEmail == "" {
		return nil
	}
	contractPath, err := e.documents.RenderContract(intent.FirmName, intent.AgentArchetype, st.paymentURL)
	if err != nil {
		return fmt.Errorf("contract PDF: %w", err)
	}
	dealID := intent.ReferenceID
	if dealID == "" {
		dealID = "DEMO"
	}
	_, err = e.mailer.SendWelcome(ctx, dealID, intent.ClientEmail, intent.FirmName, intent.AgentArchetype, contractPath, st.paymentURL)
	return err
}

func (e *Engine) runNotify(ctx context.Context, intent OnboardingIntent, st *pipelineState) error {
	if e.notifier == nil {
		return nil
	}
	return e.notifier.NotifyNewAgent(ctx, intent.FirmName, intent.AgentArchetype, "Ready for Verification")
}
