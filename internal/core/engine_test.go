package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// Test: ProcessOnboarding
// =============================================================================

func validIntent() OnboardingIntent {
	return OnboardingIntent{
		ReferenceID:    "7203613000000746002",
		FirmName:       "Hartwell & Price LLP",
		ClientEmail:    "ops@hartwellprice.com",
		AgentArchetype: "Gatekeeper",
	}
}

func TestEngine_ProcessOnboarding(t *testing.T) {
	ctx := context.Background()

	t.Run("Given reachable collaborators When pipeline runs Then result carries the billing invoice id", func(t *testing.T) {
		// Given
		deps, _, _, billing, _, _, _, _ := testDeps()
		billing.CreateFunc = func(ctx context.Context, firmName string, amount int64) (Invoice, error) {
			return Invoice{ID: "inv_98765", Amount: amount, Currency: "USD", Status: InvoiceStatusDraft}, nil
		}
		engine := NewEngine(deps)

		// When
		result, err := engine.ProcessOnboarding(ctx, validIntent())

		// Then
		if err != nil {
			t.Fatalf("ProcessOnboarding failed: %v", err)
		}
		if result.InvoiceID != "inv_98765" {
			t.Errorf("expected invoice id inv_98765, got %s", result.InvoiceID)
		}
		if result.ProvisioningID != "agent-001" {
			t.Errorf("expected provisioning id agent-001, got %s", result.ProvisioningID)
		}
		if result.PaymentURL == "" || result.DocumentPath == "" {
			t.Errorf("expected payment url and document path, got %q / %q", result.PaymentURL, result.DocumentPath)
		}
	})

	t.Run("Given missing firm name When pipeline runs Then validation error and no collaborator invoked", func(t *testing.T) {
		deps, prov, crm, billing, payments, docs, mailer, notifier := testDeps()
		engine := NewEngine(deps)

		_, err := engine.ProcessOnboarding(ctx, OnboardingIntent{AgentArchetype: "Gatekeeper"})

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Field != "firm_name" {
			t.Errorf("expected firm_name, got %s", verr.Field)
		}
		calls := prov.CallCount + crm.CallCount + billing.CallCount + payments.CallCount +
			docs.InvoiceCalls + docs.ContractCalls + mailer.InvoiceCalls + notifier.CallCount
		if calls != 0 {
			t.Errorf("expected no collaborator calls, got %d", calls)
		}
	})

	t.Run("Given missing archetype When pipeline runs Then validation error names agent_archetype", func(t *testing.T) {
		deps, _, _, _, _, _, _, _ := testDeps()
		engine := NewEngine(deps)

		_, err := engine.ProcessOnboarding(ctx, OnboardingIntent{FirmName: "Hartwell & Price LLP"})

		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "agent_archetype" {
			t.Fatalf("expected ValidationError for agent_archetype, got %v", err)
		}
	})

	t.Run("Given reserved reference id When pipeline runs Then CRM is never invoked", func(t *testing.T) {
		for _, id := range []string{"DEMO-17", "CLOUD-DEBUG-5K", ""} {
			deps, _, crm, _, _, _, _, _ := testDeps()
			engine := NewEngine(deps)
			intent := validIntent()
			intent.ReferenceID = id

			if _, err := engine.ProcessOnboarding(ctx, intent); err != nil {
				t.Fatalf("ProcessOnboarding failed for %q: %v", id, err)
			}
			if crm.CallCount != 0 {
				t.Errorf("expected no CRM call for reference id %q, got %d", id, crm.CallCount)
			}
		}
	})

	t.Run("Given tracked reference id When pipeline runs Then CRM receives the deal id", func(t *testing.T) {
		deps, _, crm, _, _, _, _, _ := testDeps()
		engine := NewEngine(deps)

		if _, err := engine.ProcessOnboarding(ctx, validIntent()); err != nil {
			t.Fatalf("ProcessOnboarding failed: %v", err)
		}
		if crm.CallCount != 1 || crm.LastDealID != "7203613000000746002" {
			t.Errorf("expected one CRM call for the deal, got %d (%s)", crm.CallCount, crm.LastDealID)
		}
	})

	t.Run("Given no deal amount When invoicing Then standard fee is charged exactly", func(t *testing.T) {
		deps, _, _, billing, _, _, _, _ := testDeps()
		engine := NewEngine(deps)
		intent := validIntent()
		intent.SetupFee = 0

		if _, err := engine.ProcessOnboarding(ctx, intent); err != nil {
			t.Fatalf("ProcessOnboarding failed: %v", err)
		}
		if billing.LastAmount != 1250 {
			t.Errorf("expected standard fee 1250, got %d", billing.LastAmount)
		}
	})

	t.Run("Given deal amount When invoicing Then deal amount wins over standard fee", func(t *testing.T) {
		deps, _, _, billing, _, _, _, _ := testDeps()
		engine := NewEngine(deps)
		intent := validIntent()
		intent.SetupFee = 3000

		if _, err := engine.ProcessOnboarding(ctx, intent); err != nil {
			t.Fatalf("ProcessOnboarding failed: %v", err)
		}
		if billing.LastAmount != 3000 {
			t.Errorf("expected 3000, got %d", billing.LastAmount)
		}
	})

	t.Run("Given provisioning failure When pipeline runs Then placeholder id and run continues", func(t *testing.T) {
		deps, prov, _, billing, _, _, _, _ := testDeps()
		prov.ProvisionFunc = func(ctx context.Context, intent OnboardingIntent) (ProvisionReceipt, error) {
			return ProvisionReceipt{}, ErrMockProvision
		}
		engine := NewEngine(deps)

		result, err := engine.ProcessOnboarding(ctx, validIntent())

		if err != nil {
			t.Fatalf("provisioning failure must not abort the run: %v", err)
		}
		if result.ProvisioningID != PlaceholderProvisionID {
			t.Errorf("expected placeholder id, got %s", result.ProvisioningID)
		}
		if billing.CallCount != 1 {
			t.Errorf("expected billing to proceed, got %d calls", billing.CallCount)
		}
	})

	t.Run("Given CRM failure When pipeline runs Then billing still proceeds", func(t *testing.T) {
		deps, _, crm, billing, _, _, mailer, _ := testDeps()
		crm.UpdateFunc = func(ctx context.Context, dealID, firmName, archetype string) error {
			return ErrMockCRM
		}
		engine := NewEngine(deps)

		if _, err := engine.ProcessOnboarding(ctx, validIntent()); err != nil {
			t.Fatalf("CRM failure must not abort the run: %v", err)
		}
		if billing.CallCount != 1 || mailer.InvoiceCalls != 1 {
			t.Errorf("expected billing and email to proceed, got %d / %d", billing.CallCount, mailer.InvoiceCalls)
		}
	})

	t.Run("Given billing failure When pipeline runs Then run aborts before document and email", func(t *testing.T) {
		deps, _, _, billing, _, docs, mailer, _ := testDeps()
		billing.CreateFunc = func(ctx context.Context, firmName string, amount int64) (Invoice, error) {
			return Invoice{}, ErrMockBilling
		}
		engine := NewEngine(deps)

		_, err := engine.ProcessOnboarding(ctx, validIntent())

		if FailedStep(err) != StepInvoice {
			t.Fatalf("expected invoice step failure, got %v", err)
		}
		if docs.InvoiceCalls != 0 || mailer.InvoiceCalls != 0 {
			t.Errorf("expected no document/email calls after billing failure")
		}
	})

	t.Run("Given PDF failure When pipeline runs Then run aborts with document step error", func(t *testing.T) {
		deps, _, _, _, _, docs, mailer, _ := testDeps()
		docs.InvoiceFunc = func(invoice Invoice, firmName, paymentURL string) (string, error) {
			return "", ErrMockDocument
		}
		engine := NewEngine(deps)

		_, err := engine.ProcessOnboarding(ctx, validIntent())

		if FailedStep(err) != StepDocument {
			t.Fatalf("expected document step failure, got %v", err)
		}
		if mailer.InvoiceCalls != 0 {
			t.Errorf("expected no email after document failure")
		}
	})

	t.Run("Given mail failure When pipeline runs Then upstream error text is preserved", func(t *testing.T) {
		deps, _, _, _, _, _, mailer, _ := testDeps()
		mailer.InvoiceFunc = func(ctx context.Context, dealID, toEmail string, invoice Invoice, attachmentPath, paymentURL string) (MailReceipt, error) {
			return nil, errors.New("zoho send_mail (400): INVALID_DATA: attachment id malformed")
		}
		engine := NewEngine(deps)

		_, err := engine.ProcessOnboarding(ctx, validIntent())

		if FailedStep(err) != StepEmail {
			t.Fatalf("expected email step failure, got %v", err)
		}
		if !strings.Contains(err.Error(), "INVALID_DATA: attachment id malformed") {
			t.Errorf("expected verbatim upstream text in %q", err.Error())
		}
	})

	t.Run("Given untracked intent When emailing Then DEMO deal id is used", func(t *testing.T) {
		deps, _, _, _, _, _, mailer, _ := testDeps()
		engine := NewEngine(deps)
		intent := validIntent()
		intent.ReferenceID = ""

		if _, err := engine.ProcessOnboarding(ctx, intent); err != nil {
			t.Fatalf("ProcessOnboarding failed: %v", err)
		}
		if mailer.LastDealID != "DEMO" {
			t.Errorf("expected DEMO deal id, got %s", mailer.LastDealID)
		}
	})

	t.Run("Given welcome packet and notify failures When pipeline runs Then run still succeeds", func(t *testing.T) {
		deps, _, _, _, _, _, mailer, notifier := testDeps()
		mailer.WelcomeFunc = func(ctx context.Context, dealID, toEmail, firmName, archetype, attachmentPath, paymentURL string) (MailReceipt, error) {
			return nil, ErrMockMail
		}
		notifier.NotifyFunc = func(ctx context.Context, firmName, archetype, status string) error {
			return ErrMockNotify
		}
		engine := NewEngine(deps)

		result, err := engine.ProcessOnboarding(ctx, validIntent())
		if err != nil {
			t.Fatalf("trailing step failures must not abort the run: %v", err)
		}
		if result.InvoiceID == "" {
			t.Errorf("expected a complete result despite trailing failures")
		}
	})
}

func TestHasReservedPrefix(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"DEMO-1", true},
		{"CLOUD-DEBUG-5K", true},
		{"DEMOLITION", true}, // prefix match is deliberate: demo namespace owns the prefix
		{"7203613000000746002", false},
		{"", false},
		{"demo-1", false}, // reserved prefixes are case-sensitive vendor ids
	}
	for _, tc := range cases {
		if got := HasReservedPrefix(tc.id); got != tc.want {
			t.Errorf("HasReservedPrefix(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
