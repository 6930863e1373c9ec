package core

import "encoding/json"

// Reserved ReferenceID prefixes marking synthetic records. Deals carrying
// these ids never receive CRM write-backs.
var ReservedPrefixes = []string{"DEMO", "CLOUD"}

// OnboardingIntent is the normalized request driving one onboarding run.
// It is constructed once per webhook, never mutated and never persisted.
type OnboardingIntent struct {
	ReferenceID    string `json:"reference_id,omitempty"` // CRM deal id; empty means demo/untracked
	FirmName       string `json:"firm_name"`
	ClientEmail    string `json:"client_email,omitempty"`
	PracticeArea   string `json:"practice_area,omitempty"`
	TransferNumber string `json:"transfer_number,omitempty"`
	AgentArchetype string `json:"agent_archetype"`
	SetupFee       int64  `json:"setup_fee,omitempty"` // whole dollars; 0 means "use the standard fee"
}

// Invoice is the output of the billing step. Amounts are whole dollars.
type Invoice struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// InvoiceStatusDraft is the only status the billing collaborator emits:
// generated but not paid.
const InvoiceStatusDraft = "draft"

// ProvisionReceipt is the provisioning collaborator's acknowledgement.
type ProvisionReceipt struct {
	ID string `json:"id"`
}

// MailReceipt is the raw acknowledgement from the mail-send API, kept
// opaque for operator debugging.
type MailReceipt = json.RawMessage

// OnboardingResult is the terminal success value of one pipeline run.
type OnboardingResult struct {
	Message        string      `json:"message"`
	ProvisioningID string      `json:"provisioning_id"`
	InvoiceID      string      `json:"invoice_id"`
	PaymentURL     string      `json:"payment_url"`
	DocumentPath   string      `json:"document_path"`
	EmailReceipt   MailReceipt `json:"email_receipt,omitempty"`
}

// HasReservedPrefix reports whether a reference id belongs to the
// synthetic/demo namespace.
func HasReservedPrefix(referenceID string) bool {
	for _, p := range ReservedPrefixes {
		if len(referenceID) >= len(p) && referenceID[:len(p)] == p {
			return true
		}
	}
	return false
}
