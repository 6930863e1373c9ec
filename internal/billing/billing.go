// Package billing issues setup-fee invoices. The invoice itself is an
// internal record (payment collection happens through the checkout link);
// a future revision may move issuance onto Stripe Invoicing.
package billing

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/theclaireai/claireops/internal/core"
)

// Service implements core.InvoiceCreator.
type Service struct {
	hostedBase string
	idGen      func() string
}

func NewService() *Service {
	return &Service{
		hostedBase: "https://billing.theclaireai.com/pay",
		idGen: func() string {
			return "inv_" + strings.Split(uuid.NewString(), "-")[0]
		},
	}
}

// WithIDGenerator overrides invoice id generation.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGen = gen
	return s
}

// CreateInvoice creates a draft USD invoice for the onboarding setup fee.
func (s *Service) CreateInvoice(ctx context.Context, firmName string, amount int64) (core.Invoice, error) {
	if firmName == "" {
		return core.Invoice{}, fmt.Errorf("billing: firm name required")
	}
	if amount <= 0 {
		return core.Invoice{}, fmt.Errorf("billing: invalid amount %d", amount)
	}

	inv := core.Invoice{
		ID:          s.idGen(),
		Amount:      amount,
		Currency:    "USD",
		Status:      core.InvoiceStatusDraft,
		Description: fmt.Sprintf("Onboarding & Implementation Fee for %s", firmName),
	}
	log.Printf("[Billing] Generated invoice %s for %s ($%d)", inv.ID, firmName, amount)
	return inv, nil
}
