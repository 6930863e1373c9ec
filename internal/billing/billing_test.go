package billing

import (
	"context"
	"testing"
)

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("Given a firm and amount When invoiced Then a draft USD invoice comes back", func(t *testing.T) {
		svc := NewService().WithIDGenerator(func() string { return "inv_fixed" })

		inv, err := svc.CreateInvoice(ctx, "Hartwell & Price LLP", 1250)
		if err != nil {
			t.Fatalf("CreateInvoice failed: %v", err)
		}
		if inv.ID != "inv_fixed" || inv.Amount != 1250 || inv.Currency != "USD" || inv.Status != "draft" {
			t.Errorf("unexpected invoice: %+v", inv)
		}
		if inv.Description != "Onboarding & Implementation Fee for Hartwell & Price LLP" {
			t.Errorf("unexpected description: %s", inv.Description)
		}
	})

	t.Run("Given a non-positive amount When invoiced Then an error", func(t *testing.T) {
		svc := NewService()
		if _, err := svc.CreateInvoice(ctx, "Hartwell & Price LLP", 0); err == nil {
			t.Fatal("expected error for zero amount")
		}
	})
}
