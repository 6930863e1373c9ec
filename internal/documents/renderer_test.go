package documents

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theclaireai/claireops/internal/core"
)

func testInvoice() core.Invoice {
	return core.Invoice{
		ID:          "inv_a1b2c3d4",
		Amount:      1250,
		Currency:    "USD",
		Status:      core.InvoiceStatusDraft,
		Description: "Onboarding & Implementation Fee for Hale & Iron LLP",
	}
}

func TestRenderer_RenderInvoice(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, "institutional")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	r.WithClock(func() time.Time { return time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC) })

	path, err := r.RenderInvoice(testInvoice(), "Hale & Iron LLP", "https://checkout.stripe.com/pay/x")
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	if want := filepath.Join(dir, "Invoice_inv_a1b2c3d4.pdf"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered invoice is empty")
	}
}

func TestRenderer_RenderContract(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, "slate")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	path, err := r.RenderContract("Hale & Iron LLP", "Gatekeeper", "")
	if err != nil {
		t.Fatalf("RenderContract: %v", err)
	}
	if base := filepath.Base(path); base != "Contract_Hale___Iron_LLP.pdf" {
		t.Errorf("file name = %q", base)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Error("rendered contract is empty")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Errorf("output is not a PDF, starts with %q", data[:5])
	}
}

func TestRenderer_UnknownProfile(t *testing.T) {
	if _, err := NewRenderer(t.TempDir(), "brutalist"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		650:     "650",
		1250:    "1,250",
		3000:    "3,000",
		1250000: "1,250,000",
	}
	for in, want := range cases {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", in, got, want)
		}
	}
}
