package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Common test errors
var (
	ErrMockProvision = errors.New("mock provisioning error")
	ErrMockCRM       = errors.New("mock crm error")
	ErrMockBilling   = errors.New("mock billing error")
	ErrMockDocument  = errors.New("mock document error")
	ErrMockMail      = errors.New("mock mail error")
	ErrMockNotify    = errors.New("mock notify error")
)

// MockProvisioner implements Provisioner for testing
type MockProvisioner struct {
	mu            sync.Mutex
	ProvisionFunc func(ctx context.Context, intent OnboardingIntent) (ProvisionReceipt, error)
	CallCount     int
	LastIntent    OnboardingIntent
}

func (m *MockProvisioner) Provision(ctx context.Context, intent OnboardingIntent) (ProvisionReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++
	m.LastIntent = intent
	if m.ProvisionFunc != nil {
		return m.ProvisionFunc(ctx, intent)
	}
	return ProvisionReceipt{ID: "agent-001"}, nil
}

// MockCRM implements CRMUpdater for testing
type MockCRM struct {
	UpdateFunc func(ctx context.Context, dealID, firmName, archetype string) error
	CallCount  int
	LastDealID string
}

func (m *MockCRM) UpdateDeal(ctx context.Context, dealID, firmName, archetype string) error {
	m.CallCount++
	m.LastDealID = dealID
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, dealID, firmName, archetype)
	}
	return nil
}

// MockBilling implements InvoiceCreator for testing
type MockBilling struct {
	CreateFunc func(ctx context.Context, firmName string, amount int64) (Invoice, error)
	CallCount  int
	LastAmount int64
}

func (m *MockBilling) CreateInvoice(ctx context.Context, firmName string, amount int64) (Invoice, error) {
	m.CallCount++
	m.LastAmount = amount
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, firmName, amount)
	}
	return Invoice{
		ID:       "inv_12345",
		Amount:   amount,
		Currency: "USD",
		Status:   InvoiceStatusDraft,
	}, nil
}

// MockPayments implements PaymentLinker for testing
type MockPayments struct {
	LinkFunc  func(ctx context.Context, firmName string, amount int64, referenceID string) string
	CallCount int
}

func (m *MockPayments) CreateLink(ctx context.Context, firmName string, amount int64, referenceID string) string {
	m.CallCount++
	if m.LinkFunc != nil {
		return m.LinkFunc(ctx, firmName, amount, referenceID)
	}
	return "https://checkout.example.com/pay/" + referenceID
}

// MockDocuments implements DocumentRenderer for testing
type MockDocuments struct {
	InvoiceFunc   func(invoice Invoice, firmName, paymentURL string) (string, error)
	ContractFunc  func(firmName, archetype, paymentURL string) (string, error)
	InvoiceCalls  int
	ContractCalls int
}

func (m *MockDocuments) RenderInvoice(invoice Invoice, firmName, paymentURL string) (string, error) {
	m.InvoiceCalls++
	if m.InvoiceFunc != nil {
		return m.InvoiceFunc(invoice, firmName, paymentURL)
	}
	return "/tmp/documents/Invoice_" + invoice.ID + ".pdf", nil
}

func (m *MockDocuments) RenderContract(firmName, archetype, paymentURL string) (string, error) {
	m.ContractCalls++
	if m.ContractFunc != nil {
		return m.ContractFunc(firmName, archetype, paymentURL)
	}
	return "/tmp/documents/Contract_test.pdf", nil
}

// MockMailer implements Mailer for testing
type MockMailer struct {
	InvoiceFunc  func(ctx context.Context, dealID, toEmail string, invoice Invoice, attachmentPath, paymentURL string) (MailReceipt, error)
	WelcomeFunc  func(ctx context.Context, dealID, toEmail, firmName, archetype, attachmentPath, paymentURL string) (MailReceipt, error)
	InvoiceCalls int
	WelcomeCalls int
	LastDealID   string
}

func (m *MockMailer) SendInvoice(ctx context.Context, dealID, toEmail string, invoice Invoice, attachmentPath, paymentURL string) (MailReceipt, error) {
	m.InvoiceCalls++
	m.LastDealID = dealID
	if m.InvoiceFunc != nil {
		return m.InvoiceFunc(ctx, dealID, toEmail, invoice, attachmentPath, paymentURL)
	}
	return json.RawMessage(`{"status":"mock_success"}`), nil
}

func (m *MockMailer) SendWelcome(ctx context.Context, dealID, toEmail, firmName, archetype, attachmentPath, paymentURL string) (MailReceipt, error) {
	m.WelcomeCalls++
	if m.WelcomeFunc != nil {
		return m.WelcomeFunc(ctx, dealID, toEmail, firmName, archetype, attachmentPath, paymentURL)
	}
	return json.RawMessage(`{"status":"mock_success"}`), nil
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	NotifyFunc func(ctx context.Context, firmName, archetype, status string) error
	CallCount  int
}

func (m *MockNotifier) NotifyNewAgent(ctx context.Context, firmName, archetype, status string) error {
	m.CallCount++
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, firmName, archetype, status)
	}
	return nil
}

// testDeps returns a full set of happy-path mocks.
func testDeps() (EngineDeps, *MockProvisioner, *MockCRM, *MockBilling, *MockPayments, *MockDocuments, *MockMailer, *MockNotifier) {
	prov := &MockProvisioner{}
	crm := &MockCRM{}
	billing := &MockBilling{}
	payments := &MockPayments{}
	docs := &MockDocuments{}
	mailer := &MockMailer{}
	notifier := &MockNotifier{}
	deps := EngineDeps{
		Config:      Config{DefaultFee: 1250},
		Provisioner: prov,
		CRM:         crm,
		Billing:     billing,
		Payments:    payments,
		Documents:   docs,
		Mailer:      mailer,
		Notifier:    notifier,
	}
	return deps, prov, crm, billing, payments, docs, mailer, notifier
}
