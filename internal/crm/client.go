// Package crm is the Zoho CRM collaborator: deal write-backs, file
// uploads, transactional mail through the Deals send_mail action, and the
// listing/deletion surface the maintenance CLI uses.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/theclaireai/claireops/internal/core"
)

const defaultAPIBase = "https://www.zohoapis.com/crm/v2"

// Sender is the transactional-mail from identity.
type Sender struct {
	Name  string
	Email string
}

// Client talks to the Zoho CRM v2 API. With unconfigured credentials it
// runs in simulation mode: every call logs a mock result and succeeds
// without touching the network, matching how the service behaves in demo
// environments.
type Client struct {
	tokens  *TokenSource
	apiBase string
	client  *http.Client
	sender  Sender
}

func NewClient(creds Credentials, sender Sender) *Client {
	return &Client{
		tokens:  NewTokenSource(creds),
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 60 * time.Second},
		sender:  sender,
	}
}

// WithAPIBase points the client at a different CRM endpoint.
func (c *Client) WithAPIBase(u string) *Client {
	c.apiBase = u
	return c
}

// WithTokenSource swaps the credential provider.
func (c *Client) WithTokenSource(ts *TokenSource) *Client {
	c.tokens = ts
	return c
}

func (c *Client) simulated() bool {
	return !c.tokens.creds.Configured()
}

// UpdateDeal writes the provisioning status into the deal description.
func (c *Client) UpdateDeal(ctx context.Context, dealID, firmName, archetype string) error {
	if dealID == "" {
		return fmt.Errorf("no deal id")
	}
	log.Printf("[Zoho] Updating deal %s for %s", dealID, firmName)

	if c.simulated() {
		log.Printf("[Zoho] SIMULATION: deal %s description -> agent %s provisioned", dealID, archetype)
		return nil
	}

	payload := map[string]any{
		"data": []map[string]any{
			{"Description": fmt.Sprintf("Automated agent (%s) provisioned via ClaireAI.", archetype)},
		},
	}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/Deals/%s", c.apiBase, dealID), payload)
	return err
}

// UploadFile pushes an attachment into the Zoho Files API and returns the
// encrypted file id.
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy attachment: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("finish upload form: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/files", &buf)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("zoho files (%d): %s", resp.StatusCode, body)
	}

	var parsed struct {
		Data []struct {
			Code    string `json:"code"`
			Details struct {
				ID string `json:"id"`
			} `json:"details"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].Details.ID == "" {
		return "", fmt.Errorf("zoho files: upload succeeded but no file id in %s", body)
	}
	log.Printf("[Zoho] Uploaded %s -> file id %s", filepath.Base(path), parsed.Data[0].Details.ID)
	return parsed.Data[0].Details.ID, nil
}

type mailAddress struct {
	UserName string `json:"user_name,omitempty"`
	Email    string `json:"email"`
}

type mailMessage struct {
	From        mailAddress   `json:"from"`
	To          []mailAddress `json:"to"`
	Subject     string        `json:"subject"`
	Content     string        `json:"content"`
	Attachments []struct {
		ID string `json:"id"`
	} `json:"attachments,omitempty"`
}

// SendInvoice delivers the setup invoice email with the rendered PDF
// attached and the payment link embedded. Upstream error bodies are
// surfaced verbatim: this is the step operators most need to diagnose.
func (c *Client) SendInvoice(ctx context.Context, dealID, toEmail string, invoice core.Invoice, attachmentPath, paymentURL string) (core.MailReceipt, error) {
	if dealID == "" || toEmail == "" {
		return nil, fmt.Errorf("deal id and recipient email required")
	}
	log.Printf("[Zoho] Sending invoice %s to %s (deal %s)", invoice.ID, toEmail, dealID)

	if c.simulated() {
		log.Printf("[Zoho] SIMULATION: invoice %s sent to %s", invoice.ID, toEmail)
		return json.RawMessage(`{"status":"mock_success"}`), nil
	}

	subject := fmt.Sprintf("Invoice #%s for ClaireAI Setup", invoice.ID)
	content := invoiceEmailBody(invoice, paymentURL)
	return c.sendMail(ctx, dealID, toEmail, subject, content, attachmentPath)
}

// SendWelcome delivers the welcome packet with the contract attached.
func (c *Client) SendWelcome(ctx context.Context, dealID, toEmail, firmName, archetype, attachmentPath, paymentURL string) (core.MailReceipt, error) {
	if dealID == "" || toEmail == "" {
		return nil, fmt.Errorf("deal id and recipient email required")
	}
	log.Printf("[Zoho] Sending welcome packet to %s (deal %s)", toEmail, dealID)

	if c.simulated() {
		log.Printf("[Zoho] SIMULATION: welcome packet sent to %s", toEmail)
		return json.RawMessage(`{"status":"mock_success"}`), nil
	}

	subject := fmt.Sprintf("Welcome to ClaireAI - %s", firmName)
	content := welcomeEmailBody(archetype, paymentURL)
	return c.sendMail(ctx, dealID, toEmail, subject, content, attachmentPath)
}

func (c *Client) sendMail(ctx context.Context, dealID, toEmail, subject, content, attachmentPath string) (core.MailReceipt, error) {
	msg := mailMessage{
		From:    mailAddress{UserName: c.sender.Name, Email: c.sender.Email},
		To:      []mailAddress{{Email: toEmail}},
		Subject: subject,
		Content: content,
	}

	if attachmentPath != "" {
		fileID, err := c.UploadFile(ctx, attachmentPath)
		if err != nil {
			// The mail still goes out without the attachment; losing the
			// PDF is better than losing the invoice email.
			log.Printf("[Zoho] Attachment upload failed, sending without it: %v", err)
		} else {
			msg.Attachments = append(msg.Attachments, struct {
				ID string `json:"id"`
			}{ID: fileID})
		}
	}

	payload := map[string]any{"data": []mailMessage{msg}}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("%s/Deals/%s/actions/send_mail", c.apiBase, dealID), payload)
}

// Deal is one CRM deal record as the maintenance CLI sees it.
type Deal struct {
	ID     string
	Name   string
	Amount int64
}

// ListRecentDeals fetches the most recent deals for auditing and cleanup.
func (c *Client) ListRecentDeals(ctx context.Context) ([]Deal, error) {
	if c.simulated() {
		log.Printf("[Zoho] SIMULATION: no deals (credentials not configured)")
		return nil, nil
	}

	body, err := c.do(ctx, http.MethodGet,
		c.apiBase+"/Deals?fields=Deal_Name,Amount&sort_by=Created_Time&sort_order=desc&per_page=100", nil)
	if err != nil {
		return nil, err
	}
	// 204 No Content on an empty module.
	if len(body) == 0 {
		return nil, nil
	}

	var parsed struct {
		Data []struct {
			ID     string  `json:"id"`
			Name   string  `json:"Deal_Name"`
			Amount float64 `json:"Amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode deals: %w", err)
	}

	deals := make([]Deal, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		deals = append(deals, Deal{ID: d.ID, Name: d.Name, Amount: int64(d.Amount)})
	}
	return deals, nil
}

// DeleteDeal removes one deal record.
func (c *Client) DeleteDeal(ctx context.Context, id string) error {
	if c.simulated() {
		log.Printf("[Zoho] SIMULATION: deleted deal %s", id)
		return nil
	}
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/Deals/%s", c.apiBase, id), nil)
	return err
}

// do issues an authenticated API request and returns the raw response
// body. Non-2xx responses become errors carrying the body verbatim.
func (c *Client) do(ctx context.Context, method, url string, payload any) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoho request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("zoho %s %s (%d): %s", method, req.URL.Path, resp.StatusCode, body)
	}
	return body, nil
}

func invoiceEmailBody(invoice core.Invoice, paymentURL string) string {
	content := fmt.Sprintf("Hi there,<br><br>Please find your setup invoice attached.<br><br>Total: $%d<br><br>", invoice.Amount)
	if paymentURL != "" {
		content += fmt.Sprintf("<b>You can complete your payment securely here:</b><br><a href=%q>%s</a><br><br>", paymentURL, paymentURL)
	}
	return content + "Thanks,<br>ClaireAI Team"
}

func welcomeEmailBody(archetype, paymentURL string) string {
	content := fmt.Sprintf("Welcome aboard!<br><br>We have provisioned your <b>%s</b> agent.<br>Please see the attached services agreement.<br><br>", archetype)
	if paymentURL != "" {
		content += fmt.Sprintf("<b>Please complete the setup payment here to finalize:</b><br><a href=%q>%s</a><br><br>", paymentURL, paymentURL)
	}
	return content + "Best,<br>ClaireAI Team"
}
