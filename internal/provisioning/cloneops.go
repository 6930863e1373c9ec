// Package provisioning talks to the CloneOps agent-provisioning API.
package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/theclaireai/claireops/internal/core"
)

const defaultBaseURL = "https://api.cloneops.com/v1"

// Templates maps the agent archetype chosen in the CRM to a CloneOps
// provisioning template.
var Templates = map[string]string{
	"Gatekeeper": "legal_strict_v1",
	"Concierge":  "legal_empathy_v1",
}

// Client implements core.Provisioner against CloneOps. A missing or
// placeholder API key flips it into simulation mode.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type provisionRequest struct {
	Name       string `json:"name"`
	TemplateID string `json:"template_id"`
	Config     struct {
		PracticeArea   string `json:"practice_area,omitempty"`
		TransferNumber string `json:"transfer_number,omitempty"`
	} `json:"config"`
}

type provisionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Provision creates the agent from the intent's archetype template.
func (c *Client) Provision(ctx context.Context, intent core.OnboardingIntent) (core.ProvisionReceipt, error) {
	templateID, ok := Templates[intent.AgentArchetype]
	if !ok {
		return core.ProvisionReceipt{}, fmt.Errorf("unknown agent archetype: %s", intent.AgentArchetype)
	}

	req := provisionRequest{
		Name:       fmt.Sprintf("%s - %s Agent", intent.FirmName, intent.AgentArchetype),
		TemplateID: templateID,
	}
	req.Config.PracticeArea = intent.PracticeArea
	req.Config.TransferNumber = intent.TransferNumber

	if c.apiKey == "" || c.apiKey == "your_cloneops_key" {
		log.Printf("[CloneOps] SIMULATION: provisioning %s (no API key)", req.Name)
		return core.ProvisionReceipt{ID: "sim-" + templateID}, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return core.ProvisionReceipt{}, fmt.Errorf("marshal provision request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/agents", bytes.NewReader(body))
	if err != nil {
		return core.ProvisionReceipt{}, fmt.Errorf("build provision request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return core.ProvisionReceipt{}, fmt.Errorf("cloneops request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.ProvisionReceipt{}, fmt.Errorf("read cloneops response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return core.ProvisionReceipt{}, fmt.Errorf("cloneops (%d): %s", resp.StatusCode, respBody)
	}

	var parsed provisionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return core.ProvisionReceipt{}, fmt.Errorf("decode cloneops response: %w", err)
	}
	log.Printf("[CloneOps] Provisioned agent %s for %s", parsed.ID, intent.FirmName)
	return core.ProvisionReceipt{ID: parsed.ID}, nil
}
