// Package notify posts internal team notifications to Slack.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// SlackClient implements core.Notifier on a Slack incoming webhook. With
// no webhook URL configured it logs the message instead.
type SlackClient struct {
	webhookURL string
	client     *http.Client
}

func NewSlackClient(webhookURL string) *SlackClient {
	return &SlackClient{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type slackBlock struct {
	Type string `json:"type"`
	Text struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"text"`
}

type slackMessage struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

func mrkdwn(text string) slackBlock {
	b := slackBlock{Type: "section"}
	b.Text.Type = "mrkdwn"
	b.Text.Text = text
	return b
}

// NotifyNewAgent announces a freshly onboarded client so someone performs
// the verification call.
func (c *SlackClient) NotifyNewAgent(ctx context.Context, firmName, archetype, status string) error {
	if c.webhookURL == "" {
		log.Printf("[Slack] SIMULATION: new agent created for %s (%s, %s)", firmName, archetype, status)
		return nil
	}

	msg := slackMessage{
		Text: fmt.Sprintf("🚨 *New Agent Created: %s*", firmName),
		Blocks: []slackBlock{
			mrkdwn(fmt.Sprintf("*New Client Onboarded*\n*Firm:* %s\n*Agent Archetype:* %s\n*Status:* %s",
				firmName, archetype, status)),
			mrkdwn("👉 *Action Required:* Call the provisional number and verify performance."),
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack webhook (%d): %s", resp.StatusCode, respBody)
	}
	return nil
}
