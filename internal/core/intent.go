package core

import (
	"strconv"
	"strings"
)

// ParseIntent normalizes a heterogeneous CRM webhook body into an
// OnboardingIntent. Vendors disagree on shape: HubSpot workflow webhooks
// nest fields as properties: {key: {value: ...}}, Zoho sends API names
// like Deal_Name flat at the top level. For each target field we try the
// vendor API name first and a generic snake_case key second, unwrapping a
// {value} wrapper when present.
func ParseIntent(payload map[string]any) (OnboardingIntent, error) {
	props := payload
	if nested, ok := payload["properties"].(map[string]any); ok {
		props = nested
	}

	intent := OnboardingIntent{
		ReferenceID:    lookupString(props, "id", "deal_id"),
		FirmName:       lookupString(props, "Deal_Name", "firm_name"),
		PracticeArea:   lookupString(props, "Practice_Area", "practice_area"),
		TransferNumber: lookupString(props, "Transfer_Number", "transfer_number"),
		AgentArchetype: lookupString(props, "Agent_Archetype", "agent_archetype"),
		ClientEmail:    lookupString(props, "Email", "client_email"),
		SetupFee:       lookupAmount(props, "Amount", "amount"),
	}

	// Some payloads only carry the email inside the contact sub-object.
	if intent.ClientEmail == "" {
		if contact, ok := props["Contact_Name"].(map[string]any); ok {
			if email, ok := contact["email"].(string); ok {
				intent.ClientEmail = email
			}
		}
	}

	if intent.FirmName == "" {
		return OnboardingIntent{}, &ValidationError{Field: "firm_name"}
	}
	if intent.AgentArchetype == "" {
		return OnboardingIntent{}, &ValidationError{Field: "agent_archetype"}
	}

	return intent, nil
}

// unwrap resolves a property value, stripping the {value: ...} wrapper
// some webhook configurations add.
func unwrap(props map[string]any, key string) any {
	v, ok := props[key]
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		if inner, ok := m["value"]; ok {
			return inner
		}
		return nil
	}
	return v
}

func lookupString(props map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := unwrap(props, key).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func lookupAmount(props map[string]any, keys ...string) int64 {
	for _, key := range keys {
		switch v := unwrap(props, key).(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return int64(n)
			}
		}
	}
	return 0
}
