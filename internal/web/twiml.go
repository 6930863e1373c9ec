package web

import (
	"fmt"
	"strconv"

	"github.com/twilio/twilio-go/twiml"

	"github.com/theclaireai/claireops/internal/routing"
)

// renderTwiML converts router actions into a TwiML voice document.
func renderTwiML(actions []routing.Action) (string, error) {
	verbs := make([]twiml.Element, 0, len(actions))
	for _, action := range actions {
		switch a := action.(type) {
		case routing.Dial:
			dial := &twiml.VoiceDial{Number: a.Number}
			if a.Timeout > 0 {
				dial.Timeout = strconv.Itoa(int(a.Timeout.Seconds()))
			}
			if a.Callback != "" {
				dial.Action = a.Callback
				dial.Method = "POST"
			}
			verbs = append(verbs, dial)
		case routing.Say:
			verbs = append(verbs, &twiml.VoiceSay{Message: a.Message})
		case routing.Hangup:
			verbs = append(verbs, &twiml.VoiceHangup{})
		default:
			return "", fmt.Errorf("unsupported call action %T", action)
		}
	}
	return twiml.Voice(verbs)
}
