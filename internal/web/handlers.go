package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theclaireai/claireops/internal/core"
	"github.com/theclaireai/claireops/internal/routing"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleOnboardingWebhook receives the CRM automation payload, parses an
// onboarding intent out of it, and runs the pipeline synchronously. The
// CRM retries on non-2xx, so only genuine pipeline failures return 500.
func (s *Server) handleOnboardingWebhook(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	intent, err := core.ParseIntent(payload)
	if err != nil {
		log.Printf("[Web] Webhook rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.onboarder.ProcessOnboarding(c.Request.Context(), intent)
	if err != nil {
		log.Printf("[Web] Onboarding failed for %s at step %q: %v",
			intent.FirmName, core.FailedStep(err), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleVoiceIncoming answers the telephony provider's inbound-call
// webhook with dial instructions for the chosen leg.
func (s *Server) handleVoiceIncoming(c *gin.Context) {
	call := s.callRouter.NewCall()
	s.respondTwiML(c, call.Incoming())
}

// handleDialStatus receives the primary leg's outcome and either hangs
// up or fails over to the fallback line.
func (s *Server) handleDialStatus(c *gin.Context) {
	status := c.PostForm("DialCallStatus")
	call := s.callRouter.ResumeCall()
	s.respondTwiML(c, call.DialStatus(status))
}

func (s *Server) respondTwiML(c *gin.Context, actions []routing.Action) {
	doc, err := renderTwiML(actions)
	if err != nil {
		log.Printf("[Web] TwiML render failed: %v", err)
		c.String(http.StatusInternalServerError, "call routing error")
		return
	}
	c.Data(http.StatusOK, "text/xml", []byte(doc))
}
