// Package web exposes the HTTP surface: the CRM webhook that triggers
// onboarding and the telephony endpoints that drive the call router.
package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/theclaireai/claireops/internal/core"
	"github.com/theclaireai/claireops/internal/routing"
)

// Onboarder runs the onboarding pipeline for a parsed intent.
type Onboarder interface {
	ProcessOnboarding(ctx context.Context, intent core.OnboardingIntent) (*core.OnboardingResult, error)
}

// Server is the claireops web server
type Server struct {
	onboarder  Onboarder
	callRouter *routing.Router
	router     *gin.Engine
}

// NewServer creates a new web server
func NewServer(onboarder Onboarder, callRouter *routing.Router) *Server {
	router := gin.Default()

	s := &Server{
		onboarder:  onboarder,
		callRouter: callRouter,
		router:     router,
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/onboarding/webhook", s.handleOnboardingWebhook)
	}

	voice := router.Group("/voice")
	{
		voice.POST("/incoming", s.handleVoiceIncoming)
		voice.POST("/dial-status", s.handleDialStatus)
	}

	return s
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
