// Package routing implements the telephony front door: a time-of-day
// routing decision per inbound call plus a bounded failover state machine
// for the human-specialist leg.
package routing

import (
	"log"
	"time"
)

// Leg is one call-routing destination.
type Leg int

const (
	LegPrimary  Leg = iota // human specialist line
	LegFallback            // always-available automated line
)

func (l Leg) String() string {
	if l == LegPrimary {
		return "primary"
	}
	return "fallback"
}

// State of one call as it moves through the router.
type State int

const (
	StateIdle State = iota
	StateDeciding
	StateDialingPrimary
	StateDialingFallback
	StateConnected
	StateFailover
	StateEnded
)

// DefaultRingTimeout bounds how long the primary leg rings before the
// failover callback fires.
const DefaultRingTimeout = 20 * time.Second

// DialStatusCompleted is the terminal status of a leg that connected and
// hung up normally. Every other status (no-answer, busy, failed,
// canceled) triggers failover from the primary leg.
const DialStatusCompleted = "completed"

// Config for the router. Zone is a fixed configured zone, never the
// caller's locale.
type Config struct {
	CutoffHour      int            // local hour; calls at or past it go to fallback
	Zone            *time.Location // zone the cutoff is evaluated in
	PrimaryNumber   string
	FallbackNumber  string
	RingTimeout     time.Duration // primary leg only
	StatusCallback  string        // path the primary leg reports its dial status to
	TransferMessage string        // spoken before the failover dial
}

// Action is one call-control instruction emitted by the router. The web
// layer renders actions to call-control markup.
type Action interface{ isAction() }

// Dial connects the call to a number. A zero Timeout means no ring bound
// and no status callback wiring.
type Dial struct {
	Number   string
	Timeout  time.Duration
	Callback string
}

// Say speaks a message to the caller.
type Say struct {
	Message string
}

// Hangup terminates the call leg cleanly.
type Hangup struct{}

func (Dial) isAction()   {}
func (Say) isAction()    {}
func (Hangup) isAction() {}

// Router computes per-call routing decisions. It is stateless across
// calls; every inbound event gets a fresh Call.
type Router struct {
	config Config
	now    func() time.Time
}

func NewRouter(config Config) *Router {
	if config.RingTimeout <= 0 {
		config.RingTimeout = DefaultRingTimeout
	}
	if config.Zone == nil {
		config.Zone = time.UTC
	}
	if config.TransferMessage == "" {
		config.TransferMessage = "Transferring you to our virtual assistant."
	}
	return &Router{config: config, now: time.Now}
}

// WithClock overrides the router's clock.
func (r *Router) WithClock(now func() time.Time) *Router {
	r.now = now
	return r
}

// DecideLeg picks the target leg for the given instant. The cutoff
// comparison is strictly <: the boundary hour itself routes to fallback.
func (r *Router) DecideLeg(at time.Time) Leg {
	if at.In(r.config.Zone).Hour() < r.config.CutoffHour {
		return LegPrimary
	}
	return LegFallback
}

// Call tracks one call through the routing state machine:
// Idle -> Deciding -> Dialing(Primary) -> {Connected, Failover}
//                  -> Dialing(Fallback) -> {Connected, Ended}
type Call struct {
	router *Router
	state  State
	leg    Leg
}

// NewCall starts the state machine for a fresh inbound call.
func (r *Router) NewCall() *Call {
	return &Call{router: r, state: StateIdle}
}

// ResumeCall rebuilds the machine for a dial-status callback: the primary
// leg was dialed in an earlier request and has now reported its outcome.
func (r *Router) ResumeCall() *Call {
	return &Call{router: r, state: StateDialingPrimary, leg: LegPrimary}
}

// State returns the call's current state.
func (c *Call) State() State { return c.state }

// Incoming handles the inbound-call event: decide the leg by wall clock
// and dial it. Only the primary leg gets a ring timeout and a failover
// callback; the fallback leg is terminal.
func (c *Call) Incoming() []Action {
	cfg := c.router.config
	now := c.router.now()

	c.state = StateDeciding
	c.leg = c.router.DecideLeg(now)
	log.Printf("[Router] Incoming call at %s (hour %d): routing to %s",
		now.In(cfg.Zone).Format(time.RFC3339), now.In(cfg.Zone).Hour(), c.leg)

	if c.leg == LegPrimary {
		c.state = StateDialingPrimary
		return []Action{Dial{
			Number:   cfg.PrimaryNumber,
			Timeout:  cfg.RingTimeout,
			Callback: cfg.StatusCallback,
		}}
	}

	c.state = StateDialingFallback
	return []Action{Dial{Number: cfg.FallbackNumber}}
}

// DialStatus handles the primary leg's terminal status. Anything other
// than a completed call fails over to the fallback leg, announced first.
// The fallback leg has no further failover.
func (c *Call) DialStatus(status string) []Action {
	cfg := c.router.config
	log.Printf("[Router] Primary leg dial status: %s", status)

	if c.state != StateDialingPrimary {
		// Fallback leg outcomes are terminal regardless of status.
		c.state = StateEnded
		return []Action{Hangup{}}
	}

	if status == DialStatusCompleted {
		c.state = StateEnded
		return []Action{Hangup{}}
	}

	c.state = StateFailover
	actions := []Action{Say{Message: cfg.TransferMessage}, Dial{Number: cfg.FallbackNumber}}
	c.state = StateDialingFallback
	c.leg = LegFallback
	return actions
}
