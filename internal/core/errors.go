package core

import "fmt"

// Step identifies one stage of the onboarding pipeline.
type Step string

const (
	StepProvision   Step = "provision"
	StepCRMUpdate   Step = "crm_update"
	StepInvoice     Step = "invoice"
	StepPaymentLink Step = "payment_link"
	StepDocument    Step = "document"
	StepEmail       Step = "email"
	StepWelcome     Step = "welcome_packet"
	StepNotify      Step = "internal_notify"
)

// ValidationError reports the first missing required intent field. It is
// raised before any collaborator is invoked.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// StepError wraps a failure from a required pipeline step, preserving the
// upstream error text verbatim.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// FailedStep returns the pipeline step an error originated from, or ""
// when the error did not come out of the pipeline loop.
func FailedStep(err error) Step {
	for err != nil {
		if se, ok := err.(*StepError); ok {
			return se.Step
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
