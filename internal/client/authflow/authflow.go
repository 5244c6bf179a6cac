// Package authflow models the one-time-code sign-in screen: which mode it is
// in (log in or sign up) and which step the user is on (enter email or enter
// code).
package authflow

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by Next for events the current step does
// not accept.
var ErrInvalidTransition = errors.New("invalid auth flow transition")

type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeSignup:
		return "signup"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type Step int

const (
	StepEmail Step = iota
	StepCode
)

func (s Step) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepCode:
		return "code"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Flow is the screen state. Email is set only on StepCode.
type Flow struct {
	Mode  Mode
	Step  Step
	Email string
}

func New(mode Mode) Flow {
	return Flow{Mode: mode, Step: StepEmail}
}

// Event is something the screen reports to the flow.
type Event interface {
	isEvent()
}

// CodeSent reports that the backend emailed a code to the address.
type CodeSent string

// ChangeEmail goes back from the code step to edit the address.
type ChangeEmail struct{}

// ToggleMode switches between login and signup on the email step.
type ToggleMode struct{}

func (CodeSent) isEvent()    {}
func (ChangeEmail) isEvent() {}
func (ToggleMode) isEvent()  {}

// Next returns the state after ev. f is never modified.
func (f Flow) Next(ev Event) (Flow, error) {
	switch f.Step {
	case StepEmail:
		switch e := ev.(type) {
		case CodeSent:
			if e == "" {
				return f, fmt.Errorf("%w: code sent to empty email", ErrInvalidTransition)
			}
			return Flow{Mode: f.Mode, Step: StepCode, Email: string(e)}, nil
		case ToggleMode:
			if f.Mode == ModeLogin {
				return New(ModeSignup), nil
			}
			return New(ModeLogin), nil
		}
	case StepCode:
		switch e := ev.(type) {
		case ChangeEmail:
			return New(f.Mode), nil
		case CodeSent:
			// resend
			if string(e) == f.Email {
				return f, nil
			}
		}
	}
	return f, fmt.Errorf("%w: %T on %s step", ErrInvalidTransition, ev, f.Step)
}
