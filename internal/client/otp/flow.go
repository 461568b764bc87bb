package otp

import (
	"errors"
	"regexp"
)

// Step is a password-reset flow state.
type Step string

const (
	// StepOTP awaits the emailed 6-digit code.
	StepOTP Step = "otp"
	// StepReset awaits the new password and its confirmation.
	StepReset Step = "reset"
	// StepDone is the terminal state after a successful password change.
	StepDone Step = "done"
)

var (
	ErrBadCode          = errors.New("OTP must be exactly 6 digits (numbers only).")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters long.")
	ErrPasswordMismatch = errors.New("The two passwords do not match!")
	ErrWrongStep        = errors.New("action not valid in this step")
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// Flow is the otp -> reset -> done machine. Email is recovered from the
// initial request or carried forward by the caller.
type Flow struct {
	step  Step
	email string
	code  string
}

func NewFlow(email string) *Flow {
	return &Flow{step: StepOTP, email: email}
}

func (f *Flow) Step() Step    { return f.step }
func (f *Flow) Email() string { return f.email }
func (f *Flow) Code() string  { return f.code }

// SubmitCode leaves the otp step. The guard rejects anything that is not
// exactly six numeric digits before any network call happens.
func (f *Flow) SubmitCode(code string) error {
	if f.step != StepOTP {
		return ErrWrongStep
	}
	if !codePattern.MatchString(code) {
		return ErrBadCode
	}
	f.code = code
	f.step = StepReset
	return nil
}

// CheckPasswords validates the reset form ahead of submission.
func (f *Flow) CheckPasswords(newPassword, confirmPassword string) error {
	if f.step != StepReset {
		return ErrWrongStep
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// Finish marks the terminal transition after the backend accepted the reset;
// the caller then redirects to login after its fixed delay.
func (f *Flow) Finish() error {
	if f.step != StepReset {
		return ErrWrongStep
	}
	f.step = StepDone
	return nil
}
