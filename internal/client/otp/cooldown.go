package otp

import "time"

// ResendCooldown is how long the resend action stays disabled after a code
// is sent.
const ResendCooldown = 30 * time.Second

// Cooldown gates the resend action. The clock is injected so the countdown
// is testable without sleeping.
type Cooldown struct {
	now      func() time.Time
	deadline time.Time
}

func NewCooldown(now func() time.Time) *Cooldown {
	if now == nil {
		now = time.Now
	}
	return &Cooldown{now: now}
}

// Start arms the 30-second countdown.
func (c *Cooldown) Start() {
	c.deadline = c.now().Add(ResendCooldown)
}

// Ready reports whether the resend action is enabled again.
func (c *Cooldown) Ready() bool {
	return !c.now().Before(c.deadline)
}

// Remaining returns the whole seconds left on the countdown, zero when done.
func (c *Cooldown) Remaining() int {
	d := c.deadline.Sub(c.now())
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
