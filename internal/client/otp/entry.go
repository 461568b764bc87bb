// Package otp models the password-reset flow: a six-cell one-time-code
// entry, the resend cooldown gate and the otp -> reset state machine.
package otp

import "strings"

// Digits is the fixed code length.
const Digits = 6

// Entry is the six single-character input cells with a moving focus. Typing
// a digit advances focus; backspace on an empty cell moves back; pasting
// distributes characters across the remaining cells.
type Entry struct {
	cells  [Digits]byte
	cursor int
}

// Cursor returns the focused cell index.
func (e *Entry) Cursor() int { return e.cursor }

// Input types one character into the focused cell. Non-digits are ignored,
// mirroring the numeric-only inputs.
func (e *Entry) Input(ch rune) {
	if ch < '0' || ch > '9' {
		return
	}
	e.cells[e.cursor] = byte(ch)
	if e.cursor < Digits-1 {
		e.cursor++
	}
}

// Backspace clears the focused cell, or moves focus back when the cell is
// already empty.
func (e *Entry) Backspace() {
	if e.cells[e.cursor] != 0 {
		e.cells[e.cursor] = 0
		return
	}
	if e.cursor > 0 {
		e.cursor--
		e.cells[e.cursor] = 0
	}
}

// Left and Right move focus without editing.
func (e *Entry) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Entry) Right() {
	if e.cursor < Digits-1 {
		e.cursor++
	}
}

// Paste distributes the digits of s across the cells starting at the focus,
// dropping non-digits and anything past the last cell. Focus lands on the
// cell after the last filled one.
func (e *Entry) Paste(s string) {
	idx := e.cursor
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			continue
		}
		if idx >= Digits {
			break
		}
		e.cells[idx] = byte(ch)
		idx++
	}
	if idx >= Digits {
		idx = Digits - 1
	}
	e.cursor = idx
}

// Value returns the combined code with empty cells skipped.
func (e *Entry) Value() string {
	var b strings.Builder
	for _, c := range e.cells {
		if c != 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Complete reports whether all six cells are filled; the verify action is
// enabled only then.
func (e *Entry) Complete() bool {
	for _, c := range e.cells {
		if c == 0 {
			return false
		}
	}
	return true
}

// Reset clears all cells and returns focus to the first one.
func (e *Entry) Reset() {
	*e = Entry{}
}
