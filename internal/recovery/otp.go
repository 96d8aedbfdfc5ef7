package recovery

import "strings"

// CodeLength is the number of digits in an OTP.
const CodeLength = 6

// DigitCells is the input model for the verification code: six
// independently addressable single-digit cells plus an explicit focus
// index. Keeping focus as data (instead of imperative cursor moves)
// makes the distribution rules - auto-advance, backspace, paste -
// testable without a rendered UI.
type DigitCells struct {
	cells [CodeLength]byte // '0'..'9', or 0 for empty
	focus int
}

// Focus returns the index of the focused cell.
func (c *DigitCells) Focus() int { return c.focus }

// At returns the digit in cell i, if any.
func (c *DigitCells) At(i int) (byte, bool) {
	if i < 0 || i >= CodeLength || c.cells[i] == 0 {
		return 0, false
	}
	return c.cells[i], true
}

// Type handles a single keystroke at the focused cell. Only digit
// runes mutate state; anything else is rejected and reported false.
// Typing in cell i (i < 5) auto-advances focus to i+1.
func (c *DigitCells) Type(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	c.cells[c.focus] = byte(r)
	if c.focus < CodeLength-1 {
		c.focus++
	}
	return true
}

// Backspace clears the focused cell if it holds a digit. On an empty
// cell it only moves focus left; the previous value stays for the user
// to clear explicitly on the next keystroke.
func (c *DigitCells) Backspace() {
	if c.cells[c.focus] != 0 {
		c.cells[c.focus] = 0
		return
	}
	if c.focus > 0 {
		c.focus--
	}
}

// Paste distributes an arbitrary pasted string: digit characters are
// extracted in order, truncated to six, and written left-to-right from
// cell 0. Focus lands on min(len(digits), 5).
func (c *DigitCells) Paste(s string) {
	var digits []byte
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
			if len(digits) == CodeLength {
				break
			}
		}
	}
	if len(digits) == 0 {
		return
	}
	c.cells = [CodeLength]byte{}
	copy(c.cells[:], digits)
	c.focus = len(digits)
	if c.focus > CodeLength-1 {
		c.focus = CodeLength - 1
	}
}

// Clear empties every cell and refocuses cell 0.
func (c *DigitCells) Clear() {
	c.cells = [CodeLength]byte{}
	c.focus = 0
}

// Complete reports whether all six cells hold a digit.
func (c *DigitCells) Complete() bool {
	for _, b := range c.cells {
		if b == 0 {
			return false
		}
	}
	return true
}

// Code concatenates the entered digits in cell order, skipping empty
// cells. Callers gate on Complete before treating it as a code.
func (c *DigitCells) Code() string {
	var b strings.Builder
	for _, d := range c.cells {
		if d != 0 {
			b.WriteByte(d)
		}
	}
	return b.String()
}
