package recovery

import "unicode"

// MinPasswordLength is the blocking minimum for a new password.
// Everything else the strength score measures is advisory.
const MinPasswordLength = 8

// StrengthScore counts how many of four complexity predicates the
// candidate password satisfies: minimum length, mixed case, a digit,
// and a symbol. The score is monotonic in the predicates - adding a
// character class never lowers it.
func StrengthScore(password string) int {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	score := 0
	if len(password) >= MinPasswordLength {
		score++
	}
	if upper && lower {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}
	return score
}

// StrengthLabel maps a score to its display label. Zero renders as
// nothing at all.
func StrengthLabel(score int) string {
	switch score {
	case 1:
		return "Weak"
	case 2:
		return "Fair"
	case 3:
		return "Good"
	case 4:
		return "Strong"
	default:
		return ""
	}
}
