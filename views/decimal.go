package views

import "strconv"

// ParseScore validates an experience sub-score stored as free text. Only
// plain unsigned decimals (digits, optional fractional part) are accepted;
// anything else ("n/a", "", "4.5/5") is absent, never zero.
func ParseScore(s string) (float64, bool) {
	if !validDecimal(s, false) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseCoordinate validates a latitude/longitude value stored as text.
// Accepts an optional leading sign, digits, and an optional fractional part.
func ParseCoordinate(s string) (float64, bool) {
	if !validDecimal(s, true) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// validDecimal checks ^[0-9]+(\.[0-9]+)?$ with an optional sign when allowSign
// is set. Written out by hand so the rule is explicit rather than buried in a
// query string.
func validDecimal(s string, allowSign bool) bool {
	if s == "" {
		return false
	}
	i := 0
	if allowSign && (s[0] == '+' || s[0] == '-') {
		i = 1
	}
	digits := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digits++
	}
	if digits == 0 {
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	frac := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		frac++
	}
	return frac > 0 && i == len(s)
}
