package tribunal

import "strings"

// NPU layout: NNNNNNN-DD.YYYY.J.TR.OOOO
// sequential number, check digits, filing year, judicial segment,
// court-branch code, originating unit.
const (
	formattedLength = 25
	branchOffset    = 18

	digitsOnlyLength = 20
	digitsOnlyOffset = 14
)

// ParseBranchCode extracts the 2-digit court-branch segment from a case
// identifier. It accepts both the punctuated NPU form and a bare 20-digit
// run, and reports false for anything too short or non-numeric at the
// expected offset. It never fails a request over a malformed key.
func ParseBranchCode(identifier string) (string, bool) {
	id := strings.TrimSpace(identifier)

	if len(id) >= formattedLength && strings.ContainsAny(id, ".-") {
		code := id[branchOffset : branchOffset+2]
		if isDigits(code) {
			return code, true
		}
	}

	digits := stripNonDigits(id)
	if len(digits) == digitsOnlyLength {
		code := digits[digitsOnlyOffset : digitsOnlyOffset+2]
		if isDigits(code) {
			return code, true
		}
	}

	return "", false
}

// ParseFilingYear extracts the 4-digit year segment, reporting false when
// the identifier does not carry one at the expected offset.
func ParseFilingYear(identifier string) (string, bool) {
	digits := stripNonDigits(strings.TrimSpace(identifier))
	if len(digits) != digitsOnlyLength {
		return "", false
	}
	year := digits[9:13]
	if !isDigits(year) {
		return "", false
	}
	return year, true
}

// IsWellFormed reports whether the identifier carries the full 20 digits
// of the standardized case-number format.
func IsWellFormed(identifier string) bool {
	return len(stripNonDigits(strings.TrimSpace(identifier))) == digitsOnlyLength
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
