// Package contact defines the contact value type and the phone number
// canonicalization applied at construction time.
package contact

import (
	"fmt"
	"strings"
)

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// New builds a Contact with the phone number normalized. Email uniqueness
// is enforced by the storage layer, not here.
func New(name, email, phone string) Contact {
	return Contact{
		Name:  name,
		Email: email,
		Phone: NormalizePhone(phone),
	}
}

// NormalizePhone canonicalizes a US phone number to +1-AAA-BBB-CCCC.
// All non-digit characters are stripped first; exactly 10 digits are
// formatted directly, 11 digits with a leading 1 drop the country code.
// Any other digit count returns the input verbatim, so numbers that
// cannot be normalized are stored as given.
func NormalizePhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case len(digits) == 10:
		return formatNANP(digits)
	case len(digits) == 11 && digits[0] == '1':
		return formatNANP(digits[1:])
	default:
		return raw
	}
}

func formatNANP(digits string) string {
	return fmt.Sprintf("+1-%s-%s-%s", digits[:3], digits[3:6], digits[6:])
}
