package book

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Phone is a validated phone number holding 10 to 12 digits and nothing else.
// The zero value is not a valid Phone; use NewPhone.
type Phone struct {
	value string
}

// NormalizePhone trims surrounding whitespace and removes the formatting
// characters + ( ) - and spaces. It does not validate.
func NormalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(config.PhoneStripChars, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

// NewPhone normalizes raw and validates the result.
// The length rule is checked before the digits rule.
func NewPhone(raw string) (Phone, error) {
	normalized := NormalizePhone(raw)

	if n := len(normalized); n < config.PhoneMinDigits || n > config.PhoneMaxDigits {
		return Phone{}, fmt.Errorf("%w: %q %s", ErrInvalidPhoneFormat, raw, config.ErrPhoneLength)
	}
	for i := 0; i < len(normalized); i++ {
		if normalized[i] < '0' || normalized[i] > '9' {
			return Phone{}, fmt.Errorf("%w: %q %s", ErrInvalidPhoneFormat, raw, config.ErrPhoneDigits)
		}
	}
	return Phone{value: normalized}, nil
}

// String returns the normalized digits.
func (p Phone) String() string {
	return p.value
}

func joinPhones(phones []Phone) string {
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.value
	}
	return strings.Join(values, config.PhoneSeparator)
}
