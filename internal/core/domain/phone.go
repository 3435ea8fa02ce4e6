package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// canonicalNumber is the single accepted wire format for recipients:
// a plus sign followed by 10 to 15 digits.
var canonicalNumber = regexp.MustCompile(`^\+\d{10,15}$`)

// subscriberDigits is the national number length expected after the
// country prefix.
const subscriberDigits = 9

// PhoneNormalizer canonicalizes raw recipient numbers into the
// +<country><subscriber> form. A normalizer instance only accepts numbers
// from its configured default country; anything carrying a foreign prefix
// is rejected.
type PhoneNormalizer struct {
	prefix string // with leading plus, e.g. "+34"
	bare   string // country code digits only, e.g. "34"
}

// NewPhoneNormalizer returns a normalizer for the given default country
// prefix, e.g. "+34".
func NewPhoneNormalizer(defaultPrefix string) PhoneNormalizer {
	return PhoneNormalizer{
		prefix: defaultPrefix,
		bare:   strings.TrimPrefix(defaultPrefix, "+"),
	}
}

// Normalize validates and canonicalizes a single raw number. A doubled
// country prefix is collapsed, a bare country code gains its plus sign and
// a number without any prefix gets the default one. Already-canonical
// numbers come back unchanged.
func (n PhoneNormalizer) Normalize(raw string) (string, error) {
	num := stripSpaces(raw)
	switch {
	case strings.HasPrefix(num, n.prefix):
		if strings.HasPrefix(num, n.prefix+n.bare) {
			num = n.prefix + num[len(n.prefix)+len(n.bare):]
		}
		if len(num) != len(n.prefix)+subscriberDigits {
			return "", fmt.Errorf("number %q has the wrong length for prefix %s", num, n.prefix)
		}
	case strings.HasPrefix(num, n.bare) && len(num) == len(n.bare)+subscriberDigits:
		num = "+" + num
	case !strings.HasPrefix(num, "+"):
		num = n.prefix + num
	default:
		return "", fmt.Errorf("number %q carries a foreign country prefix", num)
	}
	if !canonicalNumber.MatchString(num) {
		return "", fmt.Errorf("number %q is not a canonical international number", num)
	}
	return num, nil
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
