package form

import "strings"

// MaxPhoneDigits is the length of a North American number without country code
const MaxPhoneDigits = 10

// FormatPhone re-derives the display form of a phone number from its digits:
// "", "(DDD", "(DDD) DDD" or "(DDD) DDD-DDDD". Digits past the tenth are
// dropped. Feeding the output back in yields the same string.
func FormatPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == MaxPhoneDigits {
				break
			}
		}
	}
	digits := b.String()

	switch n := len(digits); {
	case n > 6:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	case n > 3:
		return "(" + digits[:3] + ") " + digits[3:]
	case n > 0:
		return "(" + digits
	default:
		return ""
	}
}
