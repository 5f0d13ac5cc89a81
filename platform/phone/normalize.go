// Package phone normalizes phone numbers on lead input.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the region bare national numbers parse against.
// The scraper sources and the lead base are German.
const DefaultRegion = "DE"

// NormalizeE164 formats input to E.164, treating numbers without a
// country prefix as DefaultRegion numbers.
func NormalizeE164(input string) string {
	return NormalizeE164In(input, DefaultRegion)
}

// NormalizeE164In is NormalizeE164 with an explicit default region.
// Input that does not parse as a valid number is returned trimmed but
// otherwise unchanged, so badly scraped numbers stay visible.
func NormalizeE164In(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
