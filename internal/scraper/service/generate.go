package service

import (
	"fmt"
	"math/rand"
	"strings"

	"leadpilot_backend/internal/leads/transport"
	"leadpilot_backend/internal/scraper/registry"
)

type businessTemplate struct {
	name         string
	businessType string
}

var businessTemplates = []businessTemplate{
	{"Restaurant Goldener Löwe", "restaurant"},
	{"Café Sonnenschein", "restaurant"},
	{"Hotel Lindenhof", "hotel"},
	{"Autohaus Weber", "automotive"},
	{"Zahnarztpraxis Dr. Klein", "healthcare"},
	{"Friseursalon Bella", "service"},
	{"Bäckerei Krause", "retail"},
	{"Steuerberatung Möller", "consulting"},
	{"Physiotherapie Vital", "healthcare"},
	{"Immobilien Becker", "real estate"},
	{"Softwarehaus Nord", "software"},
	{"Baubetrieb Hartmann", "construction"},
}

var templateCities = []string{
	"Berlin", "Hamburg", "München", "Köln", "Frankfurt",
	"Hannover", "Dresden", "Leipzig", "Bonn", "Karlsruhe",
}

func slugify(s string) string {
	replacer := strings.NewReplacer(
		" ", "-", "ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss", ".", "",
	)
	return replacer.Replace(strings.ToLower(s))
}

// simulatedLead fabricates one plausible scraped business for the given
// scraper. Randomness stays in this module; the scoring engine only ever
// sees the finished record.
func simulatedLead(r *rand.Rand, def registry.Definition, seq int) transport.CreateLeadRequest {
	template := businessTemplates[r.Intn(len(businessTemplates))]
	city := templateCities[r.Intn(len(templateCities))]
	name := fmt.Sprintf("%s %s", template.name, city)
	slug := slugify(fmt.Sprintf("%s-%d", name, seq))

	req := transport.CreateLeadRequest{
		Name:           name,
		BusinessType:   template.businessType,
		Location:       city,
		Source:         def.SourceTag,
		AutoIntegrated: true,
		QualityScore:   float64(40 + r.Intn(50)),
	}

	// Scraped records are sparse on purpose: contact channels show up
	// with varying probability, like real crawl output.
	if r.Intn(100) < 70 {
		req.Email = fmt.Sprintf("info@%s.de", slug)
	}
	if r.Intn(100) < 60 {
		req.Phone = fmt.Sprintf("+4930%07d", r.Intn(10_000_000))
	}
	if r.Intn(100) < 80 {
		req.Website = fmt.Sprintf("https://%s.de", slug)
	}
	if r.Intn(100) < 40 {
		req.RevenueEstimate = float64((r.Intn(20) + 1) * 50_000)
	}

	return req
}
