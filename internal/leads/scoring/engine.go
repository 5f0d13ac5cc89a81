// Package scoring implements the deterministic lead scoring engine.
//
// The engine converts a lead record into a 0-100 priority score, a discrete
// category, and a qualitative analysis. It is pure: it never mutates its
// input, performs no I/O, and is safe to call concurrently. The only
// environmental input is the clock, used to age the record for the
// freshness factor; the At variants accept an explicit instant so callers
// (and tests) can pin it.
package scoring

import (
	"math"
	"strings"
	"time"

	"leadpilot_backend/internal/leads/domain"
)

// Factors are the six independent sub-scores, each clamped to [0,100],
// that combine into the total score.
type Factors struct {
	Completeness  float64 `json:"completeness"`
	Verification  float64 `json:"verification"`
	BusinessValue float64 `json:"businessValue"`
	Location      float64 `json:"location"`
	Source        float64 `json:"source"`
	Freshness     float64 `json:"freshness"`
}

// Factor weights. They sum to 1.0, so the weighted sum of clamped factors
// cannot exceed 100 and the final clamp is only a safety net.
const (
	weightCompleteness  = 0.25
	weightVerification  = 0.20
	weightBusinessValue = 0.25
	weightLocation      = 0.10
	weightSource        = 0.10
	weightFreshness     = 0.10
)

// Substring vocabularies. Order matters for the source list: the first
// match wins.
var (
	highValueTypes = []string{
		"restaurant", "hotel", "retail", "technology", "software",
		"consulting", "finance", "healthcare", "real estate", "automotive",
	}

	mediumValueTypes = []string{
		"service", "education", "manufacturing", "construction", "transport",
	}

	premiumBrands = []string{
		"hyatt", "hilton", "marriott", "sofitel", "adina",
		"mercedes", "bmw", "audi", "porsche",
		"michelin", "gault", "millau",
	}

	premiumCities = []string{
		"berlin", "münchen", "hamburg", "köln", "frankfurt",
		"düsseldorf", "stuttgart", "dortmund", "essen", "leipzig",
	}

	goodCities = []string{
		"hannover", "dresden", "nürnberg", "duisburg", "bochum",
		"wuppertal", "bielefeld", "bonn", "münster", "karlsruhe",
	}

	premiumDistricts = []string{
		"mitte", "charlottenburg", "wilmersdorf", "schöneberg",
		"prenzlauer berg", "friedrichshain", "kreuzberg",
	}
)

// sourceBonuses is checked in order; the first matching substring wins.
var sourceBonuses = []struct {
	token string
	bonus float64
}{
	{"working_lead_scraper", 30},
	{"crawl4ai", 25},
	{"playwright", 20},
	{"google_maps", 15},
	{"manual", 40},
	{"verified", 40},
}

// CalculateLeadScore computes the weighted total score for a lead,
// rounded to the nearest integer in [0,100].
func CalculateLeadScore(lead domain.Lead) int {
	return CalculateLeadScoreAt(lead, time.Now())
}

// CalculateLeadScoreAt is CalculateLeadScore with a pinned clock.
func CalculateLeadScoreAt(lead domain.Lead, now time.Time) int {
	factors := AnalyzeFactorsAt(lead, now)

	score := factors.Completeness*weightCompleteness +
		factors.Verification*weightVerification +
		factors.BusinessValue*weightBusinessValue +
		factors.Location*weightLocation +
		factors.Source*weightSource +
		factors.Freshness*weightFreshness

	return int(math.Round(math.Min(score, 100)))
}

// AnalyzeFactors computes the six sub-scores for a lead.
func AnalyzeFactors(lead domain.Lead) Factors {
	return AnalyzeFactorsAt(lead, time.Now())
}

// AnalyzeFactorsAt is AnalyzeFactors with a pinned clock.
func AnalyzeFactorsAt(lead domain.Lead, now time.Time) Factors {
	return Factors{
		Completeness:  completenessScore(lead),
		Verification:  verificationScore(lead),
		BusinessValue: businessValueScore(lead),
		Location:      locationScore(lead),
		Source:        sourceScore(lead),
		Freshness:     freshnessScore(lead, now),
	}
}

// completenessScore awards points for each present, plausibly valid field.
func completenessScore(lead domain.Lead) float64 {
	score := 0.0

	if strings.TrimSpace(lead.Name) != "" {
		score += 20
	}
	if strings.Contains(lead.Email, "@") {
		score += 25
	}
	if strings.TrimSpace(lead.Phone) != "" {
		score += 20
	}
	if strings.Contains(lead.Website, "http") || strings.Contains(lead.Website, ".") {
		score += 20
	}
	if strings.TrimSpace(lead.Location) != "" {
		score += 10
	}
	if strings.TrimSpace(lead.BusinessType) != "" {
		score += 5
	}

	return math.Min(score, 100)
}

// verificationScore rates how trustworthy the record is. A verified flag
// provides the base; a positive AI score adds up to 20 points; the quality
// score acts as a floor, not an addend.
func verificationScore(lead domain.Lead) float64 {
	score := 0.0

	if lead.Verified {
		score += 80
	}

	if lead.AIScore > 0 {
		score += math.Min(lead.AIScore/10, 20)
	}

	if lead.QualityScore > 0 {
		score = math.Max(score, lead.QualityScore)
	}

	return math.Min(score, 100)
}

func businessValueScore(lead domain.Lead) float64 {
	score := 40.0

	businessType := strings.ToLower(lead.BusinessType)
	if containsAny(businessType, highValueTypes) {
		score += 40
	} else if containsAny(businessType, mediumValueTypes) {
		score += 20
	}

	if lead.RevenueEstimate > 0 {
		switch {
		case lead.RevenueEstimate > 1_000_000:
			score += 20
		case lead.RevenueEstimate > 500_000:
			score += 15
		case lead.RevenueEstimate > 100_000:
			score += 10
		default:
			score += 5
		}
	}

	if containsAny(strings.ToLower(lead.Name), premiumBrands) {
		score += 20
	}

	return math.Min(score, 100)
}

// locationScore rates the lead's market. City tiers are mutually exclusive
// (premium checked first); the district bonus stacks with either tier.
func locationScore(lead domain.Lead) float64 {
	score := 50.0

	location := strings.ToLower(lead.Location)
	if containsAny(location, premiumCities) {
		score += 40
	} else if containsAny(location, goodCities) {
		score += 20
	}

	if containsAny(location, premiumDistricts) {
		score += 10
	}

	return math.Min(score, 100)
}

func sourceScore(lead domain.Lead) float64 {
	score := 50.0

	source := strings.ToLower(lead.Source)
	for _, entry := range sourceBonuses {
		if strings.Contains(source, entry.token) {
			score += entry.bonus
			break
		}
	}

	if lead.AutoIntegrated {
		score += 10
	}

	return math.Min(score, 100)
}

// freshnessScore decays in fixed steps with record age. An unknown
// creation time scores the neutral default of 50.
func freshnessScore(lead domain.Lead, now time.Time) float64 {
	if lead.CreatedAt.IsZero() {
		return 50
	}

	ageDays := now.Sub(lead.CreatedAt).Hours() / 24

	switch {
	case ageDays <= 1:
		return 100
	case ageDays <= 7:
		return 90
	case ageDays <= 30:
		return 70
	case ageDays <= 90:
		return 50
	case ageDays <= 180:
		return 30
	default:
		return 10
	}
}

func containsAny(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}
