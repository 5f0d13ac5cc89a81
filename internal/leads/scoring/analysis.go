package scoring

import (
	"strings"
	"time"

	"leadpilot_backend/internal/leads/domain"
)

// Category is a discrete score band used for pipeline triage.
type Category struct {
	Name     string `json:"category"`
	Priority int    `json:"priority"`
	Color    string `json:"color"`
	Label    string `json:"label"`
}

var (
	Hot  = Category{Name: "hot", Priority: 1, Color: "#ef4444", Label: "Hot Lead"}
	Warm = Category{Name: "warm", Priority: 2, Color: "#f97316", Label: "Warm Lead"}
	Cold = Category{Name: "cold", Priority: 3, Color: "#3b82f6", Label: "Cold Lead"}
	Poor = Category{Name: "poor", Priority: 4, Color: "#6b7280", Label: "Poor Lead"}
)

// CategorizeLeadByScore maps a total score to its band. Boundaries are
// inclusive at the lower edge: 80 is hot, 60 is warm, 40 is cold.
func CategorizeLeadByScore(score int) Category {
	switch {
	case score >= 80:
		return Hot
	case score >= 60:
		return Warm
	case score >= 40:
		return Cold
	default:
		return Poor
	}
}

// Analysis is the full scoring report for a single lead.
type Analysis struct {
	TotalScore      int      `json:"totalScore"`
	Category        Category `json:"category"`
	Factors         Factors  `json:"factors"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
}

// CreateScoringAnalysis builds the full report: factors, total, band,
// and the derived recommendation/strength/weakness lists.
func CreateScoringAnalysis(lead domain.Lead) Analysis {
	return CreateScoringAnalysisAt(lead, time.Now())
}

// CreateScoringAnalysisAt is CreateScoringAnalysis with a pinned clock.
func CreateScoringAnalysisAt(lead domain.Lead, now time.Time) Analysis {
	factors := AnalyzeFactorsAt(lead, now)
	total := CalculateLeadScoreAt(lead, now)

	return Analysis{
		TotalScore:      total,
		Category:        CategorizeLeadByScore(total),
		Factors:         factors,
		Recommendations: recommendations(lead, factors, total),
		Strengths:       strengths(factors),
		Weaknesses:      weaknesses(factors),
	}
}

// recommendations lists concrete next actions, ordered from data fixes
// to outreach advice for the score band.
func recommendations(lead domain.Lead, factors Factors, total int) []string {
	recs := []string{}

	if factors.Completeness < 70 {
		if strings.TrimSpace(lead.Email) == "" {
			recs = append(recs, "Research email address")
		}
		if strings.TrimSpace(lead.Phone) == "" {
			recs = append(recs, "Find phone number")
		}
		if strings.TrimSpace(lead.Website) == "" {
			recs = append(recs, "Find website")
		}
	}

	if factors.Verification < 50 {
		recs = append(recs,
			"Verify lead data",
			"Research company online",
		)
	}

	switch {
	case total >= 80:
		recs = append(recs,
			"Contact immediately - hot lead!",
			"Prepare a personalized pitch",
		)
	case total >= 60:
		recs = append(recs,
			"Contact within the next 2-3 days",
			"Gather additional information",
		)
	case total >= 40:
		recs = append(recs,
			"Continue qualifying the lead",
			"Start automated follow-up sequence",
		)
	default:
		recs = append(recs, "Complete the lead data or archive it")
	}

	return recs
}

// strengths and weaknesses use different factor sets on purpose: source
// is never a strength, and location and source are never weaknesses.
func strengths(factors Factors) []string {
	out := []string{}

	if factors.Completeness >= 80 {
		out = append(out, "Complete contact data")
	}
	if factors.Verification >= 70 {
		out = append(out, "Verified information")
	}
	if factors.BusinessValue >= 70 {
		out = append(out, "High business value")
	}
	if factors.Location >= 70 {
		out = append(out, "Premium location")
	}
	if factors.Freshness >= 80 {
		out = append(out, "Fresh data")
	}

	return out
}

func weaknesses(factors Factors) []string {
	out := []string{}

	if factors.Completeness < 50 {
		out = append(out, "Incomplete data")
	}
	if factors.Verification < 40 {
		out = append(out, "Not verified")
	}
	if factors.BusinessValue < 50 {
		out = append(out, "Low business value")
	}
	if factors.Freshness < 30 {
		out = append(out, "Outdated data")
	}

	return out
}
