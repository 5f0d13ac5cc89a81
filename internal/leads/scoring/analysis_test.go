package scoring

import (
	"reflect"
	"testing"

	"leadpilot_backend/internal/leads/domain"
)

func TestCreateScoringAnalysisFactorsMatch(t *testing.T) {
	lead := domain.Lead{
		Name:         "Gault Millau Bistro",
		BusinessType: "restaurant",
		Email:        "chef@bistro.example",
		Location:     "Köln",
		Source:       "crawl4ai",
		CreatedAt:    scoringNow.AddDate(0, 0, -5),
	}

	analysis := CreateScoringAnalysisAt(lead, scoringNow)
	factors := AnalyzeFactorsAt(lead, scoringNow)

	if !reflect.DeepEqual(analysis.Factors, factors) {
		t.Fatalf("analysis factors %+v do not match computed factors %+v", analysis.Factors, factors)
	}
	if analysis.TotalScore != CalculateLeadScoreAt(lead, scoringNow) {
		t.Fatalf("analysis total %d does not match computed score", analysis.TotalScore)
	}
	if analysis.Category != CategorizeLeadByScore(analysis.TotalScore) {
		t.Fatalf("analysis category %q does not match score %d", analysis.Category.Name, analysis.TotalScore)
	}
}

func TestRecommendationsMissingChannels(t *testing.T) {
	// Name only: all three channels missing, low verification, poor tier.
	analysis := CreateScoringAnalysisAt(domain.Lead{Name: "Sparse Lead"}, scoringNow)

	want := []string{
		"Research email address",
		"Find phone number",
		"Find website",
		"Verify lead data",
		"Research company online",
		"Complete the lead data or archive it",
	}
	if !reflect.DeepEqual(analysis.Recommendations, want) {
		t.Fatalf("recommendations = %v, want %v", analysis.Recommendations, want)
	}
}

func TestRecommendationsSkipPresentChannels(t *testing.T) {
	lead := domain.Lead{
		Name:  "Half Lead",
		Email: "a@b.com",
		Phone: "+49301234567",
	}

	analysis := CreateScoringAnalysisAt(lead, scoringNow)
	for _, rec := range analysis.Recommendations {
		if rec == "Research email address" || rec == "Find phone number" {
			t.Fatalf("got recommendation %q for a channel that is present", rec)
		}
	}
	if analysis.Recommendations[0] != "Find website" {
		t.Fatalf("first recommendation = %q, want the missing website", analysis.Recommendations[0])
	}
}

func TestRecommendationsHotTier(t *testing.T) {
	lead := domain.Lead{
		Name:            "Marriott Frankfurt",
		BusinessType:    "hotel",
		Email:           "sales@marriott.de",
		Phone:           "+4969123456",
		Website:         "https://marriott.de",
		Location:        "Frankfurt",
		Verified:        true,
		RevenueEstimate: 2_000_000,
		Source:          "manual",
		CreatedAt:       scoringNow,
	}

	analysis := CreateScoringAnalysisAt(lead, scoringNow)
	if analysis.Category != Hot {
		t.Fatalf("expected hot lead, got %q (score %d)", analysis.Category.Name, analysis.TotalScore)
	}

	want := []string{
		"Contact immediately - hot lead!",
		"Prepare a personalized pitch",
	}
	if !reflect.DeepEqual(analysis.Recommendations, want) {
		t.Fatalf("recommendations = %v, want %v", analysis.Recommendations, want)
	}
}

func TestStrengthsSkipSource(t *testing.T) {
	// Source is maxed out but must never be reported as a strength.
	lead := domain.Lead{Name: "Source Only", Source: "manual"}

	analysis := CreateScoringAnalysisAt(lead, scoringNow)
	if len(analysis.Strengths) != 0 {
		t.Fatalf("strengths = %v, want none", analysis.Strengths)
	}
}

func TestWeaknessesSkipLocationAndSource(t *testing.T) {
	// Location and source sit at their baselines; only the four evaluated
	// factors may appear.
	analysis := CreateScoringAnalysisAt(domain.Lead{Name: "Weak Lead"}, scoringNow)

	want := []string{
		"Incomplete data",
		"Not verified",
		"Low business value",
	}
	if !reflect.DeepEqual(analysis.Weaknesses, want) {
		t.Fatalf("weaknesses = %v, want %v", analysis.Weaknesses, want)
	}
}

func TestStrengthsFullLead(t *testing.T) {
	lead := domain.Lead{
		Name:            "Sofitel Hamburg",
		BusinessType:    "hotel",
		Email:           "info@sofitel.de",
		Phone:           "+4940123456",
		Website:         "https://sofitel.de",
		Location:        "Hamburg",
		Verified:        true,
		RevenueEstimate: 900_000,
		Source:          "verified",
		CreatedAt:       scoringNow.AddDate(0, 0, -2),
	}

	analysis := CreateScoringAnalysisAt(lead, scoringNow)
	want := []string{
		"Complete contact data",
		"Verified information",
		"High business value",
		"Premium location",
		"Fresh data",
	}
	if !reflect.DeepEqual(analysis.Strengths, want) {
		t.Fatalf("strengths = %v, want %v", analysis.Strengths, want)
	}
	if len(analysis.Weaknesses) != 0 {
		t.Fatalf("weaknesses = %v, want none", analysis.Weaknesses)
	}
}
