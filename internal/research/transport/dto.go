// Package transport defines response DTOs for the research API.
package transport

import "github.com/google/uuid"

// WebsiteAnalysis is the simulated website audit of a lead.
type WebsiteAnalysis struct {
	PainPoints     []string `json:"painPoints"`
	Opportunities  []string `json:"opportunities"`
	TechnicalStack []string `json:"technicalStack"`
	DesignQuality  int      `json:"designQuality"`
	ContentQuality int      `json:"contentQuality"`
	SEOScore       int      `json:"seoScore"`
}

// BusinessAnalysis is the simulated market assessment of a lead.
type BusinessAnalysis struct {
	Industry              string   `json:"industry"`
	BusinessModel         string   `json:"businessModel"`
	TargetAudience        []string `json:"targetAudience"`
	CompetitiveAdvantages []string `json:"competitiveAdvantages"`
	Challenges            []string `json:"challenges"`
	MarketPosition        string   `json:"marketPosition"`
}

// Recommendations lists suggested sales moves derived from the analysis.
type Recommendations struct {
	NextActions      []string `json:"nextActions"`
	EmailTemplates   []string `json:"emailTemplates"`
	ProposalOutline  []string `json:"proposalOutline"`
	FollowUpStrategy []string `json:"followUpStrategy"`
}

// AnalysisResponse is the full deep-research report for one lead.
type AnalysisResponse struct {
	LeadID           uuid.UUID        `json:"leadId"`
	LeadName         string           `json:"leadName"`
	WebsiteAnalysis  WebsiteAnalysis  `json:"websiteAnalysis"`
	BusinessAnalysis BusinessAnalysis `json:"businessAnalysis"`
	Recommendations  Recommendations  `json:"aiRecommendations"`
	AnalysisScore    int              `json:"analysisScore"`
	LastUpdated      string           `json:"lastUpdated"`
}

// Document kinds.
const (
	DocumentCursorPrompt     = "cursor_prompt"
	DocumentProjectProposal  = "project_proposal"
	DocumentBusinessAnalysis = "business_analysis"
)

// DocumentResponse is one generated sales-collateral document.
type DocumentResponse struct {
	LeadID   uuid.UUID `json:"leadId"`
	Kind     string    `json:"kind"`
	Title    string    `json:"title"`
	Format   string    `json:"format"`
	Content  string    `json:"content"`
	Produced string    `json:"produced"`
}
