// Package service produces simulated deep-research reports and sales
// collateral for leads. Everything here is templated mock output; the
// pseudo-random quality sub-scores stay inside this module and never
// influence lead scoring.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadpilot_backend/internal/leads/domain"
	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/leads/scoring"
	"leadpilot_backend/internal/research/transport"
	"leadpilot_backend/platform/apperr"
	"leadpilot_backend/platform/logger"
)

// Service generates research reports over the lead store.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
	rand *rand.Rand
	now  func() time.Time
}

// New creates a new research service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
}

var businessModels = map[string]string{
	"restaurant": "B2C Service",
	"hotel":      "B2C Hospitality",
	"retail":     "B2C Retail",
	"technology": "B2B SaaS",
	"software":   "B2B SaaS",
	"consulting": "B2B Service",
	"healthcare": "B2C Healthcare",
	"education":  "B2C Education",
}

var targetAudiences = map[string][]string{
	"restaurant": {"Local customers", "Tourists", "Business clients", "Families"},
	"hotel":      {"Business travelers", "Tourists", "Event planners", "Families"},
	"retail":     {"Consumers", "Online shoppers", "Local customers"},
	"technology": {"Companies", "IT decision makers", "Startups"},
	"software":   {"Companies", "IT decision makers", "Startups"},
	"consulting": {"Companies", "Executives", "Project managers"},
}

var businessChallenges = map[string][]string{
	"restaurant": {"Digital presence", "Online reservations", "Social media marketing"},
	"hotel":      {"Online booking system", "Review management", "Mobile optimization"},
	"retail":     {"E-commerce", "Omnichannel strategy", "Inventory management"},
	"technology": {"Lead generation", "Content marketing", "Competitive positioning"},
	"software":   {"Lead generation", "Content marketing", "Competitive positioning"},
}

// Analyze produces the simulated deep-research report for a lead.
func (s *Service) Analyze(ctx context.Context, id uuid.UUID) (transport.AnalysisResponse, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.AnalysisResponse{}, err
	}

	s.log.Info("deep research analysis", "leadId", lead.ID, "name", lead.Name)

	businessType := strings.ToLower(lead.BusinessType)

	return transport.AnalysisResponse{
		LeadID:   lead.ID,
		LeadName: lead.Name,
		WebsiteAnalysis: transport.WebsiteAnalysis{
			PainPoints: []string{
				"Outdated design from 2018",
				"No mobile optimization",
				"Slow page loads (4.2s)",
				"No online booking",
				"Weak SEO performance",
			},
			Opportunities: []string{
				"Modern responsive website",
				"Online reservation system",
				"Social media integration",
				"SEO optimization",
				"Performance improvements",
			},
			TechnicalStack: []string{"WordPress", "PHP 7.4", "MySQL", "Apache"},
			DesignQuality:  s.rand.Intn(40) + 30,
			ContentQuality: s.rand.Intn(40) + 40,
			SEOScore:       s.rand.Intn(50) + 20,
		},
		BusinessAnalysis: transport.BusinessAnalysis{
			Industry:              orDefault(lead.BusinessType, "Service"),
			BusinessModel:         lookupOr(businessModels, businessType, "B2C Service"),
			TargetAudience:        lookupOr(targetAudiences, businessType, []string{"Local customers", "Business clients"}),
			CompetitiveAdvantages: competitiveAdvantages(lead),
			Challenges:            lookupOr(businessChallenges, businessType, []string{"Digital transformation", "Online marketing"}),
			MarketPosition:        "Established, but digitally underrepresented",
		},
		Recommendations: transport.Recommendations{
			NextActions: []string{
				"Propose a website modernization",
				"Run an SEO audit",
				"Develop a social media strategy",
				"Implement an online booking system",
			},
			EmailTemplates: []string{
				"Personalized first outreach",
				"Website analysis presentation",
				"Project proposal follow-up",
				"ROI calculation",
			},
			ProposalOutline: []string{
				"Current situation and challenges",
				"Solution approach and technology",
				"Project phases and timeline",
				"Investment and ROI",
				"References and case studies",
			},
			FollowUpStrategy: []string{
				"Day 1: send the analysis report",
				"Day 3: schedule a phone call",
				"Day 7: present the project proposal",
				"Day 14: ask for a decision",
				"Day 21: follow up if needed",
			},
		},
		AnalysisScore: s.rand.Intn(30) + 70,
		LastUpdated:   s.now().Format(time.RFC3339),
	}, nil
}

// Document generates one sales-collateral document for a lead.
func (s *Service) Document(ctx context.Context, id uuid.UUID, kind string) (transport.DocumentResponse, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.DocumentResponse{}, err
	}

	doc := transport.DocumentResponse{
		LeadID:   lead.ID,
		Kind:     kind,
		Format:   "markdown",
		Produced: s.now().Format(time.RFC3339),
	}

	switch kind {
	case transport.DocumentCursorPrompt:
		doc.Title = "Cursor Prompt - " + lead.Name
		doc.Content = cursorPrompt(lead)
	case transport.DocumentProjectProposal:
		doc.Title = "Project Proposal - " + lead.Name
		doc.Content = projectProposal(lead)
	case transport.DocumentBusinessAnalysis:
		doc.Title = "Business Analysis - " + lead.Name
		doc.Content = businessAnalysisDoc(lead)
	default:
		return transport.DocumentResponse{}, apperr.BadRequest("unknown document kind")
	}

	return doc, nil
}

func competitiveAdvantages(lead domain.Lead) []string {
	advantages := []string{
		"Established brand",
		"Central location",
		"Experienced team",
		"Quality products",
	}
	if strings.Contains(strings.ToLower(lead.Location), "berlin") {
		advantages = append(advantages[:3:3], "Berlin location")
	}
	return advantages
}

func cursorPrompt(lead domain.Lead) string {
	businessType := orDefault(lead.BusinessType, "restaurant")
	location := orDefault(lead.Location, "Germany")

	return fmt.Sprintf(`# CURSOR PROMPT - %s

Build a modern marketing website for %s, a %s business in %s.

## Stack
- Next.js with TypeScript
- Tailwind CSS
- Responsive, mobile-first layout

## Requirements
- Hero section with clear value proposition
- Services overview tailored to a %s business
- Contact section with phone, email, and an inquiry form
- Local SEO metadata for %s
- Performance budget: Lighthouse score above 90
`, lead.Name, lead.Name, businessType, location, businessType, location)
}

func projectProposal(lead domain.Lead) string {
	businessType := orDefault(lead.BusinessType, "business")
	location := orDefault(lead.Location, "your area")
	score := scoring.CalculateLeadScore(lead)

	return fmt.Sprintf(`# PROJECT PROPOSAL - %s

## Starting point
Your %s shows strong potential, but needs modern digital foundations to
win and retain customers online. Our assessment rates this opportunity
at %d/100.

## Approach
1. **Responsive website redesign**
   - Modern, mobile-optimized layout
   - Improved user experience
   - Faster page loads

2. **Functional extensions**
   - Online booking and ordering
   - Contact forms and chat
   - Social media integration

3. **SEO and marketing**
   - Search engine optimization
   - Local SEO for %s
   - Content marketing strategy

4. **Analytics and tracking**
   - Conversion tracking
   - Customer behavior analysis

## Timeline
Four phases over 8-10 weeks, from design concept to launch and handover.
`, lead.Name, businessType, score, location)
}

func businessAnalysisDoc(lead domain.Lead) string {
	businessType := strings.ToLower(lead.BusinessType)
	analysis := scoring.CreateScoringAnalysis(lead)

	var b strings.Builder
	fmt.Fprintf(&b, "# BUSINESS ANALYSIS - %s\n\n", lead.Name)
	fmt.Fprintf(&b, "- Industry: %s\n", orDefault(lead.BusinessType, "Service"))
	fmt.Fprintf(&b, "- Business model: %s\n", lookupOr(businessModels, businessType, "B2C Service"))
	fmt.Fprintf(&b, "- Location: %s\n", orDefault(lead.Location, "unknown"))
	fmt.Fprintf(&b, "- Lead score: %d/100 (%s)\n\n", analysis.TotalScore, analysis.Category.Label)

	b.WriteString("## Strengths\n")
	writeList(&b, analysis.Strengths, "No standout strengths identified yet.")

	b.WriteString("\n## Weaknesses\n")
	writeList(&b, analysis.Weaknesses, "No critical weaknesses identified.")

	b.WriteString("\n## Recommended next steps\n")
	writeList(&b, analysis.Recommendations, "Keep the record up to date.")

	return b.String()
}

func writeList(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s\n", empty)
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func lookupOr[V any](m map[string]V, key string, fallback V) V {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
