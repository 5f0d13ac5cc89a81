package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/research/transport"
	"leadpilot_backend/platform/apperr"
	"leadpilot_backend/platform/logger"
)

func seedLead(t *testing.T, repo *repository.Memory) uuid.UUID {
	t.Helper()

	lead, err := repo.Create(context.Background(), repository.CreateParams{
		Name:         "Restaurant Goldener Löwe Berlin",
		BusinessType: "restaurant",
		Location:     "Berlin Mitte",
		Status:       "new",
		Source:       "manual",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return lead.ID
}

func TestAnalyzeProducesReport(t *testing.T) {
	repo := repository.NewMemory()
	id := seedLead(t, repo)
	svc := New(repo, logger.New("test"))

	report, err := svc.Analyze(context.Background(), id)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if report.LeadID != id {
		t.Fatalf("lead id mismatch")
	}
	if report.BusinessAnalysis.BusinessModel != "B2C Service" {
		t.Errorf("business model = %q", report.BusinessAnalysis.BusinessModel)
	}
	if len(report.WebsiteAnalysis.PainPoints) == 0 || len(report.Recommendations.NextActions) == 0 {
		t.Errorf("incomplete report: %+v", report)
	}
	if report.AnalysisScore < 70 || report.AnalysisScore >= 100 {
		t.Errorf("analysis score out of range: %d", report.AnalysisScore)
	}
	found := false
	for _, adv := range report.BusinessAnalysis.CompetitiveAdvantages {
		if adv == "Berlin location" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing location advantage: %v", report.BusinessAnalysis.CompetitiveAdvantages)
	}
}

func TestAnalyzeUnknownLead(t *testing.T) {
	svc := New(repository.NewMemory(), logger.New("test"))

	_, err := svc.Analyze(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDocumentKinds(t *testing.T) {
	repo := repository.NewMemory()
	id := seedLead(t, repo)
	svc := New(repo, logger.New("test"))
	ctx := context.Background()

	kinds := []string{
		transport.DocumentCursorPrompt,
		transport.DocumentProjectProposal,
		transport.DocumentBusinessAnalysis,
	}
	for _, kind := range kinds {
		doc, err := svc.Document(ctx, id, kind)
		if err != nil {
			t.Fatalf("document %s: %v", kind, err)
		}
		if doc.Kind != kind || doc.Format != "markdown" {
			t.Fatalf("document metadata: %+v", doc)
		}
		if !strings.Contains(doc.Content, "Restaurant Goldener Löwe Berlin") {
			t.Fatalf("document %s does not mention the lead", kind)
		}
	}

	_, err := svc.Document(ctx, id, "invoice")
	if apperr.GetKind(err) != apperr.KindBadRequest {
		t.Fatalf("unknown kind: %v, want bad request", err)
	}
}

func TestBusinessAnalysisEmbedsScore(t *testing.T) {
	repo := repository.NewMemory()
	id := seedLead(t, repo)
	svc := New(repo, logger.New("test"))

	doc, err := svc.Document(context.Background(), id, transport.DocumentBusinessAnalysis)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if !strings.Contains(doc.Content, "Lead score:") || !strings.Contains(doc.Content, "/100") {
		t.Fatalf("analysis document missing score section:\n%s", doc.Content)
	}
}
