package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"leadpilot_backend/internal/leads/domain"
	"leadpilot_backend/platform/apperr"
)

func TestMemoryRoundTrip(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateParams{
		Name:         "Bäckerei Schmidt",
		BusinessType: "retail",
		Email:        "info@schmidt.example",
		Location:     "Leipzig",
		Status:       domain.StatusNew,
		Source:       "manual",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("create did not assign an ID")
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != created.Name || got.Status != domain.StatusNew {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	status := domain.StatusContacted
	updated, err := repo.Update(ctx, UpdateParams{ID: created.ID, Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusContacted {
		t.Fatalf("status = %q, want contacted", updated.Status)
	}
	if updated.Name != created.Name {
		t.Fatalf("partial update touched name: %q", updated.Name)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("get after delete: %v, want not found", err)
	}
}

func TestMemoryListFilters(t *testing.T) {
	base := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	repo := NewMemoryWithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	ctx := context.Background()

	seed := []CreateParams{
		{Name: "Hotel Adlon", BusinessType: "hotel", Location: "Berlin", Status: domain.StatusNew, Source: "manual"},
		{Name: "Tech GmbH", BusinessType: "software", Location: "Hamburg", Status: domain.StatusContacted, Source: "google_maps"},
		{Name: "Berlin Bikes", BusinessType: "retail", Location: "Berlin Kreuzberg", Status: domain.StatusNew, Source: "google_maps"},
	}
	for _, params := range seed {
		if _, err := repo.Create(ctx, params); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := repo.List(ctx, ListParams{Search: "berlin"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("search berlin: got %d items (total %d), want 2", len(items), total)
	}
	if !items[0].CreatedAt.After(items[1].CreatedAt) {
		t.Fatal("list is not newest first")
	}

	items, _, err = repo.List(ctx, ListParams{Status: domain.StatusContacted})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Tech GmbH" {
		t.Fatalf("status filter: %+v", items)
	}

	items, total, err = repo.List(ctx, ListParams{Source: "google_maps", Limit: 1})
	if err != nil {
		t.Fatalf("list by source: %v", err)
	}
	if total != 2 || len(items) != 1 {
		t.Fatalf("source filter with limit: got %d of %d, want 1 of 2", len(items), total)
	}
}

func TestMemoryBulkOperations(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	var ids []uuid.UUID
	for _, name := range []string{"A", "B", "C"} {
		lead, err := repo.Create(ctx, CreateParams{Name: name, Status: domain.StatusNew, Source: "manual"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, lead.ID)
	}

	updated, err := repo.UpdateStatusMany(ctx, ids[:2], domain.StatusQualified)
	if err != nil {
		t.Fatalf("bulk status: %v", err)
	}
	if updated != 2 {
		t.Fatalf("bulk status updated %d, want 2", updated)
	}

	deleted, err := repo.DeleteMany(ctx, append(ids, uuid.New()))
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("bulk delete removed %d, want 3", deleted)
	}
}

func TestMemoryCountBySource(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	for _, source := range []string{"google_maps", "google_maps", "manual"} {
		if _, err := repo.Create(ctx, CreateParams{Name: "x", Status: domain.StatusNew, Source: source}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	counts, err := repo.CountBySource(ctx)
	if err != nil {
		t.Fatalf("count by source: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("got %d sources, want 2", len(counts))
	}
	if counts[0].Source != "google_maps" || counts[0].Count != 2 {
		t.Fatalf("top source = %+v, want google_maps x2", counts[0])
	}
	if counts[0].LastAdded == "" {
		t.Fatal("last added not set")
	}
}
