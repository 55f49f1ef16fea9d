package memory

import (
	"context"
	"testing"
	"time"

	"kisunla-flowsheet/internal/domain/infusions"
	"kisunla-flowsheet/internal/domain/mri"
)

func TestInfusionsRepo_IDAssignment(t *testing.T) {
	repo := NewInfusionsRepo()
	ctx := context.Background()

	first, err := repo.Append(ctx, "s-1", infusions.Infusion{Number: 1})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("empty collection must assign id 1, got %d", first.ID)
	}

	second, err := repo.Append(ctx, "s-1", infusions.Infusion{Number: 2})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("id = %d, want 2", second.ID)
	}

	// max+1 independiente del orden de los IDs existentes.
	if err := repo.Seed(ctx, "s-2", []infusions.Infusion{
		{ID: 3, Number: 3},
		{ID: 21, Number: 21},
		{ID: 7, Number: 7},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec, err := repo.Append(ctx, "s-2", infusions.Infusion{Number: 22})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID != 22 {
		t.Fatalf("id = %d, want max(3,21,7)+1 = 22", rec.ID)
	}
}

func TestInfusionsRepo_NewestFirstAndSnapshot(t *testing.T) {
	repo := NewInfusionsRepo()
	ctx := context.Background()

	a, _ := repo.Append(ctx, "s-1", infusions.Infusion{Number: 1})
	b, _ := repo.Append(ctx, "s-1", infusions.Infusion{Number: 2})

	items, err := repo.List(ctx, "s-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != b.ID || items[1].ID != a.ID {
		t.Fatalf("expected [%d %d], got %+v", b.ID, a.ID, items)
	}

	// Snapshot: mutar la copia no toca el store.
	items[0].Notes = "mutated"
	again, _ := repo.List(ctx, "s-1")
	if again[0].Notes == "mutated" {
		t.Fatalf("List must return a copy, not an alias")
	}

	latest, found, err := repo.Latest(ctx, "s-1")
	if err != nil || !found || latest.ID != b.ID {
		t.Fatalf("latest: id=%d found=%v err=%v", latest.ID, found, err)
	}
}

func TestInfusionsRepo_DuplicateDatesAllowed(t *testing.T) {
	repo := NewInfusionsRepo()
	ctx := context.Background()
	date := time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)

	if _, err := repo.Append(ctx, "s-1", infusions.Infusion{Number: 1, Date: date}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := repo.Append(ctx, "s-1", infusions.Infusion{Number: 2, Date: date}); err != nil {
		t.Fatalf("duplicate date must be allowed: %v", err)
	}
}

func TestInfusionsRepo_UpdateByID(t *testing.T) {
	repo := NewInfusionsRepo()
	ctx := context.Background()

	rec, _ := repo.Append(ctx, "s-1", infusions.Infusion{Number: 1, Notes: "original"})

	rec.Notes = "edited"
	if err := repo.Update(ctx, "s-1", rec); err != nil {
		t.Fatalf("update: %v", err)
	}
	latest, _, _ := repo.Latest(ctx, "s-1")
	if latest.Notes != "edited" {
		t.Fatalf("notes = %q, want edited", latest.Notes)
	}

	if err := repo.Update(ctx, "s-1", infusions.Infusion{ID: 99}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestMRIRepo_LatestOnEmpty(t *testing.T) {
	repo := NewMRIRepo()

	_, found, err := repo.Latest(context.Background(), "s-empty")
	if err != nil {
		t.Fatalf("latest on empty must not error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false")
	}

	items, err := repo.List(context.Background(), "s-empty")
	if err != nil || len(items) != 0 {
		t.Fatalf("empty list: items=%v err=%v", items, err)
	}
}

func TestMRIRepo_SessionIsolation(t *testing.T) {
	repo := NewMRIRepo()
	ctx := context.Background()

	if _, err := repo.Append(ctx, "s-1", mri.Record{Type: mri.TypeBaseline}); err != nil {
		t.Fatalf("append: %v", err)
	}

	items, err := repo.List(ctx, "s-2")
	if err != nil || len(items) != 0 {
		t.Fatalf("sessions must not share records: items=%v err=%v", items, err)
	}

	// Cada sesión arranca su numeración en 1.
	rec, err := repo.Append(ctx, "s-2", mri.Record{Type: mri.TypeSafety})
	if err != nil || rec.ID != 1 {
		t.Fatalf("id in fresh session = %d (err=%v), want 1", rec.ID, err)
	}
}

func TestProfileRepo_LazyDefaults(t *testing.T) {
	repo := NewProfileRepo()
	ctx := context.Background()

	p, err := repo.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.SessionID != "s-1" || p.ApoE4Status == "" {
		t.Fatalf("expected defaults on first access, got %+v", p)
	}

	p.CMSRegistryID = "123445"
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}
	again, _ := repo.Get(ctx, "s-1")
	if again.CMSRegistryID != "123445" {
		t.Fatalf("profile not persisted: %+v", again)
	}
}
