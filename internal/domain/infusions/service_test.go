package infusions

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	bySession map[string][]Infusion
}

func newTestRepo() *testRepo {
	return &testRepo{bySession: map[string][]Infusion{}}
}

func (r *testRepo) Append(ctx context.Context, sessionID string, in Infusion) (Infusion, error) {
	recs := r.bySession[sessionID]

	maxID := 0
	for _, rec := range recs {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}
	in.ID = maxID + 1

	r.bySession[sessionID] = append([]Infusion{in}, recs...)
	return in, nil
}

func (r *testRepo) List(ctx context.Context, sessionID string) ([]Infusion, error) {
	out := make([]Infusion, len(r.bySession[sessionID]))
	copy(out, r.bySession[sessionID])
	return out, nil
}

func (r *testRepo) Latest(ctx context.Context, sessionID string) (Infusion, bool, error) {
	recs := r.bySession[sessionID]
	if len(recs) == 0 {
		return Infusion{}, false, nil
	}
	return recs[0], true, nil
}

func (r *testRepo) Update(ctx context.Context, sessionID string, rec Infusion) error {
	recs := r.bySession[sessionID]
	for i := range recs {
		if recs[i].ID == rec.ID {
			recs[i] = rec
			return nil
		}
	}
	return errRepoNotFound
}

func (r *testRepo) Seed(ctx context.Context, sessionID string, recs []Infusion) error {
	out := make([]Infusion, len(recs))
	copy(out, recs)
	r.bySession[sessionID] = out
	return nil
}

// -------------------------
// Tests
// -------------------------

func fixedNow() time.Time {
	return time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.now = fixedNow
	return svc
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestAppend_ComputesDoseAndVolume(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	rec, err := svc.Append(ctx, "s-1", AppendInput{
		Number: 1,
		Date:   mustDate(t, "2025-01-01"),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("first record should get id 1, got %d", rec.ID)
	}
	if rec.DoseMg != 350 || rec.VolumeMl != 20.0 {
		t.Fatalf("infusion 1: dose/volume = %v/%v, want 350/20", rec.DoseMg, rec.VolumeMl)
	}
	if rec.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", rec.Status)
	}

	second, err := svc.Append(ctx, "s-1", AppendInput{
		Number: 2,
		Date:   mustDate(t, "2025-01-15"),
	})
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if second.ID != 2 || second.DoseMg != 700 || second.VolumeMl != 40.0 {
		t.Fatalf("infusion 2: id/dose/volume = %d/%v/%v, want 2/700/40", second.ID, second.DoseMg, second.VolumeMl)
	}

	// El más reciente queda primero.
	items, err := svc.List(ctx, "s-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", items)
	}

	latest, found, err := svc.Latest(ctx, "s-1")
	if err != nil || !found {
		t.Fatalf("latest: found=%v err=%v", found, err)
	}
	if latest.ID != second.ID {
		t.Fatalf("latest id = %d, want %d", latest.ID, second.ID)
	}
}

func TestAppend_MaintenanceDose(t *testing.T) {
	svc := newTestService(newTestRepo())

	for _, n := range []int{4, 7, 21} {
		rec, err := svc.Append(context.Background(), "s-1", AppendInput{
			Number: n,
			Date:   mustDate(t, "2025-08-27"),
		})
		if err != nil {
			t.Fatalf("append #%d: %v", n, err)
		}
		if rec.DoseMg != 1400 || rec.VolumeMl != 80.0 {
			t.Fatalf("infusion %d: dose/volume = %v/%v, want 1400/80", n, rec.DoseMg, rec.VolumeMl)
		}
	}
}

func TestAppend_ManualDoseOverride(t *testing.T) {
	svc := newTestService(newTestRepo())

	// Override manual: la dosis no se valida contra Number, pero el
	// volumen sí se deriva de la dosis efectiva.
	rec, err := svc.Append(context.Background(), "s-1", AppendInput{
		Number: 17,
		Date:   mustDate(t, "2025-05-05"),
		DoseMg: 1050,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.DoseMg != 1050 || rec.VolumeMl != 60.0 {
		t.Fatalf("dose/volume = %v/%v, want 1050/60", rec.DoseMg, rec.VolumeMl)
	}
}

func TestAppend_RejectsInvalidInput(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()
	date := mustDate(t, "2025-01-01")

	cases := []struct {
		name      string
		sessionID string
		in        AppendInput
	}{
		{"empty session", "", AppendInput{Number: 1, Date: date}},
		{"number zero", "s-1", AppendInput{Number: 0, Date: date}},
		{"number negative", "s-1", AppendInput{Number: -3, Date: date}},
		{"zero date", "s-1", AppendInput{Number: 1}},
		{"negative dose", "s-1", AppendInput{Number: 1, Date: date, DoseMg: -10}},
	}

	for _, c := range cases {
		if _, err := svc.Append(ctx, c.sessionID, c.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestUpdate_ReplacesByID(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Append(ctx, "s-1", AppendInput{Number: 3, Date: mustDate(t, "2025-05-05")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	updated, err := svc.Update(ctx, "s-1", created.ID, AppendInput{
		Number: 3,
		Date:   mustDate(t, "2025-05-06"),
		Notes:  "date corrected",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update must keep the id (%d), got %d", created.ID, updated.ID)
	}
	if updated.Notes != "date corrected" {
		t.Fatalf("notes = %q", updated.Notes)
	}

	if _, err := svc.Update(ctx, "s-1", 99, AppendInput{Number: 3, Date: mustDate(t, "2025-05-06")}); err == nil {
		t.Fatalf("expected error updating unknown id")
	}
}
