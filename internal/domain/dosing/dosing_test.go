package dosing

import "testing"

func TestDoseForInfusionNumber_Titration(t *testing.T) {
	cases := []struct {
		n    int
		want float64
	}{
		{1, 350},
		{2, 700},
		{3, 1050},
		{4, 1400},
		{5, 1400},
		{21, 1400},
		{1000, 1400}, // sin tope superior
	}

	for _, c := range cases {
		got, err := DoseForInfusionNumber(c.n)
		if err != nil {
			t.Fatalf("DoseForInfusionNumber(%d): unexpected error: %v", c.n, err)
		}
		if got != c.want {
			t.Fatalf("DoseForInfusionNumber(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestDoseForInfusionNumber_RejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		if _, err := DoseForInfusionNumber(n); err != ErrInvalidInput {
			t.Fatalf("DoseForInfusionNumber(%d): expected ErrInvalidInput, got %v", n, err)
		}
	}
}

func TestVolumeForDose(t *testing.T) {
	cases := []struct {
		doseMg float64
		want   float64
	}{
		{350, 20.0},
		{700, 40.0},
		{1050, 60.0},
		{1400, 80.0},
	}

	for _, c := range cases {
		got, err := VolumeForDose(c.doseMg)
		if err != nil {
			t.Fatalf("VolumeForDose(%v): unexpected error: %v", c.doseMg, err)
		}
		if got != c.want {
			t.Fatalf("VolumeForDose(%v) = %v, want %v", c.doseMg, got, c.want)
		}
	}
}

func TestVolumeForDose_MatchesFormula(t *testing.T) {
	for _, d := range []float64{1, 175, 350, 525, 1400, 2800} {
		got, err := VolumeForDose(d)
		if err != nil {
			t.Fatalf("VolumeForDose(%v): unexpected error: %v", d, err)
		}
		if want := d / 350 * 20; got != want {
			t.Fatalf("VolumeForDose(%v) = %v, want %v", d, got, want)
		}
	}
}

func TestVolumeForDose_RejectsNonPositive(t *testing.T) {
	for _, d := range []float64{0, -1, -350} {
		if _, err := VolumeForDose(d); err != ErrInvalidInput {
			t.Fatalf("VolumeForDose(%v): expected ErrInvalidInput, got %v", d, err)
		}
	}
}

func TestSchedule(t *testing.T) {
	steps := Schedule()
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}
	if steps[3].DoseMg != MaintenanceDoseMg {
		t.Fatalf("last step should be maintenance (%v), got %v", MaintenanceDoseMg, steps[3].DoseMg)
	}
}
