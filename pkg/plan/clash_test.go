package plan

import "testing"

func TestClashesNoneForDefault(t *testing.T) {
	if c := Clashes(Default()); len(c) != 0 {
		t.Errorf("Clashes(Default()) = %v, want none", c)
	}
}

func TestClashesOverlappingWindows(t *testing.T) {
	p := Default()
	w := Window(1)
	w.Offset = 300 // 915 wide, overlaps the centred window
	p.Openings = append(p.Openings, w)

	c := Clashes(p)
	if len(c) != 1 {
		t.Fatalf("Clashes() = %v, want 1 clash", c)
	}
	if c[0].A != 1 || c[0].B != 4 {
		t.Errorf("clash = %+v, want openings 1 and 4", c[0])
	}

	r := Validate(p)
	if !hasFinding(r.Errors, "openings[4]") {
		t.Errorf("Validate() missing clash error: %v", r.Errors)
	}
}

func TestClashesSeparatedWindows(t *testing.T) {
	p := Default()
	p.Openings = []Opening{Window(0), Window(0)}
	p.Openings[0].Offset = -2000
	p.Openings[1].Offset = 2000
	if c := Clashes(p); len(c) != 0 {
		t.Errorf("Clashes() = %v, want none", c)
	}
}

func TestClashesDifferentWallsNeverClash(t *testing.T) {
	p := Default()
	p.Openings = []Opening{Window(1), Window(3)}
	if c := Clashes(p); len(c) != 0 {
		t.Errorf("Clashes() = %v, want none", c)
	}
}

func TestClashesStackedOpenings(t *testing.T) {
	p := Default()
	low := Window(2)
	low.Sill = 0
	high := Window(2)
	high.Sill = 2500
	p.Openings = []Opening{low, high}
	if c := Clashes(p); len(c) != 0 {
		t.Errorf("vertically separated windows clash: %v", c)
	}

	high.Sill = 1000
	p.Openings = []Opening{low, high}
	if c := Clashes(p); len(c) != 1 {
		t.Errorf("vertically overlapping windows: Clashes() = %v, want 1", c)
	}
}
