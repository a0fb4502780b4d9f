package layout

import (
	"errors"
	"math"
	"testing"
)

func TestHipProfileIsWallThicknessRectangle(t *testing.T) {
	dt := 0.25
	p, err := GenerateHipProfile(dt)
	if err != nil {
		t.Fatalf("GenerateHipProfile() error = %v", err)
	}
	want := rectangle(dt, dt)
	if p != want {
		t.Errorf("GenerateHipProfile(%v) = %v, want %v", dt, p, want)
	}
	for i, v := range p {
		if v.Z != 0 {
			t.Errorf("point %d z = %v, want 0", i, v.Z)
		}
	}
}

func TestHipProfileRejectsNonPositive(t *testing.T) {
	for _, dt := range []float64{0, -0.1, math.NaN()} {
		if _, err := GenerateHipProfile(dt); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("GenerateHipProfile(%v) error = %v, want ErrInvalidArgument", dt, err)
		}
	}
}

func TestHipBoundaryPushesEdgesOutward(t *testing.T) {
	f := mustFootprint(t, 10000, 5000)
	hx, hy := f.HalfExtents()
	dt := 0.3

	edges, err := HipBoundary(f.Segments(), dt, DefaultSlopeAngle)
	if err != nil {
		t.Fatalf("HipBoundary() error = %v", err)
	}

	const eps = 1e-12
	// Wall 0 runs along -y, wall 1 along +x, wall 2 along +y, wall 3 along -x.
	if math.Abs(edges[0].Start.Y-(-hy-dt)) > eps || math.Abs(edges[0].End.Y-(-hy-dt)) > eps {
		t.Errorf("edge 0 = %v, want y = %v", edges[0].Segment, -hy-dt)
	}
	if math.Abs(edges[1].Start.X-(hx+dt)) > eps || math.Abs(edges[1].End.X-(hx+dt)) > eps {
		t.Errorf("edge 1 = %v, want x = %v", edges[1].Segment, hx+dt)
	}
	if math.Abs(edges[2].Start.Y-(hy+dt)) > eps || math.Abs(edges[2].End.Y-(hy+dt)) > eps {
		t.Errorf("edge 2 = %v, want y = %v", edges[2].Segment, hy+dt)
	}
	if math.Abs(edges[3].Start.X-(-hx-dt)) > eps || math.Abs(edges[3].End.X-(-hx-dt)) > eps {
		t.Errorf("edge 3 = %v, want x = %v", edges[3].Segment, -hx-dt)
	}

	// The outline stays closed: each edge ends where the next begins.
	for i := range edges {
		next := edges[(i+1)%4]
		if edges[i].End != next.Start {
			t.Errorf("edge %d ends at %v but edge %d starts at %v", i, edges[i].End, (i+1)%4, next.Start)
		}
		if edges[i].Slope != DefaultSlopeAngle {
			t.Errorf("edge %d slope = %v, want %v", i, edges[i].Slope, DefaultSlopeAngle)
		}
	}
}

func TestHipBoundaryRejectsBadSlope(t *testing.T) {
	f := mustFootprint(t, 1000, 1000)
	if _, err := HipBoundary(f.Segments(), 0.1, math.Inf(1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("HipBoundary() error = %v, want ErrInvalidArgument", err)
	}
}
