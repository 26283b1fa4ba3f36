package field

import (
	"testing"
)

// createStripMesh builds a 4-quad strip spanning x 0..400, y 0..100,
// two triangles per quad, with elevation z = x/10.
func createStripMesh() *Walkmesh {
	mesh := &Walkmesh{}
	for k := int16(0); k < 4; k++ {
		x0 := k * 100
		x1 := x0 + 100
		z0 := x0 / 10
		z1 := x1 / 10
		mesh.Triangles = append(mesh.Triangles,
			makeTriangle(x0, 0, z0, x1, 0, z1, x0, 100, z0),
			makeTriangle(x1, 0, z1, x1, 100, z1, x0, 100, z0),
		)
	}
	return mesh
}

func TestGridIndex_MatchesLinearScan(t *testing.T) {
	mesh := createStripMesh()
	grid := NewGridIndex(mesh, 64)

	for x := -30.0; x <= 430; x += 13 {
		for y := -30.0; y <= 130; y += 11 {
			wantTri, wantZ := mesh.Locate(x, y)
			gotTri, gotZ := grid.Locate(x, y)
			if gotTri != wantTri || gotZ != wantZ {
				t.Errorf("(%g, %g): grid (%d, %d), linear (%d, %d)",
					x, y, gotTri, gotZ, wantTri, wantZ)
			}
		}
	}
}

func TestGridIndex_SmallCells(t *testing.T) {
	// Cells much smaller than the triangles, so every triangle spans
	// many cells.
	mesh := createStripMesh()
	grid := NewGridIndex(mesh, 10)

	for x := 0.0; x <= 400; x += 25 {
		for y := 0.0; y <= 100; y += 25 {
			wantTri, wantZ := mesh.Locate(x, y)
			gotTri, gotZ := grid.Locate(x, y)
			if gotTri != wantTri || gotZ != wantZ {
				t.Errorf("(%g, %g): grid (%d, %d), linear (%d, %d)",
					x, y, gotTri, gotZ, wantTri, wantZ)
			}
		}
	}
}

func TestGridIndex_DefaultCellSize(t *testing.T) {
	mesh := createStripMesh()
	grid := NewGridIndex(mesh, 0)

	tri, z := grid.Locate(50, 50)
	wantTri, wantZ := mesh.Locate(50, 50)
	if tri != wantTri || z != wantZ {
		t.Errorf("grid (%d, %d), linear (%d, %d)", tri, z, wantTri, wantZ)
	}
}

func TestGridIndex_OutOfBounds(t *testing.T) {
	grid := NewGridIndex(createStripMesh(), 64)

	tests := []struct {
		x, y float64
	}{
		{-1, 50},
		{401, 50},
		{50, -1},
		{50, 101},
	}

	for _, tc := range tests {
		if tri, z := grid.Locate(tc.x, tc.y); tri != NoTriangle || z != 0 {
			t.Errorf("(%g, %g): expected (NoTriangle, 0), got (%d, %d)", tc.x, tc.y, tri, z)
		}
	}
}

func TestGridIndex_BoundaryCorner(t *testing.T) {
	mesh := createStripMesh()
	grid := NewGridIndex(mesh, 64)

	// The far corner sits exactly on the bounds maximum; it must still
	// resolve, identically to the linear scan.
	wantTri, wantZ := mesh.Locate(400, 100)
	if wantTri == NoTriangle {
		t.Fatal("linear scan should hit the corner vertex")
	}
	gotTri, gotZ := grid.Locate(400, 100)
	if gotTri != wantTri || gotZ != wantZ {
		t.Errorf("corner: grid (%d, %d), linear (%d, %d)", gotTri, gotZ, wantTri, wantZ)
	}
}

func TestGridIndex_TieBreak(t *testing.T) {
	tri := makeTriangle(0, 0, 0, 10, 0, 0, 0, 10, 0)
	mesh := &Walkmesh{Triangles: []Triangle{tri, tri, tri}}
	grid := NewGridIndex(mesh, 4)

	if got, _ := grid.Locate(2, 2); got != 0 {
		t.Errorf("expected lowest index 0, got %d", got)
	}
}

func TestGridIndex_EmptyMesh(t *testing.T) {
	grid := NewGridIndex(&Walkmesh{}, 0)

	if tri, z := grid.Locate(0, 0); tri != NoTriangle || z != 0 {
		t.Errorf("expected (NoTriangle, 0), got (%d, %d)", tri, z)
	}
	if tri, _ := grid.Locate(500, 500); tri != NoTriangle {
		t.Errorf("expected NoTriangle far away, got %d", tri)
	}
}

func TestGridIndex_Bounds(t *testing.T) {
	mesh := createStripMesh()
	grid := NewGridIndex(mesh, 64)

	if grid.Bounds() != ComputeBounds(mesh) {
		t.Error("grid bounds should match ComputeBounds")
	}
}
