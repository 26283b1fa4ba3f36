package field

import (
	"bytes"
	"testing"
)

func TestPositionUpdate_Size(t *testing.T) {
	u := PositionUpdate{}
	if u.Size() != 14 {
		t.Errorf("expected size 14, got %d", u.Size())
	}
	if len(u.Encode()) != u.Size() {
		t.Errorf("encoded length %d does not match Size()", len(u.Encode()))
	}
}

func TestPositionUpdate_Encode(t *testing.T) {
	u := PositionUpdate{X: 0x01020304, Y: -2, Z: 70000, Triangle: 5}

	got := u.Encode()
	want := []byte{
		0x04, 0x03, 0x02, 0x01, // x
		0xFE, 0xFF, 0xFF, 0xFF, // y, two's complement
		0x70, 0x11, 0x01, 0x00, // z = 70000
		0x05, 0x00, // triangle
	}
	if !bytes.Equal(got, want) {
		t.Errorf("expected % X, got % X", want, got)
	}
}

func TestPositionUpdate_EncodeOffMesh(t *testing.T) {
	u := PositionUpdate{X: 1, Y: 2, Z: 3, Triangle: NoTriangle}

	got := u.Encode()
	if got[12] != 0xFF || got[13] != 0xFF {
		t.Errorf("expected triangle bytes FF FF, got %02X %02X", got[12], got[13])
	}
	if u.OnMesh() {
		t.Error("OnMesh should be false for NoTriangle")
	}
}

func TestPlaceable_Snap_OnMesh(t *testing.T) {
	// Plane z = x + 2y, so the snap target is easy to predict.
	mesh := &Walkmesh{Triangles: []Triangle{
		makeTriangle(0, 0, 0, 100, 0, 100, 0, 100, 200),
	}}

	p := Placeable{X: 25, Y: 25, Z: 999, Radius: 24}
	u := p.Snap(mesh)

	if u.Triangle != 0 {
		t.Fatalf("expected triangle 0, got %d", u.Triangle)
	}
	if u.Z != 75 {
		t.Errorf("expected snapped z 75, got %d", u.Z)
	}
	if u.X != 25 || u.Y != 25 {
		t.Errorf("x/y should pass through, got (%d, %d)", u.X, u.Y)
	}
	if !u.OnMesh() {
		t.Error("OnMesh should be true")
	}

	// Snap reports, it does not mutate.
	if p.Z != 999 {
		t.Errorf("placeable z changed to %d", p.Z)
	}
}

func TestPlaceable_Snap_OffMesh(t *testing.T) {
	mesh := &Walkmesh{Triangles: []Triangle{
		makeTriangle(0, 0, 0, 10, 0, 0, 0, 10, 30),
	}}

	p := Placeable{X: 500, Y: 500, Z: 42}
	u := p.Snap(mesh)

	if u.Triangle != NoTriangle {
		t.Fatalf("expected NoTriangle, got %d", u.Triangle)
	}
	if u.X != 500 || u.Y != 500 || u.Z != 42 {
		t.Errorf("coordinates should pass through unchanged, got (%d, %d, %d)", u.X, u.Y, u.Z)
	}
}

func TestPlaceable_Reposition(t *testing.T) {
	mesh := &Walkmesh{Triangles: []Triangle{
		makeTriangle(0, 0, 0, 100, 0, 100, 0, 100, 200),
	}}

	p := Placeable{X: 0, Y: 0, Z: 0}

	u := p.Reposition(mesh, 10, 40)
	if u.Triangle != 0 || u.Z != 90 {
		t.Fatalf("expected (triangle 0, z 90), got (%d, %d)", u.Triangle, u.Z)
	}
	if p.X != 10 || p.Y != 40 || p.Z != 90 {
		t.Errorf("placeable should follow the update, got (%d, %d, %d)", p.X, p.Y, p.Z)
	}

	// Off-mesh moves keep the last grounded elevation.
	u = p.Reposition(mesh, 500, 500)
	if u.Triangle != NoTriangle {
		t.Fatalf("expected NoTriangle, got %d", u.Triangle)
	}
	if p.Z != 90 {
		t.Errorf("expected z to stay 90 off-mesh, got %d", p.Z)
	}
}
