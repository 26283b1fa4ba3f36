// Package field provides parsers and spatial queries for Final Fantasy VII
// field map sections.
package field

// Bounds is the axis-aligned extent of a walkmesh. Centers are the
// midpoint of min and max per axis (a framing box center, not a mass
// centroid): downstream camera framing wants the box, not the average.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64

	CenterX, CenterY, CenterZ float64
}

// Width returns the X extent.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Depth returns the Y extent.
func (b Bounds) Depth() float64 {
	return b.MaxY - b.MinY
}

// Height returns the Z (elevation) extent.
func (b Bounds) Height() float64 {
	return b.MaxZ - b.MinZ
}

// ComputeBounds derives the bounding box of every vertex of every
// triangle. An empty mesh yields the zero Bounds, a safe default for
// framing logic.
func ComputeBounds(m *Walkmesh) Bounds {
	if m.IsEmpty() {
		return Bounds{}
	}

	first := m.Triangles[0].Vertices[0]
	b := Bounds{
		MinX: float64(first.X), MaxX: float64(first.X),
		MinY: float64(first.Y), MaxY: float64(first.Y),
		MinZ: float64(first.Z), MaxZ: float64(first.Z),
	}

	for i := range m.Triangles {
		for _, v := range m.Triangles[i].Vertices {
			x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
			if x < b.MinX {
				b.MinX = x
			}
			if x > b.MaxX {
				b.MaxX = x
			}
			if y < b.MinY {
				b.MinY = y
			}
			if y > b.MaxY {
				b.MaxY = y
			}
			if z < b.MinZ {
				b.MinZ = z
			}
			if z > b.MaxZ {
				b.MaxZ = z
			}
		}
	}

	b.CenterX = (b.MinX + b.MaxX) / 2
	b.CenterY = (b.MinY + b.MaxY) / 2
	b.CenterZ = (b.MinZ + b.MaxZ) / 2

	return b
}
