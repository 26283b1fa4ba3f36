// Package field provides parsers and spatial queries for Final Fantasy VII
// field map sections.
package field

// Placeable is an entity positioned on a field map, such as a character
// model or an event trigger. Coordinates are in walkmesh units, Radius
// is the collision radius used by field scripts.
type Placeable struct {
	X      int
	Y      int
	Z      int
	Radius uint16
}

// PositionUpdate reports where a placeable ended up after snapping to
// the walkmesh. Triangle is NoTriangle when the position is off-mesh.
type PositionUpdate struct {
	X        int32
	Y        int32
	Z        int32
	Triangle int32
}

// Size returns the encoded size.
func (p *PositionUpdate) Size() int {
	return 14
}

// Encode encodes the update to bytes. The triangle index is written as
// an unsigned 16-bit field, with NoTriangle mapped to 0xFFFF.
func (p *PositionUpdate) Encode() []byte {
	buf := make([]byte, p.Size())
	buf[0] = byte(p.X)
	buf[1] = byte(p.X >> 8)
	buf[2] = byte(p.X >> 16)
	buf[3] = byte(p.X >> 24)
	buf[4] = byte(p.Y)
	buf[5] = byte(p.Y >> 8)
	buf[6] = byte(p.Y >> 16)
	buf[7] = byte(p.Y >> 24)
	buf[8] = byte(p.Z)
	buf[9] = byte(p.Z >> 8)
	buf[10] = byte(p.Z >> 16)
	buf[11] = byte(p.Z >> 24)
	tri := uint16(0xFFFF)
	if p.Triangle != NoTriangle {
		tri = uint16(p.Triangle)
	}
	buf[12] = byte(tri)
	buf[13] = byte(tri >> 8)
	return buf
}

// OnMesh reports whether the update landed on a walkmesh triangle.
func (p *PositionUpdate) OnMesh() bool {
	return p.Triangle != NoTriangle
}

// Snap projects the placeable onto the walkmesh at its current x/y.
// On a hit the z coordinate is replaced by the interpolated elevation;
// off-mesh the coordinates pass through unchanged and Triangle is
// NoTriangle. The placeable itself is not modified.
func (p *Placeable) Snap(m *Walkmesh) PositionUpdate {
	update := PositionUpdate{
		X:        int32(p.X),
		Y:        int32(p.Y),
		Z:        int32(p.Z),
		Triangle: NoTriangle,
	}

	tri, z := m.Locate(float64(p.X), float64(p.Y))
	if tri == NoTriangle {
		return update
	}

	update.Z = int32(z)
	update.Triangle = int32(tri)
	return update
}

// Reposition moves the placeable to x/y and snaps it to the walkmesh.
// The placeable keeps its previous z when the new position is off-mesh.
func (p *Placeable) Reposition(m *Walkmesh, x, y int) PositionUpdate {
	p.X = x
	p.Y = y
	update := p.Snap(m)
	p.Z = int(update.Z)
	return update
}
