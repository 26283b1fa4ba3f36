// Package field provides parsers and spatial queries for Final Fantasy VII
// field map sections.
package field

import (
	"math"

	"github.com/whodaresx/ff7-ultima/pkg/geom"
)

// degenerateAreaEps bounds the signed-area magnitude below which a
// triangle is treated as a sliver: barycentric division would blow up, so
// elevation falls back to the corner average.
const degenerateAreaEps = 1e-4

// NoTriangle is the Locate result index for a point outside every
// triangle.
const NoTriangle = -1

// Locate finds the triangle containing the horizontal-plane point (x, y)
// and the interpolated surface elevation there, rounded to the format's
// integral elevation unit.
//
// Triangles are scanned in index order and the first match wins, so
// overlapping geometry resolves to the lowest index. A point outside
// every triangle yields (NoTriangle, 0). The mesh is never written;
// concurrent callers need no coordination.
func (m *Walkmesh) Locate(x, y float64) (int, int) {
	p := geom.Vec2{X: x, Y: y}
	for i := range m.Triangles {
		if m.Triangles[i].contains2D(p) {
			return i, m.Triangles[i].elevationAt(p)
		}
	}
	return NoTriangle, 0
}

// ElevationAt returns the interpolated elevation of triangle tri at
// (x, y) without a containment test. Callers that already located the
// triangle (drag previews, path smoothing) use this directly.
// ok is false when tri is out of range.
func (m *Walkmesh) ElevationAt(tri int, x, y float64) (int, bool) {
	if tri < 0 || tri >= len(m.Triangles) {
		return 0, false
	}
	return m.Triangles[tri].elevationAt(geom.Vec2{X: x, Y: y}), true
}

// contains2D tests horizontal-plane containment with half-plane sign
// checks. The test branches on the sign of the signed area so both
// windings classify correctly, and edge points count as inside (a point
// exactly on a shared edge lands in at least one of the two triangles).
func (t *Triangle) contains2D(p geom.Vec2) bool {
	a := t.Vertices[0].Vec2()
	b := t.Vertices[1].Vec2()
	c := t.Vertices[2].Vec2()

	s0 := b.Sub(a).Cross(p.Sub(a))
	s1 := c.Sub(b).Cross(p.Sub(b))
	s2 := a.Sub(c).Cross(p.Sub(c))

	if d := b.Sub(a).Cross(c.Sub(a)); d < 0 {
		return s0 <= 0 && s1 <= 0 && s2 <= 0
	}
	return s0 >= 0 && s1 >= 0 && s2 >= 0
}

// elevationAt interpolates the Z attribute at p with 2D barycentric
// weights on the horizontal plane. Sliver triangles (area below
// degenerateAreaEps) average the three corners instead of dividing.
func (t *Triangle) elevationAt(p geom.Vec2) int {
	a := t.Vertices[0].Vec2()
	z0 := float64(t.Vertices[0].Z)
	z1 := float64(t.Vertices[1].Z)
	z2 := float64(t.Vertices[2].Z)

	v0 := t.Vertices[1].Vec2().Sub(a)
	v1 := t.Vertices[2].Vec2().Sub(a)
	v2 := p.Sub(a)

	denom := v0.Cross(v1)
	if math.Abs(denom) < degenerateAreaEps {
		return int(math.Round((z0 + z1 + z2) / 3))
	}

	w1 := v2.Cross(v1) / denom
	w2 := v0.Cross(v2) / denom
	w0 := 1 - w1 - w2

	return int(math.Round(w0*z0 + w1*z1 + w2*z2))
}
