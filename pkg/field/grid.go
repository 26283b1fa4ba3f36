// Package field provides parsers and spatial queries for Final Fantasy VII
// field map sections.
package field

import (
	"github.com/whodaresx/ff7-ultima/pkg/geom"
)

// DefaultGridCell is the query grid cell size used when the caller has no
// better number. Field meshes span a few thousand units, so this keeps
// cell candidate lists short without making the grid huge.
const DefaultGridCell = 256.0

// GridIndex accelerates Locate with a uniform grid over the mesh's
// horizontal bounding box. Each cell lists the triangles whose 2D
// bounding box overlaps it, in ascending index order, so a cell scan
// preserves the walkmesh's lowest-index-wins policy exactly: GridIndex
// and the linear scan are observationally identical, ties included.
//
// Built once over an immutable mesh; read-only afterwards.
type GridIndex struct {
	mesh     *Walkmesh
	bounds   Bounds
	cellSize float64

	cols, rows int
	cells      [][]int
}

// NewGridIndex builds a grid over the mesh. A cellSize of 0 or less
// falls back to DefaultGridCell.
func NewGridIndex(m *Walkmesh, cellSize float64) *GridIndex {
	if cellSize <= 0 {
		cellSize = DefaultGridCell
	}

	g := &GridIndex{
		mesh:     m,
		bounds:   ComputeBounds(m),
		cellSize: cellSize,
	}

	g.cols = int(g.bounds.Width()/cellSize) + 1
	g.rows = int(g.bounds.Depth()/cellSize) + 1
	g.cells = make([][]int, g.cols*g.rows)

	// Triangles are inserted in index order, so every cell list stays
	// sorted ascending without a second pass.
	for i := range m.Triangles {
		minC, minR, maxC, maxR := g.cellRange(&m.Triangles[i])
		for r := minR; r <= maxR; r++ {
			for c := minC; c <= maxC; c++ {
				idx := r*g.cols + c
				g.cells[idx] = append(g.cells[idx], i)
			}
		}
	}

	return g
}

// Locate behaves exactly like Walkmesh.Locate, consulting only the cell
// that contains (x, y). Points outside the mesh bounds resolve to
// (NoTriangle, 0) without scanning anything.
func (g *GridIndex) Locate(x, y float64) (int, int) {
	col, row, ok := g.cellAt(x, y)
	if !ok {
		return NoTriangle, 0
	}

	p := geom.Vec2{X: x, Y: y}
	for _, i := range g.cells[row*g.cols+col] {
		t := &g.mesh.Triangles[i]
		if t.contains2D(p) {
			return i, t.elevationAt(p)
		}
	}
	return NoTriangle, 0
}

// Bounds returns the mesh bounds the grid was built over.
func (g *GridIndex) Bounds() Bounds {
	return g.bounds
}

// cellAt maps a point to its cell. ok is false outside the mesh bounds.
// Points exactly on the max edge clamp into the last cell so boundary
// vertices stay locatable.
func (g *GridIndex) cellAt(x, y float64) (int, int, bool) {
	if x < g.bounds.MinX || x > g.bounds.MaxX || y < g.bounds.MinY || y > g.bounds.MaxY {
		return 0, 0, false
	}

	col := int((x - g.bounds.MinX) / g.cellSize)
	if col >= g.cols {
		col = g.cols - 1
	}
	row := int((y - g.bounds.MinY) / g.cellSize)
	if row >= g.rows {
		row = g.rows - 1
	}
	return col, row, true
}

// cellRange returns the inclusive cell rectangle covered by a triangle's
// horizontal bounding box.
func (g *GridIndex) cellRange(t *Triangle) (minC, minR, maxC, maxR int) {
	minX, minY := float64(t.Vertices[0].X), float64(t.Vertices[0].Y)
	maxX, maxY := minX, minY
	for _, v := range t.Vertices[1:] {
		x, y := float64(v.X), float64(v.Y)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	minC, minR, _ = g.cellAt(minX, minY)
	maxC, maxR, _ = g.cellAt(maxX, maxY)
	return minC, minR, maxC, maxR
}
