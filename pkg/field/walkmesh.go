// Package field provides parsers and spatial queries for Final Fantasy VII
// field map sections.
package field

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/whodaresx/ff7-ultima/pkg/geom"
)

// Walkmesh format errors.
var (
	ErrTruncatedWalkmesh = errors.New("truncated walkmesh data")
)

// Walkmesh section layout. The section opens with a 32-bit triangle count,
// followed by the sector pool (one sectorRecord per triangle) and then the
// access pool (one accessRecord per triangle). All values little-endian.
const (
	walkmeshHeaderSize = 4  // uint32 triangle count
	sectorRecordSize   = 24 // three vertices at 8-byte stride
	accessRecordSize   = 6  // three uint16 edge links

	// MaxTriangles is the sanity ceiling on the header count. A count
	// beyond it means the buffer is not walkmesh data; decoding treats
	// it as "no geometry" rather than attempting a huge allocation.
	MaxTriangles = 10000
)

// Blocked is the access value marking an edge with no triangle on the
// other side. It is distinct from every valid triangle index, including 0.
const Blocked uint16 = 0xFFFF

// sectorVertex mirrors one on-disk vertex: x, y, z as signed 16-bit values
// plus two bytes of padding (the 8-byte stride within a sector record).
// Reading int16 little-endian applies the two's-complement interpretation
// the format uses for values >= 0x8000.
type sectorVertex struct {
	X, Y, Z int16
	_       int16 // padding
}

// sectorRecord mirrors one on-disk 24-byte triangle in the sector pool.
type sectorRecord struct {
	V [3]sectorVertex
}

// accessRecord mirrors one on-disk 6-byte entry in the adjacency pool:
// the neighbor triangle behind each edge, in edge order 0-1, 1-2, 2-0.
type accessRecord struct {
	Edge [3]uint16
}

// Vertex is a single walkmesh vertex. Coordinates are raw decoded values;
// X and Y span the horizontal plane, Z is the elevation axis.
type Vertex struct {
	X, Y, Z int16
}

// Vec2 returns the horizontal-plane components as a float vector.
func (v Vertex) Vec2() geom.Vec2 {
	return geom.Vec2{X: float64(v.X), Y: float64(v.Y)}
}

// Vec3 returns all three components as a float vector.
func (v Vertex) Vec3() geom.Vec3 {
	return geom.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Triangle is a walkmesh sector: three vertices in winding order plus the
// access triple. Access[i] names the triangle across the edge from vertex
// i to vertex (i+1)%3, or Blocked when that edge cannot be crossed.
type Triangle struct {
	Vertices [3]Vertex
	Access   [3]uint16
}

// Neighbor returns the triangle index across the given edge.
// ok is false for a blocked edge or an edge outside 0..2.
func (t *Triangle) Neighbor(edge int) (int, bool) {
	if edge < 0 || edge >= 3 {
		return 0, false
	}
	if t.Access[edge] == Blocked {
		return 0, false
	}
	return int(t.Access[edge]), true
}

// Centroid2D returns the horizontal-plane centroid of the triangle.
func (t *Triangle) Centroid2D() geom.Vec2 {
	sum := t.Vertices[0].Vec2().Add(t.Vertices[1].Vec2()).Add(t.Vertices[2].Vec2())
	return sum.Scale(1.0 / 3.0)
}

// Walkmesh is a decoded walkable-surface mesh. A triangle's identity is
// its index in Triangles; access values reference that same index space.
// The struct is read-only after decoding.
type Walkmesh struct {
	Triangles []Triangle
}

// Count returns the number of triangles.
func (m *Walkmesh) Count() int {
	return len(m.Triangles)
}

// IsEmpty reports whether the mesh holds no triangles.
func (m *Walkmesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// CountBlockedEdges returns how many edges carry the Blocked marker.
func (m *Walkmesh) CountBlockedEdges() int {
	n := 0
	for i := range m.Triangles {
		for _, a := range m.Triangles[i].Access {
			if a == Blocked {
				n++
			}
		}
	}
	return n
}

// ParseWalkmesh parses a walkmesh section from raw bytes.
//
// A buffer too short to hold the header, a zero count, or a count beyond
// MaxTriangles all decode to an empty mesh with no error: callers treat
// "no geometry yet" as a normal state. A buffer whose header promises more
// records than it holds fails with ErrTruncatedWalkmesh.
func ParseWalkmesh(data []byte) (*Walkmesh, error) {
	if len(data) < walkmeshHeaderSize {
		return &Walkmesh{}, nil
	}

	count := binary.LittleEndian.Uint32(data[0:walkmeshHeaderSize])
	if count == 0 || count > MaxTriangles {
		return &Walkmesh{}, nil
	}

	r := bytes.NewReader(data[walkmeshHeaderSize:])
	mesh := &Walkmesh{
		Triangles: make([]Triangle, count),
	}

	// Sector pool: all vertex records, in on-disk (= index) order.
	for i := range mesh.Triangles {
		var rec sectorRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("%w: sector record %d", ErrTruncatedWalkmesh, i)
		}
		for j, v := range rec.V {
			mesh.Triangles[i].Vertices[j] = Vertex{X: v.X, Y: v.Y, Z: v.Z}
		}
	}

	// Access pool follows immediately after the last sector record.
	for i := range mesh.Triangles {
		var rec accessRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("%w: access record %d", ErrTruncatedWalkmesh, i)
		}
		mesh.Triangles[i].Access = rec.Edge
	}

	return mesh, nil
}

// ParseWalkmeshFile parses a walkmesh section from disk.
func ParseWalkmeshFile(path string) (*Walkmesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading walkmesh file: %w", err)
	}
	return ParseWalkmesh(data)
}
