// Package field provides parsers and spatial queries for Final Fantasy VII
// field map sections.
package field

import (
	"container/heap"
)

// pathNode represents a triangle in the A* frontier.
type pathNode struct {
	tri    int     // triangle index
	g      float64 // cost from start
	h      float64 // heuristic (estimated cost to goal)
	f      float64 // total cost (g + h)
	parent *pathNode
	index  int // index in heap
}

// pathHeap implements a priority queue for A* over triangles.
type pathHeap []*pathNode

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*pathNode)
	node.index = n
	*h = append(*h, node)
}

func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// FindPath finds a route from one triangle to another using A* over the
// access graph: neighbors are the non-blocked access values, costs and
// heuristic are horizontal centroid distances. The returned slice runs
// from start to goal inclusive; nil means no route exists or an index
// was out of range. The mesh is only read, never written.
func (m *Walkmesh) FindPath(from, to int) []int {
	if from < 0 || from >= len(m.Triangles) || to < 0 || to >= len(m.Triangles) {
		return nil
	}
	if from == to {
		return []int{from}
	}

	goal := m.Triangles[to].Centroid2D()

	openSet := &pathHeap{}
	heap.Init(openSet)

	closedSet := make(map[int]bool)
	nodeMap := make(map[int]*pathNode)

	start := &pathNode{
		tri: from,
		g:   0,
		h:   m.Triangles[from].Centroid2D().Distance(goal),
	}
	start.f = start.g + start.h
	heap.Push(openSet, start)
	nodeMap[from] = start

	maxIterations := len(m.Triangles) // the graph has one node per triangle

	for iterations := 0; openSet.Len() > 0 && iterations < maxIterations; iterations++ {
		current := heap.Pop(openSet).(*pathNode)

		if current.tri == to {
			return reconstructPath(current)
		}

		closedSet[current.tri] = true
		centroid := m.Triangles[current.tri].Centroid2D()

		for edge := 0; edge < 3; edge++ {
			next, ok := m.Triangles[current.tri].Neighbor(edge)
			if !ok {
				continue
			}
			// Corrupt meshes can point access values past the pool;
			// skip them the same way an unwalkable edge is skipped.
			if next >= len(m.Triangles) {
				continue
			}
			if closedSet[next] {
				continue
			}

			nextCentroid := m.Triangles[next].Centroid2D()
			g := current.g + centroid.Distance(nextCentroid)

			neighbor, exists := nodeMap[next]
			if !exists {
				neighbor = &pathNode{
					tri:    next,
					g:      g,
					h:      nextCentroid.Distance(goal),
					parent: current,
				}
				neighbor.f = neighbor.g + neighbor.h
				nodeMap[next] = neighbor
				heap.Push(openSet, neighbor)
			} else if g < neighbor.g {
				neighbor.g = g
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = current
				heap.Fix(openSet, neighbor.index)
			}
		}
	}

	return nil
}

func reconstructPath(node *pathNode) []int {
	var path []int
	for node != nil {
		path = append(path, node.tri)
		node = node.parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
