// Package feature detects hole features on a triangle mesh. A hole is a
// closed loop of boundary edges (edges used by exactly one triangle); loops
// are the anchors that fixed supports and loads attach to.
package feature

import (
	"math"
	"sort"

	"github.com/chazu/flexion/pkg/mesh"
)

// HoleFeature is one closed boundary loop. Index is stable across runs on
// the same mesh: features are sorted by centroid z, then y, then x, so
// external callers can reference "hole 0", "hole 1" reproducibly.
type HoleFeature struct {
	Index    int
	Centroid mesh.Vec3
	Radius   float64 // mean distance from centroid to loop vertices
	Loop     []int   // vertex indices in traversal order around the loop
}

// ContainsVertex reports whether vertex vi lies on the feature's loop.
// Loops are short; a linear scan is fine.
func (h *HoleFeature) ContainsVertex(vi int) bool {
	for _, v := range h.Loop {
		if v == vi {
			return true
		}
	}
	return false
}

// Normal returns the unit normal of the loop's best-fit plane, computed with
// Newell's method over the loop polygon. Degenerate loops yield the zero
// vector.
func (h *HoleFeature) Normal(m *mesh.Mesh) mesh.Vec3 {
	var n mesh.Vec3
	for i, vi := range h.Loop {
		vj := h.Loop[(i+1)%len(h.Loop)]
		a := m.Vertices[vi]
		b := m.Vertices[vj]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// edgeKey identifies an undirected edge.
type edgeKey struct {
	lo, hi int
}

func makeEdgeKey(a, b int) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// Detect finds the hole features of m and returns them in deterministic
// order. Open boundary chains and loops with fewer than three vertices are
// discarded. On an open sheet the outer rim is itself a boundary loop; when
// several loops exist and one encloses all the others, that one is the rim
// and is excluded, so only interior openings count as holes. A mesh whose
// only loop is its rim keeps it: with no openings, the rim is the one
// anchor available.
func Detect(m *mesh.Mesh) []HoleFeature {
	// Count triangle uses per undirected edge.
	uses := make(map[edgeKey]int)
	for _, t := range m.Triangles {
		uses[makeEdgeKey(t[0], t[1])]++
		uses[makeEdgeKey(t[1], t[2])]++
		uses[makeEdgeKey(t[2], t[0])]++
	}

	// Boundary adjacency: vertex -> neighbors along boundary edges.
	adj := make(map[int][]int)
	for e, n := range uses {
		if n == 1 {
			adj[e.lo] = append(adj[e.lo], e.hi)
			adj[e.hi] = append(adj[e.hi], e.lo)
		}
	}
	// Neighbor lists come from map iteration; sort them so the walk below
	// is reproducible.
	starts := make([]int, 0, len(adj))
	for v, ns := range adj {
		sort.Ints(ns)
		starts = append(starts, v)
	}
	sort.Ints(starts)

	visited := make(map[int]bool)
	var features []HoleFeature
	for _, start := range starts {
		if visited[start] {
			continue
		}
		loop, closed := walkLoop(start, adj, visited)
		if !closed || len(loop) < 3 {
			continue
		}
		features = append(features, newFeature(m, loop))
	}

	features = excludeRim(m, features)

	sort.Slice(features, func(i, j int) bool {
		a, b := features[i].Centroid, features[j].Centroid
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	for i := range features {
		features[i].Index = i
	}
	return features
}

// walkLoop chains boundary edges starting at start, always taking the
// lowest-index unvisited neighbor. Returns the chain and whether it closed
// back onto start.
func walkLoop(start int, adj map[int][]int, visited map[int]bool) ([]int, bool) {
	var loop []int
	cur := start
	prev := -1
	for {
		visited[cur] = true
		loop = append(loop, cur)

		next := -1
		for _, n := range adj[cur] {
			if n == start && prev != start && len(loop) > 2 {
				// Closing edge back to the start.
				return loop, true
			}
			if !visited[n] {
				next = n
				break
			}
		}
		if next == -1 {
			// Dead end: open chain or non-manifold junction.
			return loop, false
		}
		prev = cur
		cur = next
	}
}

// excludeRim drops the loop that encloses all others, if there is one and
// more than one loop exists. Containment is tested on axis-aligned bounding
// boxes, which is sufficient for disjoint boundary loops.
func excludeRim(m *mesh.Mesh, features []HoleFeature) []HoleFeature {
	if len(features) < 2 {
		return features
	}
	for i := range features {
		encloses := true
		for j := range features {
			if i == j {
				continue
			}
			if !loopBoxContains(m, &features[i], &features[j]) {
				encloses = false
				break
			}
		}
		if encloses {
			return append(features[:i], features[i+1:]...)
		}
	}
	return features
}

// loopBoxContains reports whether outer's bounding box contains inner's.
func loopBoxContains(m *mesh.Mesh, outer, inner *HoleFeature) bool {
	oMin, oMax := loopBounds(m, outer)
	iMin, iMax := loopBounds(m, inner)
	return oMin.X <= iMin.X && oMin.Y <= iMin.Y && oMin.Z <= iMin.Z &&
		oMax.X >= iMax.X && oMax.Y >= iMax.Y && oMax.Z >= iMax.Z
}

func loopBounds(m *mesh.Mesh, f *HoleFeature) (min, max mesh.Vec3) {
	min = m.Vertices[f.Loop[0]]
	max = min
	for _, vi := range f.Loop[1:] {
		v := m.Vertices[vi]
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}

func newFeature(m *mesh.Mesh, loop []int) HoleFeature {
	var c mesh.Vec3
	for _, vi := range loop {
		c = c.Add(m.Vertices[vi])
	}
	c = c.Scale(1 / float64(len(loop)))

	r := 0.0
	for _, vi := range loop {
		r += m.Vertices[vi].Sub(c).Length()
	}
	r /= float64(len(loop))

	return HoleFeature{Centroid: c, Radius: r, Loop: append([]int(nil), loop...)}
}
