package mesh

// Builder accumulates triangles given by corner position, welding vertices
// that land on the same coordinates. STL files and marching-cubes output are
// triangle soups; welding is what makes shared edges real, which the
// boundary-loop detector depends on.
type Builder struct {
	verts []Vec3
	tris  []Triangle
	index map[Vec3]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[Vec3]int)}
}

// vertex returns the index for position p, adding it if unseen.
// Welding is exact: positions must be bit-identical to merge. STL repeats
// shared corners verbatim, so exact matching is sufficient and keeps the
// builder deterministic.
func (b *Builder) vertex(p Vec3) int {
	if i, ok := b.index[p]; ok {
		return i
	}
	i := len(b.verts)
	b.verts = append(b.verts, p)
	b.index[p] = i
	return i
}

// AddTriangle appends one triangle given its corner positions.
// Triangles that collapse to fewer than three distinct vertices are dropped.
func (b *Builder) AddTriangle(p0, p1, p2 Vec3) {
	i0 := b.vertex(p0)
	i1 := b.vertex(p1)
	i2 := b.vertex(p2)
	if i0 == i1 || i1 == i2 || i0 == i2 {
		return
	}
	b.tris = append(b.tris, Triangle{i0, i1, i2})
}

// Build returns the welded mesh. The builder must not be reused afterwards.
func (b *Builder) Build() *Mesh {
	return &Mesh{Vertices: b.verts, Triangles: b.tris}
}
