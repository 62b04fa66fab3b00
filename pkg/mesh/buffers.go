package mesh

// Buffers is the flat, GPU-friendly form of a mesh.
// Positions and Normals hold xyz triples, Indices three entries per face.
type Buffers struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// Buffers flattens the mesh for upload to a render sink
func (m *Mesh) Buffers() Buffers {
	b := Buffers{
		Positions: make([]float32, 0, len(m.positions)*3),
		Normals:   make([]float32, 0, len(m.normals)*3),
		Indices:   make([]uint32, 0, len(m.triangles)*3),
	}

	for _, p := range m.positions {
		b.Positions = append(b.Positions, float32(p.X), float32(p.Y), float32(p.Z))
	}
	for _, n := range m.normals {
		b.Normals = append(b.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, f := range m.triangles {
		b.Indices = append(b.Indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return b
}

// VertexCount returns the number of xyz triples
func (b Buffers) VertexCount() int {
	return len(b.Positions) / 3
}

// FaceCount returns the number of index triples
func (b Buffers) FaceCount() int {
	return len(b.Indices) / 3
}
