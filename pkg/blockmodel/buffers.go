package blockmodel

// Buffers holds flat vertex data ready for upload: 3 position and 2 texcoord
// components per vertex, 3 indices per triangle.
type Buffers struct {
	Positions []float32
	TexCoords []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices held.
func (b *Buffers) VertexCount() int {
	return len(b.Positions) / 3
}

// Append concatenates o, which must have been built with a start offset of
// zero, re-basing its indices past the vertices already in b.
func (b *Buffers) Append(o Buffers) {
	base := uint32(b.VertexCount())
	b.Positions = append(b.Positions, o.Positions...)
	b.TexCoords = append(b.TexCoords, o.TexCoords...)
	for _, idx := range o.Indices {
		b.Indices = append(b.Indices, idx+base)
	}
}

// Buffers concatenates the output of every element in declaration order.
// Indices start at startOffset so several models can share one index buffer.
// The model is not modified; flatten it first to include inherited elements.
func (m *Model) Buffers(uv UVProvider, startOffset uint32) Buffers {
	faces := 0
	for i := range m.Elements {
		faces += m.Elements[i].FaceCount()
	}
	b := Buffers{
		Positions: make([]float32, 0, faces*12),
		TexCoords: make([]float32, 0, faces*8),
		Indices:   make([]uint32, 0, faces*6),
	}

	base := startOffset
	for i := range m.Elements {
		base += appendElement(&b, &m.Elements[i], m.ResolveTexture, uv, base)
	}
	return b
}
