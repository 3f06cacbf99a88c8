package blockmodel

// Buffers emits the element on its own. resolve maps a face's texture
// reference to a texture id, usually (*Model).ResolveTexture.
func (e *Element) Buffers(resolve func(ref string) string, uv UVProvider, startOffset uint32) Buffers {
	n := e.FaceCount()
	b := Buffers{
		Positions: make([]float32, 0, n*12),
		TexCoords: make([]float32, 0, n*8),
		Indices:   make([]uint32, 0, n*6),
	}
	appendElement(&b, e, resolve, uv, startOffset)
	return b
}

// appendElement writes every present face of e to dst with indices starting
// at base, then applies the element's pivot rotation to what it wrote. It
// returns the number of vertices emitted.
func appendElement(dst *Buffers, e *Element, resolve func(string) string, uv UVProvider, base uint32) uint32 {
	if !e.Valid() {
		return 0
	}

	first := len(dst.Positions)
	var emitted uint32
	part := uv.CellFraction()

	for _, dir := range Directions {
		face := e.Faces[dir]
		if face == nil || face.Texture == "" {
			continue
		}

		for _, c := range quadCorners(dir, e.From, e.To) {
			dst.Positions = append(dst.Positions, c[0], c[1], c[2])
		}

		rect := DefaultUV(dir, e.From, e.To)
		if face.UV != nil {
			rect = *face.UV
		}
		corners := [4][2]float32{
			{rect[0], rect[1]},
			{rect[2], rect[1]},
			{rect[2], rect[3]},
			{rect[0], rect[3]},
		}
		ou, ov := uv.Origin(resolve(face.Texture))
		for _, k := range UVPermutation(face.Rotation) {
			dst.TexCoords = append(dst.TexCoords, ou+corners[k][0]*part, ov+corners[k][1]*part)
		}

		i := base + emitted
		dst.Indices = append(dst.Indices, i, i+1, i+2, i, i+2, i+3)
		emitted += 4
	}

	if e.Rotation != nil && emitted > 0 {
		transformPositions(dst.Positions[first:], e.Rotation.Matrix())
	}
	return emitted
}
