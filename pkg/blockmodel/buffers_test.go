package blockmodel

import (
	"math"
	"reflect"
	"testing"
)

// fixedUV places every texture at one origin.
type fixedUV struct {
	u, v, fraction float32
	seen           []string
}

func (f *fixedUV) Origin(id string) (float32, float32) {
	f.seen = append(f.seen, id)
	return f.u, f.v
}

func (f *fixedUV) CellFraction() float32 { return f.fraction }

func approxEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func TestSingleUpFace(t *testing.T) {
	m := mustModel(t, "block/slab_top", `{
		"elements": [ { "from": [0,0,0], "to": [16,16,16], "faces": { "up": { "texture": "stone" } } } ]
	}`)
	uv := &fixedUV{fraction: 1.0 / 16}

	b := m.Buffers(uv, 0)

	if b.VertexCount() != 4 {
		t.Fatalf("got %d vertices, want 4", b.VertexCount())
	}
	for i := 1; i < len(b.Positions); i += 3 {
		if b.Positions[i] != 16 {
			t.Errorf("vertex %d: y = %v, want 16", i/3, b.Positions[i])
		}
	}
	wantUV := []float32{0, 0, 1, 0, 1, 1, 0, 1}
	if !approxEqual(b.TexCoords, wantUV) {
		t.Errorf("texcoords: got %v, want %v", b.TexCoords, wantUV)
	}
	if !reflect.DeepEqual(b.Indices, []uint32{0, 1, 2, 0, 2, 3}) {
		t.Errorf("indices: got %v", b.Indices)
	}
	if len(uv.seen) != 1 || uv.seen[0] != "minecraft:stone" {
		t.Errorf("expected provider to be asked for minecraft:stone, got %v", uv.seen)
	}
}

func TestFaceWindingFacesOutward(t *testing.T) {
	m := mustModel(t, "block/cube", `{
		"textures": { "all": "block/stone" },
		"elements": [ { "from": [2,3,4], "to": [10,12,14], "faces": {
			"up": { "texture": "#all" }, "down": { "texture": "#all" },
			"north": { "texture": "#all" }, "east": { "texture": "#all" },
			"south": { "texture": "#all" }, "west": { "texture": "#all" }
		} } ]
	}`)
	b := m.Buffers(NewGridAtlas(1), 0)

	normals := [6][3]float32{
		Up: {0, 1, 0}, Down: {0, -1, 0},
		North: {0, 0, -1}, East: {1, 0, 0},
		South: {0, 0, 1}, West: {-1, 0, 0},
	}
	for face := 0; face < 6; face++ {
		tri := b.Indices[face*6 : face*6+3]
		p := func(i uint32) [3]float32 {
			return [3]float32{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]}
		}
		p0, p1, p2 := p(tri[0]), p(tri[1]), p(tri[2])
		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		want := normals[face]
		dot := n[0]*want[0] + n[1]*want[1] + n[2]*want[2]
		if dot <= 0 {
			t.Errorf("%s: triangle normal %v does not face %v", Direction(face), n, want)
		}
	}
}

func TestBufferLengthsMatchFaceCount(t *testing.T) {
	m := mustModel(t, "block/mixed", `{
		"textures": { "a": "block/a" },
		"elements": [
			{ "from": [0,0,0], "to": [16,16,16], "faces": {
				"up": { "texture": "#a" }, "down": { "texture": "#a" }, "north": { "texture": "#a" }
			} },
			{ "from": [4,4,4], "to": [12,12,12], "faces": {
				"east": { "texture": "#a" }, "west": { "texture": "" }
			} },
			{ "from": [0,0,0], "to": [1,1,1], "faces": {} },
			{ "from": [0,0,0], "to": [16,16,16], "rotation": { "origin": [8,8,8], "axis": "x", "angle": 22.5 }, "faces": {
				"south": { "texture": "#missing" }, "up": { "texture": "#a", "rotation": 90 }
			} }
		]
	}`)

	faces := 0
	for i := range m.Elements {
		faces += m.Elements[i].FaceCount()
	}
	if faces != 6 {
		t.Fatalf("got %d faces, want 6", faces)
	}

	b := m.Buffers(NewGridAtlas(2), 0)
	if len(b.Indices) != 6*faces || len(b.Positions) != 12*faces || len(b.TexCoords) != 8*faces {
		t.Errorf("lengths %d/%d/%d, want %d/%d/%d",
			len(b.Positions), len(b.TexCoords), len(b.Indices), 12*faces, 8*faces, 6*faces)
	}
}

func TestIndicesStartAtOffsetAndThread(t *testing.T) {
	m := mustModel(t, "block/two", `{
		"elements": [
			{ "from": [0,0,0], "to": [8,8,8], "faces": { "up": { "texture": "a" }, "down": { "texture": "a" } } },
			{ "from": [8,8,8], "to": [16,16,16], "faces": { "north": { "texture": "b" } } }
		]
	}`)

	b := m.Buffers(NewGridAtlas(1), 100)
	want := []uint32{
		100, 101, 102, 100, 102, 103,
		104, 105, 106, 104, 106, 107,
		108, 109, 110, 108, 110, 111,
	}
	if !reflect.DeepEqual(b.Indices, want) {
		t.Errorf("got %v, want %v", b.Indices, want)
	}
}

func TestBuffersDoNotMutateModel(t *testing.T) {
	m := mustModel(t, "block/m", `{
		"textures": { "all": "block/stone" },
		"elements": [ { "from": [0,0,0], "to": [16,16,16],
			"rotation": { "origin": [8,8,8], "axis": "y", "angle": 45 },
			"faces": { "up": { "texture": "#all" } } } ]
	}`)
	before := m.Elements[0]

	first := m.Buffers(NewGridAtlas(1), 0)
	second := m.Buffers(NewGridAtlas(1), 0)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated buffer generation differs")
	}
	if !reflect.DeepEqual(before, m.Elements[0]) {
		t.Error("buffer generation mutated the element")
	}
}

func TestExplicitUVOverridesDefault(t *testing.T) {
	m := mustModel(t, "block/m", `{
		"elements": [ { "from": [0,0,0], "to": [16,1,16], "faces": {
			"north": { "texture": "a", "uv": [4, 2, 8, 10] }
		} } ]
	}`)
	uv := &fixedUV{u: 0.5, v: 0.25, fraction: 1.0 / 64}

	b := m.Buffers(uv, 0)
	want := []float32{
		0.5 + 4.0/64, 0.25 + 2.0/64,
		0.5 + 8.0/64, 0.25 + 2.0/64,
		0.5 + 8.0/64, 0.25 + 10.0/64,
		0.5 + 4.0/64, 0.25 + 10.0/64,
	}
	if !approxEqual(b.TexCoords, want) {
		t.Errorf("got %v, want %v", b.TexCoords, want)
	}
}

func TestFaceRotationPermutesCorners(t *testing.T) {
	tests := []struct {
		rotation int
		want     []float32
	}{
		{0, []float32{0, 0, 1, 0, 1, 1, 0, 1}},
		{90, []float32{0, 1, 0, 0, 1, 0, 1, 1}},
		{180, []float32{1, 1, 0, 1, 0, 0, 1, 0}},
		{270, []float32{1, 0, 1, 1, 0, 1, 0, 0}},
	}
	for _, tt := range tests {
		e := Element{
			From: [3]float32{0, 0, 0},
			To:   [3]float32{16, 16, 16},
		}
		e.Faces[South] = &Face{Texture: "a", Rotation: tt.rotation, TintIndex: -1}

		b := e.Buffers(NormalizeID, &fixedUV{fraction: 1.0 / 16}, 0)
		if !approxEqual(b.TexCoords, tt.want) {
			t.Errorf("rotation %d: got %v, want %v", tt.rotation, b.TexCoords, tt.want)
		}
	}
}

func TestDefaultUVFollowsElementBounds(t *testing.T) {
	from := [3]float32{2, 3, 4}
	to := [3]float32{10, 12, 14}
	tests := []struct {
		dir  Direction
		want [4]float32
	}{
		{Up, [4]float32{2, 2, 10, 12}},
		{Down, [4]float32{2, 4, 10, 14}},
		{North, [4]float32{6, 3, 14, 12}},
		{East, [4]float32{2, 3, 12, 12}},
		{South, [4]float32{2, 3, 10, 12}},
		{West, [4]float32{4, 3, 14, 12}},
	}
	for _, tt := range tests {
		if got := DefaultUV(tt.dir, from, to); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestPivotRotationKeepsCubeFootprint(t *testing.T) {
	m := mustModel(t, "block/spun", `{
		"elements": [ { "from": [0,0,0], "to": [16,16,16],
			"rotation": { "origin": [8,8,8], "axis": "y", "angle": 90 },
			"faces": {
				"up": { "texture": "a" }, "down": { "texture": "a" },
				"north": { "texture": "a" }, "east": { "texture": "a" },
				"south": { "texture": "a" }, "west": { "texture": "a" }
			} } ]
	}`)
	plain := mustModel(t, "block/plain", `{
		"elements": [ { "from": [0,0,0], "to": [16,16,16], "faces": { "north": { "texture": "a" } } } ]
	}`)

	b := m.Buffers(NewGridAtlas(1), 0)
	lo := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := 0; i < len(b.Positions); i += 3 {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], b.Positions[i+k])
			hi[k] = max(hi[k], b.Positions[i+k])
		}
	}
	if !approxEqual(lo[:], []float32{0, 0, 0}) || !approxEqual(hi[:], []float32{16, 16, 16}) {
		t.Errorf("bounding box changed: %v..%v", lo, hi)
	}

	// North face (index 2 in emission order) ends up where east was.
	rotatedNorth := b.Positions[2*12 : 3*12]
	if approxEqual(rotatedNorth, plain.Buffers(NewGridAtlas(1), 0).Positions) {
		t.Error("expected rotated north face positions to differ pointwise")
	}
	for i := 0; i < len(rotatedNorth); i += 3 {
		if math.Abs(float64(rotatedNorth[i]-16)) > 1e-4 && math.Abs(float64(rotatedNorth[i])) > 1e-4 {
			t.Errorf("rotated north vertex x = %v, want on an x plane", rotatedNorth[i])
		}
	}
}

func TestPivotRotationAboutOrigin(t *testing.T) {
	r := ElementRotation{Origin: [3]float32{8, 8, 8}, Axis: AxisZ, Angle: 90}
	got := []float32{16, 8, 8}
	transformPositions(got, r.Matrix())
	if !approxEqual(got, []float32{8, 16, 8}) {
		t.Errorf("got %v, want [8 16 8]", got)
	}
}

func TestRescaleStretchesTiltedFace(t *testing.T) {
	r := ElementRotation{Origin: [3]float32{8, 8, 8}, Axis: AxisY, Angle: 45, Rescale: true}
	got := []float32{16, 8, 8}
	transformPositions(got, r.Matrix())

	// Without rescale the point would stay at distance 8 from the pivot.
	dx, dz := got[0]-8, got[2]-8
	dist := math.Sqrt(float64(dx*dx + dz*dz))
	if math.Abs(dist-8*math.Sqrt2) > 1e-3 {
		t.Errorf("distance from pivot = %v, want %v", dist, 8*math.Sqrt2)
	}
	if math.Abs(float64(got[1]-8)) > 1e-4 {
		t.Errorf("y moved to %v", got[1])
	}
}

func TestMalformedElementIsSkipped(t *testing.T) {
	m := mustModel(t, "block/bad", `{
		"elements": [
			{ "from": [0,0,0], "to": [16,16,16], "faces": { "up": { "texture": "a" } } },
			{ "from": [10,0,0], "to": [4,16,16], "faces": { "up": { "texture": "a" } } }
		]
	}`)

	if d := m.Diagnostics(); len(d) != 1 || d[0].Kind != DiagnosticMalformedElement {
		t.Errorf("expected one malformed element diagnostic, got %v", d)
	}
	b := m.Buffers(NewGridAtlas(1), 0)
	if b.VertexCount() != 4 {
		t.Errorf("got %d vertices, want 4 from the valid element only", b.VertexCount())
	}
}

func TestUVPermutationIsBijection(t *testing.T) {
	for _, deg := range []int{0, 90, 180, 270} {
		perm := UVPermutation(deg)
		seen := [4]bool{}
		for _, k := range perm {
			if k < 0 || k > 3 || seen[k] {
				t.Fatalf("rotation %d: %v is not a permutation", deg, perm)
			}
			seen[k] = true
		}
	}
	if UVPermutation(0) != [4]int{0, 1, 2, 3} {
		t.Errorf("rotation 0 should be the identity, got %v", UVPermutation(0))
	}
}

func TestBuffersAppendRebases(t *testing.T) {
	m := mustModel(t, "block/m", `{
		"elements": [ { "from": [0,0,0], "to": [16,16,16], "faces": { "up": { "texture": "a" } } } ]
	}`)
	atlas := NewGridAtlas(1)

	var packed Buffers
	packed.Append(m.Buffers(atlas, 0))
	packed.Append(m.Buffers(atlas, 0))

	direct := m.Buffers(atlas, 4)
	if !reflect.DeepEqual(packed.Indices[6:], direct.Indices) {
		t.Errorf("appended indices %v, want %v", packed.Indices[6:], direct.Indices)
	}
	if packed.VertexCount() != 8 {
		t.Errorf("got %d vertices, want 8", packed.VertexCount())
	}
}
