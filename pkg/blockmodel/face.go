package blockmodel

import "github.com/go-gl/mathgl/mgl32"

// uvRotations maps a face rotation (0, 90, 180, 270 degrees) to the
// rectangle corner each quad vertex takes. Corners are ordered
// (u0,v0) (u1,v0) (u1,v1) (u0,v1).
var uvRotations = [4][4]int{
	{0, 1, 2, 3},
	{3, 0, 1, 2},
	{2, 3, 0, 1},
	{1, 2, 3, 0},
}

func uvRotationIndex(degrees int) (int, bool) {
	switch degrees {
	case 0:
		return 0, true
	case 90:
		return 1, true
	case 180:
		return 2, true
	case 270:
		return 3, true
	}
	return 0, false
}

// UVPermutation returns the corner permutation for a face rotation.
// Unsupported rotations fall back to the identity.
func UVPermutation(degrees int) [4]int {
	idx, _ := uvRotationIndex(degrees)
	return uvRotations[idx]
}

// DefaultUV is the rectangle a face uses when it declares no uv: the
// element's extent projected onto the face plane, u to the right and v up
// as seen from outside the element.
func DefaultUV(dir Direction, from, to mgl32.Vec3) [4]float32 {
	switch dir {
	case Up:
		return [4]float32{from[0], 16 - to[2], to[0], 16 - from[2]}
	case Down:
		return [4]float32{from[0], from[2], to[0], to[2]}
	case North:
		return [4]float32{16 - to[0], from[1], 16 - from[0], to[1]}
	case East:
		return [4]float32{16 - to[2], from[1], 16 - from[2], to[1]}
	case South:
		return [4]float32{from[0], from[1], to[0], to[1]}
	default:
		return [4]float32{from[2], from[1], to[2], to[1]}
	}
}

// quadCorners lists a face's vertices counter-clockwise as seen from
// outside, starting at the corner that takes uv (u0,v0).
func quadCorners(dir Direction, from, to mgl32.Vec3) [4]mgl32.Vec3 {
	x0, y0, z0 := from[0], from[1], from[2]
	x1, y1, z1 := to[0], to[1], to[2]

	switch dir {
	case Up:
		return [4]mgl32.Vec3{{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0}}
	case Down:
		return [4]mgl32.Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}
	case North:
		return [4]mgl32.Vec3{{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}}
	case East:
		return [4]mgl32.Vec3{{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}}
	case South:
		return [4]mgl32.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}
	default:
		return [4]mgl32.Vec3{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}
	}
}
