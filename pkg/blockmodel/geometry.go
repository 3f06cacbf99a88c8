package blockmodel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrix returns the affine transform that rotates a point by Angle degrees
// about Axis through Origin. With Rescale set, the two axes orthogonal to the
// rotation axis are stretched by 1/cos(angle) so a tilted face still spans the block.
func (r *ElementRotation) Matrix() mgl32.Mat4 {
	rad := mgl32.DegToRad(r.Angle)

	var rot mgl32.Mat4
	switch r.Axis {
	case AxisX:
		rot = mgl32.HomogRotate3DX(rad)
	case AxisY:
		rot = mgl32.HomogRotate3DY(rad)
	default:
		rot = mgl32.HomogRotate3DZ(rad)
	}

	if r.Rescale {
		if c := float32(math.Cos(float64(rad))); math.Abs(float64(c)) > 1e-6 {
			s := 1 / float32(math.Abs(float64(c)))
			var scale mgl32.Mat4
			switch r.Axis {
			case AxisX:
				scale = mgl32.Scale3D(1, s, s)
			case AxisY:
				scale = mgl32.Scale3D(s, 1, s)
			default:
				scale = mgl32.Scale3D(s, s, 1)
			}
			rot = scale.Mul4(rot)
		}
	}

	o := r.Origin
	return mgl32.Translate3D(o.X(), o.Y(), o.Z()).
		Mul4(rot).
		Mul4(mgl32.Translate3D(-o.X(), -o.Y(), -o.Z()))
}

// transformPositions applies mat in place to a flat xyz position slice.
func transformPositions(positions []float32, mat mgl32.Mat4) {
	for i := 0; i+2 < len(positions); i += 3 {
		v := mgl32.TransformCoordinate(mgl32.Vec3{positions[i], positions[i+1], positions[i+2]}, mat)
		positions[i], positions[i+1], positions[i+2] = v.X(), v.Y(), v.Z()
	}
}
