// Package meshing packs block model instances into one shared set of buffers.
package meshing

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/jan00bl/webmc/pkg/blockmodel"
)

// BlockSize is the edge length of one block in model units.
const BlockSize = 16

var blockCenter = mgl32.Vec3{8, 8, 8}

// ErrNilModel is returned for an instance without a model.
var ErrNilModel = errors.New("meshing: instance has no model")

// Instance places a model in the scene.
type Instance struct {
	Model *blockmodel.Model
	// Position is in blocks; the model's 0..16 space is placed at Position*16.
	Position mgl32.Vec3
	// X and Y rotate the whole model about the block center, in degrees
	// (blockstate variant rotation, multiples of 90).
	X, Y int
}

// Transform returns the model-to-scene matrix: X rotation, then Y, then translation.
func (in Instance) Transform() mgl32.Mat4 {
	m := mgl32.Translate3D(
		in.Position.X()*BlockSize+blockCenter.X(),
		in.Position.Y()*BlockSize+blockCenter.Y(),
		in.Position.Z()*BlockSize+blockCenter.Z(),
	)
	if in.Y != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-float32(in.Y))))
	}
	if in.X != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-float32(in.X))))
	}
	return m.Mul4(mgl32.Translate3D(-blockCenter.X(), -blockCenter.Y(), -blockCenter.Z()))
}

// Buffers emits the instance with indices starting at zero.
func (in Instance) Buffers(uv blockmodel.UVProvider) (blockmodel.Buffers, error) {
	if in.Model == nil {
		return blockmodel.Buffers{}, ErrNilModel
	}
	b := in.Model.Buffers(uv, 0)

	mat := in.Transform()
	for i := 0; i+2 < len(b.Positions); i += 3 {
		v := mgl32.TransformCoordinate(mgl32.Vec3{b.Positions[i], b.Positions[i+1], b.Positions[i+2]}, mat)
		b.Positions[i], b.Positions[i+1], b.Positions[i+2] = v.X(), v.Y(), v.Z()
	}
	return b, nil
}

// Scene is a flat list of instances drawn from one set of buffers.
type Scene struct {
	Instances []Instance
}

// Add appends an instance of m at pos.
func (s *Scene) Add(m *blockmodel.Model, pos mgl32.Vec3) {
	s.Instances = append(s.Instances, Instance{Model: m, Position: pos})
}

// Build concatenates all instances in order; indices are valid across the whole result.
func (s *Scene) Build(uv blockmodel.UVProvider) (blockmodel.Buffers, error) {
	var out blockmodel.Buffers
	for i, in := range s.Instances {
		b, err := in.Buffers(uv)
		if err != nil {
			return blockmodel.Buffers{}, fmt.Errorf("instance %d: %w", i, err)
		}
		out.Append(b)
	}
	return out, nil
}

// BuildParallel produces the same buffers as Build using pool's workers.
// Every model must be flattened beforehand (see blockmodel.FlattenAll) and
// uv must be safe for concurrent reads.
func (s *Scene) BuildParallel(ctx context.Context, pool *WorkerPool, uv blockmodel.UVProvider) (blockmodel.Buffers, error) {
	n := len(s.Instances)
	results := make(chan BuildResult, n)

	for i, in := range s.Instances {
		job := BuildJob{Index: i, Instance: in, UV: uv, ResultChan: results}
		if err := pool.SubmitJobBlocking(ctx, job); err != nil {
			return blockmodel.Buffers{}, err
		}
	}

	parts := make([]blockmodel.Buffers, n)
	for i := 0; i < n; i++ {
		select {
		case r := <-results:
			if r.Error != nil {
				return blockmodel.Buffers{}, fmt.Errorf("instance %d: %w", r.Index, r.Error)
			}
			parts[r.Index] = r.Buffers
		case <-ctx.Done():
			return blockmodel.Buffers{}, ctx.Err()
		}
	}

	var out blockmodel.Buffers
	for _, b := range parts {
		out.Append(b)
	}
	return out, nil
}
