// Package blockmodel resolves inheritance-based block model definitions and
// turns them into flat position/texcoord/index buffers.
package blockmodel

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformedModel is returned when a definition is structurally broken
// (a null element, a missing corner, a uv that is not four numbers...).
var ErrMalformedModel = errors.New("malformed block model")

// Model is one named block-shape definition.
type Model struct {
	ID     string
	Parent string
	// Textures maps a variable name to a texture id or to another "#variable".
	Textures map[string]string
	// Elements is nil when the definition does not declare any.
	Elements         []Element
	AmbientOcclusion *bool
	Display          map[string]Display

	state       flattenState
	diagnostics []Diagnostic
}

// Element is one axis-aligned cuboid in the 0..16 model space.
type Element struct {
	From     mgl32.Vec3
	To       mgl32.Vec3
	Rotation *ElementRotation
	Shade    bool
	// Faces is indexed by Direction; a nil slot is not emitted.
	Faces [6]*Face
}

// ElementRotation rotates all faces of an element about Origin.
type ElementRotation struct {
	Origin  mgl32.Vec3
	Axis    Axis
	Angle   float32
	Rescale bool
}

// Face is one quad on one side of an element.
type Face struct {
	Texture string
	// UV overrides the direction's default rectangle when set.
	UV       *[4]float32
	Rotation int
	CullFace *Direction
	// TintIndex is -1 for untinted faces.
	TintIndex int
}

// Valid reports whether from <= to on every axis.
func (e *Element) Valid() bool {
	for i := 0; i < 3; i++ {
		if e.From[i] > e.To[i] {
			return false
		}
	}
	return true
}

// FaceCount returns the number of faces the element will emit.
func (e *Element) FaceCount() int {
	if !e.Valid() {
		return 0
	}
	n := 0
	for _, f := range e.Faces {
		if f != nil && f.Texture != "" {
			n++
		}
	}
	return n
}

// FromJSON builds a model from its JSON definition. The id is normalized
// into the default namespace when it has none.
func FromJSON(id string, data []byte) (*Model, error) {
	var raw modelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedModel, id, err)
	}

	m := &Model{
		ID:               NormalizeID(id),
		Parent:           raw.Parent,
		Textures:         raw.Textures,
		AmbientOcclusion: raw.AmbientOcclusion,
		Display:          raw.Display,
	}
	if raw.Parent != "" {
		m.Parent = NormalizeID(raw.Parent)
	}

	if raw.Elements != nil {
		m.Elements = make([]Element, 0, len(raw.Elements))
		for i, re := range raw.Elements {
			e, err := convertElement(re)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: element %d: %w", ErrMalformedModel, m.ID, i, err)
			}
			if !e.Valid() {
				m.record(DiagnosticMalformedElement, fmt.Sprintf("element %d has from %v > to %v", i, e.From, e.To))
			}
			m.Elements = append(m.Elements, e)
		}
	}
	return m, nil
}

func convertElement(re *elementJSON) (Element, error) {
	var e Element
	if re == nil {
		return e, errors.New("element is null")
	}
	if re.From == nil || re.To == nil {
		return e, errors.New("element needs both from and to")
	}
	e.From = mgl32.Vec3(*re.From)
	e.To = mgl32.Vec3(*re.To)
	e.Shade = re.Shade == nil || *re.Shade

	if re.Rotation != nil {
		axis, ok := parseAxis(re.Rotation.Axis)
		if !ok {
			return e, fmt.Errorf("unknown rotation axis %q", re.Rotation.Axis)
		}
		e.Rotation = &ElementRotation{
			Origin:  mgl32.Vec3(re.Rotation.Origin),
			Axis:    axis,
			Angle:   re.Rotation.Angle,
			Rescale: re.Rotation.Rescale,
		}
	}

	for name, rf := range re.Faces {
		dir, ok := ParseDirection(name)
		if !ok {
			return e, fmt.Errorf("unknown face %q", name)
		}
		if rf == nil {
			continue
		}
		f, err := convertFace(rf)
		if err != nil {
			return e, fmt.Errorf("face %s: %w", name, err)
		}
		e.Faces[dir] = f
	}
	return e, nil
}

func convertFace(rf *faceJSON) (*Face, error) {
	f := &Face{Texture: rf.Texture, Rotation: rf.Rotation, TintIndex: -1}
	if rf.UV != nil {
		if len(rf.UV) != 4 {
			return nil, fmt.Errorf("uv needs 4 numbers, got %d", len(rf.UV))
		}
		uv := [4]float32{rf.UV[0], rf.UV[1], rf.UV[2], rf.UV[3]}
		f.UV = &uv
	}
	if _, ok := uvRotationIndex(rf.Rotation); !ok {
		return nil, fmt.Errorf("rotation must be 0, 90, 180 or 270, got %d", rf.Rotation)
	}
	if rf.CullFace != "" {
		if d, ok := ParseDirection(rf.CullFace); ok {
			f.CullFace = &d
		}
	}
	if rf.TintIndex != nil {
		f.TintIndex = *rf.TintIndex
	}
	return f, nil
}

// Flattened reports whether inheritance resolution has run on this model.
func (m *Model) Flattened() bool {
	return m.state == stateFlattened
}

// Diagnostics returns the non-fatal problems found while building and flattening the model.
func (m *Model) Diagnostics() []Diagnostic {
	return m.diagnostics
}

func (m *Model) record(kind DiagnosticKind, detail string) {
	m.diagnostics = append(m.diagnostics, Diagnostic{Kind: kind, Model: m.ID, Detail: detail})
}

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind int

const (
	DiagnosticMissingParent DiagnosticKind = iota
	DiagnosticParentCycle
	DiagnosticMalformedElement
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticMissingParent:
		return "missing parent"
	case DiagnosticParentCycle:
		return "parent cycle"
	case DiagnosticMalformedElement:
		return "malformed element"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a recoverable problem with a model definition.
type Diagnostic struct {
	Kind   DiagnosticKind
	Model  string
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Model, d.Kind, d.Detail)
}
