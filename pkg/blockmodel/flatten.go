package blockmodel

import (
	"fmt"
	"strings"
)

type flattenState int

const (
	stateUnflattened flattenState = iota
	stateFlattening
	stateFlattened
)

// Flatten resolves the model's parent chain in place so that it no longer
// depends on its parent. Parents are flattened first. An unresolvable or
// cyclic parent is recorded as a diagnostic and the model keeps only its own
// data. Repeated calls are no-ops.
//
// Flatten is not safe for concurrent use on models sharing ancestors; use
// FlattenAll before handing models to other goroutines.
func (m *Model) Flatten(reg Registry) {
	if m.state != stateUnflattened {
		return
	}
	m.state = stateFlattening
	defer func() { m.state = stateFlattened }()

	if m.Parent == "" || isBuiltin(m.Parent) {
		return
	}

	var parent *Model
	if reg != nil {
		parent, _ = reg.Lookup(m.Parent)
	}
	if parent == nil {
		m.record(DiagnosticMissingParent, fmt.Sprintf("parent %q not found", m.Parent))
		return
	}
	if parent.state == stateFlattening {
		m.record(DiagnosticParentCycle, fmt.Sprintf("parent %q is already being resolved", m.Parent))
		return
	}

	parent.Flatten(reg)
	m.inherit(parent)
}

// inherit merges an already flattened parent into m. Elements are adopted
// all-or-nothing; textures and display entries by key presence, own entries winning.
func (m *Model) inherit(parent *Model) {
	if len(m.Elements) == 0 && parent.Elements != nil {
		m.Elements = parent.Elements
	}

	if m.Textures == nil {
		m.Textures = make(map[string]string, len(parent.Textures))
	}
	for key, val := range parent.Textures {
		if _, ok := m.Textures[key]; !ok {
			m.Textures[key] = val
		}
	}

	if m.AmbientOcclusion == nil {
		m.AmbientOcclusion = parent.AmbientOcclusion
	}

	if len(parent.Display) > 0 {
		if m.Display == nil {
			m.Display = make(map[string]Display, len(parent.Display))
		}
		for key, val := range parent.Display {
			if _, ok := m.Display[key]; !ok {
				m.Display[key] = val
			}
		}
	}
}

// FlattenAll flattens models and every ancestor reachable through reg in a
// single dependency-ordered pass, parents before children, and returns that
// order. Afterwards the models are only read, so they can be shared between
// goroutines.
func FlattenAll(models []*Model, reg Registry) []*Model {
	ordered := make(map[*Model]bool)
	var order []*Model

	for _, m := range models {
		if m == nil || ordered[m] {
			continue
		}

		// Walk up until a root, a missing parent, an ordered ancestor or a cycle.
		var chain []*Model
		onChain := make(map[*Model]bool)
		for cur := m; cur != nil && !ordered[cur] && !onChain[cur]; {
			chain = append(chain, cur)
			onChain[cur] = true
			if cur.Parent == "" || isBuiltin(cur.Parent) || reg == nil {
				break
			}
			cur, _ = reg.Lookup(cur.Parent)
		}

		for i := len(chain) - 1; i >= 0; i-- {
			ordered[chain[i]] = true
			order = append(order, chain[i])
		}
	}

	for _, m := range order {
		m.Flatten(reg)
	}
	return order
}

func isBuiltin(id string) bool {
	_, path := SplitID(id)
	return strings.HasPrefix(path, "builtin/")
}
