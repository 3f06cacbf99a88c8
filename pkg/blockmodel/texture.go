package blockmodel

import "strings"

// DefaultNamespace is prepended to ids that carry no "namespace:" prefix.
const DefaultNamespace = "minecraft"

// maxTextureHops bounds the "#variable" chase.
const maxTextureHops = 10

// NormalizeID prefixes id with the default namespace unless it already has one.
// The empty id is returned unchanged.
func NormalizeID(id string) string {
	if id == "" || strings.Contains(id, ":") {
		return id
	}
	return DefaultNamespace + ":" + id
}

// SplitID returns the namespace and path of an id, normalizing it first.
func SplitID(id string) (namespace, path string) {
	ns, p, _ := strings.Cut(NormalizeID(id), ":")
	return ns, p
}

// ResolveTexture chases "#variable" references through the model's textures
// and returns a namespaced texture id. Undefined variables, and chains longer
// than maxTextureHops, resolve to the empty missing-texture sentinel.
func (m *Model) ResolveTexture(ref string) string {
	for hops := 0; strings.HasPrefix(ref, "#"); hops++ {
		if hops == maxTextureHops {
			return ""
		}
		next, ok := m.Textures[ref[1:]]
		if !ok {
			return ""
		}
		ref = next
	}
	return NormalizeID(ref)
}
