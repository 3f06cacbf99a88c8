package blockmodel

// Registry hands out models by id during flattening.
type Registry interface {
	Lookup(id string) (*Model, bool)
}

// MapRegistry is an in-memory Registry keyed by normalized model id.
type MapRegistry map[string]*Model

// Add registers models under their ids.
func (r MapRegistry) Add(models ...*Model) {
	for _, m := range models {
		r[NormalizeID(m.ID)] = m
	}
}

func (r MapRegistry) Lookup(id string) (*Model, bool) {
	m, ok := r[NormalizeID(id)]
	return m, ok
}

// Models returns the registered models in no particular order.
func (r MapRegistry) Models() []*Model {
	out := make([]*Model, 0, len(r))
	for _, m := range r {
		out = append(out, m)
	}
	return out
}
