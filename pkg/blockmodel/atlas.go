package blockmodel

// UVProvider places textures inside a shared atlas.
type UVProvider interface {
	// Origin returns the atlas-space origin of the texture's cell. The empty
	// missing-texture id must be accepted.
	Origin(textureID string) (u, v float32)
	// CellFraction converts one model uv unit (1/16 of a texture) into atlas units.
	CellFraction() float32
}

// GridAtlas is a UVProvider over a square grid of equally sized cells.
// Cell 0 holds the missing-texture placeholder; unknown ids map to it.
// Register all textures before sharing the atlas between goroutines.
type GridAtlas struct {
	size    int
	cells   map[string]int
	ids     []string
	dropped map[string]struct{}
}

// NewGridAtlas returns an atlas of size×size cells.
func NewGridAtlas(size int) *GridAtlas {
	if size < 1 {
		size = 1
	}
	return &GridAtlas{
		size:  size,
		cells: make(map[string]int),
		ids:   []string{""},
	}
}

// Register assigns the next free cell to id and returns it. Already known
// ids keep their cell; when the grid is full the placeholder cell is returned.
func (a *GridAtlas) Register(id string) int {
	id = NormalizeID(id)
	if id == "" {
		return 0
	}
	if cell, ok := a.cells[id]; ok {
		return cell
	}
	if len(a.ids) >= a.size*a.size {
		if a.dropped == nil {
			a.dropped = make(map[string]struct{})
		}
		a.dropped[id] = struct{}{}
		return 0
	}
	cell := len(a.ids)
	a.cells[id] = cell
	a.ids = append(a.ids, id)
	return cell
}

// RegisterModel registers every texture the model's faces resolve to.
func (a *GridAtlas) RegisterModel(m *Model) {
	for i := range m.Elements {
		for _, f := range m.Elements[i].Faces {
			if f != nil && f.Texture != "" {
				a.Register(m.ResolveTexture(f.Texture))
			}
		}
	}
}

// Cell returns the cell assigned to id.
func (a *GridAtlas) Cell(id string) (int, bool) {
	cell, ok := a.cells[NormalizeID(id)]
	return cell, ok
}

// Textures returns the registered ids in cell order; index 0 is the placeholder.
func (a *GridAtlas) Textures() []string {
	return a.ids
}

// Size is the number of cells per side.
func (a *GridAtlas) Size() int {
	return a.size
}

// Dropped counts distinct ids that found no free cell.
func (a *GridAtlas) Dropped() int {
	return len(a.dropped)
}

// Part is the atlas-space size of one cell.
func (a *GridAtlas) Part() float32 {
	return 1 / float32(a.size)
}

func (a *GridAtlas) Origin(textureID string) (u, v float32) {
	cell := a.cells[NormalizeID(textureID)]
	part := a.Part()
	return float32(cell%a.size) * part, float32(cell/a.size) * part
}

func (a *GridAtlas) CellFraction() float32 {
	return a.Part() / 16
}
