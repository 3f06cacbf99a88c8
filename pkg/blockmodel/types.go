package blockmodel

import "encoding/json"

// modelJSON mirrors a block model file as found in a resource pack.
// Pointer and slice fields distinguish "absent" from "zero" so FromJSON can
// reject structurally broken definitions.
type modelJSON struct {
	Parent           string             `json:"parent"`
	AmbientOcclusion *bool              `json:"ambientocclusion"`
	Textures         map[string]string  `json:"textures"`
	Elements         []*elementJSON     `json:"elements"`
	Display          map[string]Display `json:"display"`
}

type elementJSON struct {
	From     *[3]float32          `json:"from"`
	To       *[3]float32          `json:"to"`
	Rotation *rotationJSON        `json:"rotation"`
	Shade    *bool                `json:"shade"`
	Faces    map[string]*faceJSON `json:"faces"`
}

type rotationJSON struct {
	Origin  [3]float32 `json:"origin"`
	Angle   float32    `json:"angle"`
	Axis    string     `json:"axis"`
	Rescale bool       `json:"rescale"`
}

type faceJSON struct {
	UV        []float32 `json:"uv"`
	Texture   string    `json:"texture"`
	CullFace  string    `json:"cullface"`
	Rotation  int       `json:"rotation"`
	TintIndex *int      `json:"tintindex"`
}

// Display is a per-context transform (gui, ground, firstperson_righthand...).
type Display struct {
	Rotation    [3]float32 `json:"rotation"`
	Translation [3]float32 `json:"translation"`
	Scale       [3]float32 `json:"scale"`
}

// BlockState defines the blockstate JSON structure. It maps variants of a block to their corresponding models.
type BlockState struct {
	// Variants is a map of variant names to a list of models.
	Variants map[string]BlockStateVariants `json:"variants"`
}

// BlockStateVariants is a custom type to handle the fact that the "variants" field can contain either a single object or an array of objects.
type BlockStateVariants []Variant

func (v *BlockStateVariants) UnmarshalJSON(data []byte) error {
	// First, try to unmarshal as an array
	var variants []Variant
	if err := json.Unmarshal(data, &variants); err == nil {
		*v = variants
		return nil
	}

	// If that fails, try to unmarshal as a single object
	var singleVariant Variant
	if err := json.Unmarshal(data, &singleVariant); err != nil {
		return err
	}

	*v = []Variant{singleVariant}
	return nil
}

// Variant points at a model and the whole-model rotation to place it with.
type Variant struct {
	Model  string `json:"model"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	UVLock bool   `json:"uvlock"`
	Weight int    `json:"weight"`
}
