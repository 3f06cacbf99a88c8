package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jan00bl/webmc/internal/config"
	"github.com/jan00bl/webmc/pkg/blockmodel"
)

// meshFile is the JSON document written by the tool. Textures lists atlas
// cells by index; cell 0 is the placeholder.
type meshFile struct {
	Positions []float32 `json:"positions"`
	TexCoords []float32 `json:"texcoords"`
	Indices   []uint32  `json:"indices"`
	AtlasSize int       `json:"atlasSize"`
	Textures  []string  `json:"textures"`
}

func writeOutput(cfg config.OutputConfig, stdout io.Writer, b blockmodel.Buffers, atlas *blockmodel.GridAtlas) error {
	doc := meshFile{
		Positions: nonNil(b.Positions),
		TexCoords: nonNil(b.TexCoords),
		Indices:   b.Indices,
		AtlasSize: atlas.Size(),
		Textures:  atlas.Textures(),
	}
	if doc.Indices == nil {
		doc.Indices = []uint32{}
	}

	w := stdout
	if cfg.Path != "" {
		f, err := os.Create(cfg.Path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func nonNil(s []float32) []float32 {
	if s == nil {
		return []float32{}
	}
	return s
}
