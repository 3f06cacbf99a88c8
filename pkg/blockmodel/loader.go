package blockmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrModelNotFound is returned when no file backs a model or blockstate id.
var ErrModelNotFound = errors.New("model not found")

// Loader is a Registry backed by a resource pack's assets directory,
// laid out as <assets>/<namespace>/models/<path>.json. Loaded models and
// failed lookups are cached. A Loader is not safe for concurrent use.
type Loader struct {
	assetsPath string
	log        *zap.Logger
	modelCache map[string]*Model
	failed     map[string]error
}

// NewLoader creates a loader rooted at assetsPath. A nil logger discards output.
func NewLoader(assetsPath string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		assetsPath: assetsPath,
		log:        log,
		modelCache: make(map[string]*Model),
		failed:     make(map[string]error),
	}
}

// Lookup returns the model for id as defined on disk, without flattening it.
func (l *Loader) Lookup(id string) (*Model, bool) {
	m, err := l.read(NormalizeID(id))
	return m, err == nil
}

// LoadModel returns the flattened model for name. Names without a folder
// are taken from "block/", so "stone" and "minecraft:block/stone" are the same model.
func (l *Loader) LoadModel(name string) (*Model, error) {
	ns, path := SplitID(name)
	if !strings.Contains(path, "/") {
		path = "block/" + path
	}

	model, err := l.read(ns + ":" + path)
	if err != nil {
		return nil, err
	}
	if model.Flattened() {
		return model, nil
	}

	model.Flatten(l)
	for _, d := range model.Diagnostics() {
		l.log.Warn("block model diagnostic",
			zap.String("model", d.Model),
			zap.Stringer("kind", d.Kind),
			zap.String("detail", d.Detail))
	}
	return model, nil
}

func (l *Loader) read(id string) (*Model, error) {
	if model, ok := l.modelCache[id]; ok {
		return model, nil
	}
	if err, ok := l.failed[id]; ok {
		return nil, err
	}

	model, err := l.readFile(id)
	if err != nil {
		l.failed[id] = err
		l.log.Debug("could not load model", zap.String("model", id), zap.Error(err))
		return nil, err
	}
	l.modelCache[id] = model
	return model, nil
}

func (l *Loader) readFile(id string) (*Model, error) {
	ns, path := SplitID(id)
	file := filepath.Join(l.assetsPath, ns, "models", filepath.FromSlash(path)+".json")

	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	model, err := FromJSON(id, data)
	if err != nil {
		return nil, fmt.Errorf("could not parse model json: %w", err)
	}
	return model, nil
}

// LoadBlockState reads <assets>/<namespace>/blockstates/<path>.json.
func (l *Loader) LoadBlockState(name string) (*BlockState, error) {
	ns, path := SplitID(name)
	file := filepath.Join(l.assetsPath, ns, "blockstates", filepath.FromSlash(path)+".json")

	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: blockstate %s", ErrModelNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read blockstate file: %w", err)
	}

	var blockState BlockState
	if err := json.Unmarshal(data, &blockState); err != nil {
		return nil, fmt.Errorf("could not unmarshal blockstate json: %w", err)
	}

	return &blockState, nil
}
