// Command webmc-mesh loads block models from a resource pack and writes their
// combined vertex buffers as JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/jan00bl/webmc/internal/config"
	"github.com/jan00bl/webmc/internal/logger"
	"github.com/jan00bl/webmc/internal/meshing"
	"github.com/jan00bl/webmc/internal/profiling"
	"github.com/jan00bl/webmc/pkg/blockmodel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "webmc-mesh:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, ids, err := config.Load(args)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if cfg.WriteConfig != "" {
		if err := cfg.SaveTo(cfg.WriteConfig); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		logger.Info("config written", zap.String("path", cfg.WriteConfig))
		if len(ids) == 0 {
			return nil
		}
	}

	if len(ids) == 0 {
		return errors.New("usage: webmc-mesh [flags] <block-or-model-id>...")
	}

	var prof profiling.Recorder
	loader := blockmodel.NewLoader(cfg.Assets.Path, logger.Log)

	scene, models, err := loadScene(loader, ids, cfg.Meshing.Spacing, &prof)
	if err != nil {
		return err
	}

	stopFlatten := prof.Track("blockmodel.FlattenAll")
	blockmodel.FlattenAll(models, loader)
	stopFlatten()

	atlas := blockmodel.NewGridAtlas(cfg.Atlas.Size)
	for _, m := range models {
		atlas.RegisterModel(m)
	}
	if n := atlas.Dropped(); n > 0 {
		logger.Warn("atlas full, extra textures use the placeholder cell",
			zap.Int("dropped", n),
			zap.Int("cells", atlas.Size()*atlas.Size()))
	}

	buffers, err := build(ctx, scene, atlas, cfg.Meshing, &prof)
	if err != nil {
		return err
	}

	stopWrite := prof.Track("output.Write")
	err = writeOutput(cfg.Output, stdout, buffers, atlas)
	stopWrite()
	if err != nil {
		return err
	}

	logger.Info("mesh written",
		zap.Int("instances", len(scene.Instances)),
		zap.Int("vertices", buffers.VertexCount()),
		zap.Int("triangles", len(buffers.Indices)/3),
		zap.Int("textures", len(atlas.Textures())-1),
		zap.String("timings", prof.TopN(5)))
	return nil
}

// loadScene resolves every id into an instance laid out along +X.
func loadScene(loader *blockmodel.Loader, ids []string, spacing float32, prof *profiling.Recorder) (*meshing.Scene, []*blockmodel.Model, error) {
	defer prof.Track("blockmodel.Load")()

	scene := &meshing.Scene{}
	models := make([]*blockmodel.Model, 0, len(ids))
	for i, id := range ids {
		in, err := resolveInstance(loader, id)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", id, err)
		}
		in.Position = mgl32.Vec3{float32(i) * spacing, 0, 0}
		scene.Instances = append(scene.Instances, in)
		models = append(models, in.Model)
	}
	return scene, models, nil
}

// resolveInstance prefers a blockstate of that name and falls back to a model id.
func resolveInstance(loader *blockmodel.Loader, id string) (meshing.Instance, error) {
	bs, err := loader.LoadBlockState(id)
	switch {
	case err == nil:
		v, ok := bs.Default()
		if !ok {
			return meshing.Instance{}, errors.New("blockstate has no variants")
		}
		m, err := loader.LoadModel(v.Model)
		if err != nil {
			return meshing.Instance{}, err
		}
		logger.Debug("using blockstate variant",
			zap.String("id", id),
			zap.String("model", m.ID),
			zap.Int("x", v.X),
			zap.Int("y", v.Y))
		return meshing.Instance{Model: m, X: v.X, Y: v.Y}, nil
	case errors.Is(err, blockmodel.ErrModelNotFound):
		m, err := loader.LoadModel(id)
		if err != nil {
			return meshing.Instance{}, err
		}
		return meshing.Instance{Model: m}, nil
	default:
		return meshing.Instance{}, err
	}
}

func build(ctx context.Context, scene *meshing.Scene, uv blockmodel.UVProvider, cfg config.MeshingConfig, prof *profiling.Recorder) (blockmodel.Buffers, error) {
	defer prof.Track("meshing.Build")()

	if cfg.Workers <= 1 || len(scene.Instances) < 2 {
		return scene.Build(uv)
	}

	pool := meshing.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Shutdown()
	logger.Debug("building in parallel", zap.Int("workers", pool.Workers()))
	return scene.BuildParallel(ctx, pool, uv)
}
