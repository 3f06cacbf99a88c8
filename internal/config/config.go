// Package config handles tool configuration loading and management.
package config

// Config holds all settings of the mesh tool.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	Meshing MeshingConfig `yaml:"meshing"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	// WriteConfig is set from the command line only.
	WriteConfig string `yaml:"-"`
}

// AssetsConfig points at a resource pack.
type AssetsConfig struct {
	Path string `yaml:"path"` // the pack's assets/ directory
}

// AtlasConfig describes the grid atlas used to place textures.
type AtlasConfig struct {
	Size int `yaml:"size"` // cells per side
}

// MeshingConfig holds buffer generation settings.
type MeshingConfig struct {
	Workers   int     `yaml:"workers"`    // 1 builds on the calling goroutine
	QueueSize int     `yaml:"queue_size"` // pending jobs per pool
	Spacing   float32 `yaml:"spacing"`    // blocks between consecutive instances
}

// OutputConfig controls where buffers are written.
type OutputConfig struct {
	Path   string `yaml:"path"` // empty writes to stdout
	Pretty bool   `yaml:"pretty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Path: "assets",
		},
		Atlas: AtlasConfig{
			Size: 16,
		},
		Meshing: MeshingConfig{
			Workers:   1,
			QueueSize: 64,
			Spacing:   1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// clamp keeps numeric settings in usable ranges.
func (c *Config) clamp() {
	if c.Atlas.Size < 1 {
		c.Atlas.Size = 1
	}
	if c.Atlas.Size > 256 {
		c.Atlas.Size = 256
	}
	if c.Meshing.Workers < 1 {
		c.Meshing.Workers = 1
	}
	if c.Meshing.QueueSize < 1 {
		c.Meshing.QueueSize = 1
	}
	if c.Meshing.Spacing < 1 {
		c.Meshing.Spacing = 1
	}
}
