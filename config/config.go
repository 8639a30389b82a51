// Settings for building meshes, read from YAML.
//
//	tolerance:
//	  mesh: 1e-4
//	strict_locate: false
//	limits:
//	  max_elements: 0
//	  max_nodes: 0
//	build:
//	  margin: 1.0
//	  min_dist: 0
//	  node_flags: [poly]
//
// Anything left out keeps its default. Unknown keys are an error.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/osuushi/trimesh/mesh"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Tolerance    Tolerance `yaml:"tolerance"`
	StrictLocate bool      `yaml:"strict_locate"`
	Limits       Limits    `yaml:"limits"`
	Build        Build     `yaml:"build"`
}

type Tolerance struct {
	// Distance under which two positions are the same node. The squared and
	// area tolerances derive from it.
	Mesh float64 `yaml:"mesh"`
}

// Capacity limits, zero is unlimited
type Limits struct {
	MaxElements int `yaml:"max_elements"`
	MaxNodes    int `yaml:"max_nodes"`
}

type Build struct {
	// Padding around the points for the bounding box the mesh is seeded from
	Margin float64 `yaml:"margin"`
	// Points closer than this to a node are dropped
	MinDist float64 `yaml:"min_dist"`
	// Flags given to every inserted node, by name
	NodeFlags []string `yaml:"node_flags"`
}

var flagNames = map[string]mesh.NodeFlags{
	"bbox":  mesh.NodeBBox,
	"block": mesh.NodeBlock,
	"idom":  mesh.NodeIDom,
	"poly":  mesh.NodePoly,
}

func Default() Config {
	return Config{
		Tolerance: Tolerance{Mesh: mesh.MeshTolerance},
		Build: Build{
			Margin:    1,
			NodeFlags: []string{"poly"},
		},
	}
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Tolerance.Mesh <= 0 {
		return errors.Errorf("tolerance.mesh must be positive, got %g", c.Tolerance.Mesh)
	}
	if c.Limits.MaxElements < 0 || c.Limits.MaxNodes < 0 {
		return errors.Errorf("limits must not be negative, got %d elements and %d nodes", c.Limits.MaxElements, c.Limits.MaxNodes)
	}
	if c.Build.Margin <= 0 {
		return errors.Errorf("build.margin must be positive, got %g", c.Build.Margin)
	}
	if c.Build.MinDist < 0 {
		return errors.Errorf("build.min_dist must not be negative, got %g", c.Build.MinDist)
	}
	if _, err := c.NodeFlags(); err != nil {
		return err
	}
	return nil
}

func (c Config) Settings() mesh.Settings {
	return mesh.Settings{
		Tolerance:    c.Tolerance.Mesh,
		StrictLocate: c.StrictLocate,
		MaxElements:  c.Limits.MaxElements,
		MaxNodes:     c.Limits.MaxNodes,
	}
}

// The node flags named in build.node_flags, combined. The zombie flag belongs
// to the mesh and can't be named.
func (c Config) NodeFlags() (mesh.NodeFlags, error) {
	flags := mesh.NodeNone
	for _, name := range c.Build.NodeFlags {
		flag, ok := flagNames[strings.ToLower(name)]
		if !ok {
			return 0, errors.Errorf("unknown node flag %q", name)
		}
		flags |= flag
	}
	return flags, nil
}
