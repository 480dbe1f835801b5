package cli

import (
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/notation"
)

// configFileName is looked up in the config directory when --config is not set.
const configFileName = "config.toml"

// fileConfig is the on-disk encoder configuration:
//
//	direction = "TD"
//	store = "/path/to/procedures"
//
//	[styles.state]
//	fill = "#f9f"
//	stroke = "#333"
//
//	[styles.event]
//	fill = "#bbf"
type fileConfig struct {
	Direction string                       `toml:"direction"`
	Store     string                       `toml:"store"`
	Styles    map[string]map[string]string `toml:"styles"`
}

// loadConfig reads the config file. An explicit path must exist; the
// default location is optional.
func (c *CLI) loadConfig() (fileConfig, error) {
	var cfg fileConfig
	path, explicit := c.ConfigPath, c.ConfigPath != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		c.Logger.Warn("unknown config keys", "path", path, "keys", undecoded)
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// encodeOptions maps the config onto encoder options. A non-empty
// direction flag overrides the configured direction; noStyles drops all
// class definitions.
func (cfg fileConfig) encodeOptions(directionFlag string, noStyles bool) (notation.Options, error) {
	opts := notation.DefaultOptions()

	raw := cfg.Direction
	if directionFlag != "" {
		raw = directionFlag
	}
	if raw != "" {
		d, ok := graph.ParseDirection(raw)
		if !ok {
			return opts, errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q (want TD, TB, BT, LR or RL)", raw)
		}
		opts.Direction = d
	}

	switch {
	case noStyles:
		opts.Styles = []notation.ClassDef{}
	case len(cfg.Styles) > 0:
		opts.Styles = stylesFromConfig(cfg.Styles)
	}
	return opts, nil
}

// stylesFromConfig orders classes and properties by name so encoding stays
// deterministic.
func stylesFromConfig(styles map[string]map[string]string) []notation.ClassDef {
	defs := make([]notation.ClassDef, 0, len(styles))
	for _, name := range slices.Sorted(maps.Keys(styles)) {
		props := styles[name]
		def := notation.ClassDef{Name: name}
		for _, k := range slices.Sorted(maps.Keys(props)) {
			def.Props = append(def.Props, notation.StyleProp{Key: k, Value: props[k]})
		}
		defs = append(defs, def)
	}
	return defs
}
