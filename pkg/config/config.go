package config

import (
	"bytes"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	osmparser "road_graph/pkg/osm"
)

// ErrNoSources is returned when a config lists no result sets.
var ErrNoSources = errors.New("no sources configured")

// Config drives one graph generation run. Sources are merged in list order:
// the first entry is the primary result set and its nodes get the lowest
// dense ids.
type Config struct {
	Sources []Source `yaml:"sources"`
	Output  Output   `yaml:"output"`
	Workers int      `yaml:"workers"`
	Log     Log      `yaml:"log"`
}

type Source struct {
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path"`
	Format  string   `yaml:"format"`
	Highway []string `yaml:"highway"`
}

type Output struct {
	Edges string `yaml:"edges"`
	Nodes string `yaml:"nodes"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a config with no sources and default knobs.
func Default() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Log:     Log{Level: "info", Format: "console"},
	}
}

// Load reads a YAML config file on top of Default. Unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML config content on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode yaml")
	}
	return cfg, nil
}

// Validate checks the config is runnable.
func (c Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}
	for i, s := range c.Sources {
		if s.Path == "" {
			return errors.Errorf("source %d (%q): path is empty", i+1, s.Name)
		}
		if _, err := osmparser.ParseFormat(s.Format); err != nil {
			return errors.Wrapf(err, "source %d (%q)", i+1, s.Name)
		}
	}
	if c.Output.Edges == "" || c.Output.Nodes == "" {
		return errors.New("output.edges and output.nodes must both be set")
	}
	if c.Output.Edges == c.Output.Nodes {
		return errors.Errorf("output.edges and output.nodes are the same file %q", c.Output.Edges)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// LoaderSources converts the configured sources for the loader, in order.
func (c Config) LoaderSources() ([]osmparser.Source, error) {
	out := make([]osmparser.Source, len(c.Sources))
	for i, s := range c.Sources {
		format, err := osmparser.ParseFormat(s.Format)
		if err != nil {
			return nil, errors.Wrapf(err, "source %d (%q)", i+1, s.Name)
		}
		out[i] = osmparser.Source{
			Name:     s.Name,
			Path:     s.Path,
			Format:   format,
			Highways: s.Highway,
		}
	}
	return out, nil
}
