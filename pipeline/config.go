package pipeline

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-site configuration file, looked
// up at the input directory root.
const ConfigFileName = "generator.yml"

// Config tunes the pipeline. Absent fields keep their defaults.
type Config struct {
	// EvalTags are the tag names whose raw content is handed to the
	// expression evaluator.
	EvalTags []string `yaml:"eval_tags"`

	// SharedContext keeps one evaluator context across the whole file
	// set so definitions carry forward in walker order.
	SharedContext bool `yaml:"shared_context"`

	// OutputExt is the extension of rendered files.
	OutputExt string `yaml:"output_ext"`

	// FallbackNamespaces seeds the evaluator's per-namespace fallback
	// search lists.
	FallbackNamespaces map[string][]string `yaml:"fallback_namespaces"`
}

// DefaultConfig returns the configuration used when generator.yml is
// absent.
func DefaultConfig() *Config {
	return &Config{
		EvalTags:      []string{"eval"},
		SharedContext: true,
		OutputExt:     ".html",
	}
}

// LoadConfig reads generator.yml under dir, if present.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.EvalTags) == 0 {
		cfg.EvalTags = DefaultConfig().EvalTags
	}
	if cfg.OutputExt == "" {
		cfg.OutputExt = DefaultConfig().OutputExt
	}
	return cfg, nil
}
