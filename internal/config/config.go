// Package config loads the unipalette.hcl project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/unipalette/internal/render"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "unipalette.hcl"

// Config holds project settings. Every field has a usable default.
type Config struct {
	Palette string // palette source, relative paths resolved against the config file
	Log     Log
	Expand  Expand
	Output  Output
}

type Log struct {
	Verbosity int
	File      string
}

type Expand struct {
	Suffix  string
	Workers int
	Exclude []string
}

type Output struct {
	Format string // selector such as "#" or "$a"
}

// fileConfig mirrors the HCL layout. Blocks are optional.
type fileConfig struct {
	Palette string       `hcl:"palette,optional"`
	Log     *logBlock    `hcl:"log,block"`
	Expand  *expandBlock `hcl:"expand,block"`
	Output  *outputBlock `hcl:"output,block"`
}

type logBlock struct {
	Verbosity *int    `hcl:"verbosity,optional"`
	File      *string `hcl:"file,optional"`
}

type expandBlock struct {
	Suffix  *string   `hcl:"suffix,optional"`
	Workers *int      `hcl:"workers,optional"`
	Exclude *[]string `hcl:"exclude,optional"`
}

type outputBlock struct {
	Format *string `hcl:"format,optional"`
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Palette: "colors.pal",
		Expand: Expand{
			Suffix:  ".uncol",
			Workers: runtime.NumCPU(),
			Exclude: []string{".git"},
		},
		Output: Output{Format: "#"},
	}
}

// Load reads the project file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	if cfg.Palette != "" && !filepath.IsAbs(cfg.Palette) {
		cfg.Palette = filepath.Join(filepath.Dir(path), cfg.Palette)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or DefaultFile when path is empty. A missing
// DefaultFile is not an error; a missing explicit path is.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	cfg := Default()
	if raw.Palette != "" {
		cfg.Palette = raw.Palette
	}
	if b := raw.Log; b != nil {
		setIf(&cfg.Log.Verbosity, b.Verbosity)
		setIf(&cfg.Log.File, b.File)
	}
	if b := raw.Expand; b != nil {
		setIf(&cfg.Expand.Suffix, b.Suffix)
		setIf(&cfg.Expand.Workers, b.Workers)
		setIf(&cfg.Expand.Exclude, b.Exclude)
	}
	if b := raw.Output; b != nil {
		setIf(&cfg.Output.Format, b.Format)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (c *Config) validate() error {
	if c.Expand.Suffix == "" {
		return fmt.Errorf("expand.suffix must not be empty")
	}
	if c.Expand.Workers < 0 {
		return fmt.Errorf("expand.workers must not be negative, got %d", c.Expand.Workers)
	}
	if _, _, err := render.ParseSelector(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	return nil
}

// LogFile returns the configured log file, or nil to log to stderr.
func (c *Config) LogFile() *string {
	if c.Log.File == "" {
		return nil
	}
	return &c.Log.File
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc(),
		},
	}
}

// envFunc creates the env(name, default) HCL function.
func envFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns an environment variable, or the default when it is unset or empty",
		Params: []function.Parameter{
			{
				Name: "name",
				Type: cty.String,
			},
			{
				Name: "default",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			if v := os.Getenv(args[0].AsString()); v != "" {
				return cty.StringVal(v), nil
			}
			return args[1], nil
		},
	})
}
