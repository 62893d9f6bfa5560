package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/macropower/profedit/api/v1beta1"
	"github.com/macropower/profedit/api/v1beta1/configs"
	"github.com/macropower/profedit/api/v1beta1/projectconfigs"
	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/execs"
	"github.com/macropower/profedit/pkg/rule"
)

// Config is the effective configuration, after merging the project
// configuration into the global configuration.
type Config struct {
	// Edit contains the merged editing settings.
	Edit *editor.Config
	// Deploy is the deploy command from the global configuration.
	Deploy *execs.Command
	// Path is the global configuration file, empty when the embedded
	// defaults were used.
	Path string
	// ProjectPath is the project configuration file, if one was found.
	ProjectPath string
	// Rules are the project rules followed by the global rules.
	Rules []*rule.Rule
}

// Options contains the inputs of [Load].
type Options struct {
	// Path is the global configuration file. Defaults to [configs.GetPath].
	Path string
	// ProjectDir is where the search for a project configuration starts.
	// No project configuration is loaded when it is empty.
	ProjectDir string
	// WriteDefault writes the default configuration to Path when it does
	// not exist.
	WriteDefault bool
	// Colored enables colored source annotations in errors.
	Colored bool
}

// Load reads, validates and merges the global and project configurations.
func Load(opts Options) (*Config, error) {
	path := opts.Path
	if path == "" {
		path = configs.GetPath()
	}

	global, loadedPath, err := loadGlobal(path, opts)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Edit:   global.Edit,
		Deploy: global.Deploy,
		Rules:  global.Rules,
		Path:   loadedPath,
	}

	if opts.ProjectDir == "" {
		return cfg, nil
	}

	projectPath, err := projectconfigs.Find(opts.ProjectDir)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	if projectPath == "" {
		slog.Debug("no project config found", slog.String("dir", opts.ProjectDir))
		return cfg, nil
	}

	project, err := loadFile(projectPath, projectconfigs.New, projectconfigs.DefaultValidator, opts)
	if err != nil {
		return nil, fmt.Errorf("project config %s: %w", projectPath, err)
	}

	cfg.ProjectPath = projectPath
	cfg.Edit.Merge(project.Edit)
	cfg.Rules = slices.Concat(project.Rules, global.Rules)

	slog.Debug("loaded project config",
		slog.String("path", projectPath),
		slog.Int("rules", len(project.Rules)),
	)

	return cfg, nil
}

// loadGlobal returns the global configuration and the path it was read
// from, which is empty when the embedded defaults were used.
func loadGlobal(path string, opts Options) (*configs.Config, string, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		if !opts.WriteDefault {
			slog.Debug("config not found, using defaults", slog.String("path", path))

			cfg, err := loadBytes(configs.DefaultYAML(), configs.New, configs.DefaultValidator, opts)
			if err != nil {
				return nil, "", fmt.Errorf("default config: %w", err)
			}

			return cfg, "", nil
		}

		err = configs.WriteDefault(path, false)
		if err != nil {
			return nil, "", err //nolint:wrapcheck // Already wrapped.
		}
	}

	cfg, err := loadFile(path, configs.New, configs.DefaultValidator, opts)
	if err != nil {
		return nil, "", fmt.Errorf("config %s: %w", path, err)
	}

	slog.Debug("loaded config", slog.String("path", path))

	return cfg, path, nil
}

func loadFile[T v1beta1.Object](path string, newFunc func() T, v Validator, opts Options) (T, error) {
	l, err := NewLoaderFromFile(path, newFunc, v, WithColor(opts.Colored))
	if err != nil {
		var zero T
		return zero, err
	}

	return l.ValidateAndLoad()
}

func loadBytes[T v1beta1.Object](data []byte, newFunc func() T, v Validator, opts Options) (T, error) {
	return NewLoaderFromBytes(data, newFunc, v, WithColor(opts.Colored)).ValidateAndLoad()
}
