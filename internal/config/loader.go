// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=loader.go -destination=../mock/config_loader_mock.go -package=mock

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Loader obtains the user configuration for a working directory. The
// resolver does not care how the source is located or decoded.
type Loader interface {
	// Load returns the user configuration found for dir or a
	// *ConfigLoadError.
	Load(dir string) (UserConfig, error)
}

// ConfigFileNames are searched, in order, in the working directory.
var ConfigFileNames = []string{
	"coserv.config.yaml",
	"coserv.config.yml",
	"coserv.config.toml",
	"coserv.config.json",
}

// FileLoader loads the user configuration from a file.
type FileLoader struct {
	// Path, when non-empty, names the config file explicitly. Relative
	// paths are resolved against the directory passed to Load.
	Path string
}

// NewFileLoader returns a [FileLoader]. An empty path enables the lookup of
// [ConfigFileNames].
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load reads and decodes the config file for dir.
//
// The file must contain a mapping keyed by environment name. An empty file
// or an empty mapping is a valid, empty configuration.
func (l *FileLoader) Load(dir string) (UserConfig, error) {
	path, err := l.locate(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}

	cfg, err := decodeUserConfig(filepath.Ext(path), data)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}

	return cfg, nil
}

func (l *FileLoader) locate(dir string) (string, error) {
	if l.Path != "" {
		path := l.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", &ConfigLoadError{Path: path, Err: ErrConfigNotFound}
			}
			return "", &ConfigLoadError{Path: path, Err: err}
		}
		return path, nil
	}

	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", &ConfigLoadError{Path: path, Err: err}
		}
	}

	return "", &ConfigLoadError{
		Path: dir,
		Err:  fmt.Errorf("%w: expected one of %v", ErrConfigNotFound, ConfigFileNames),
	}
}
