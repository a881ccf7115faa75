package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// ErrNotAMapping is returned when a config document is not a mapping keyed
// by environment name.
var ErrNotAMapping = errors.New("config must be a mapping keyed by environment name")

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// decodeUserConfig decodes a YAML, TOML or JSON document into a
// [UserConfig]. Documents are first decoded into generic values and then
// normalized through JSON, so the json tags of [Partial] are the single
// schema for every format and explicit nulls stay distinguishable from
// absent keys.
//
// Top-level keys whose value is not a mapping are skipped. Inside an
// environment, unknown keys are an error.
func decodeUserConfig(ext string, data []byte) (UserConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return UserConfig{}, nil
	}

	var doc any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("error decoding yaml config: %w", err)
		}
	case ".toml":
		var tbl map[string]any
		if err := toml.Unmarshal(data, &tbl); err != nil {
			return nil, fmt.Errorf("error decoding toml config: %w", err)
		}
		if tbl == nil {
			return UserConfig{}, nil
		}
		doc = tbl
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("error decoding json config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if doc == nil {
		return UserConfig{}, nil
	}
	scopes, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotAMapping
	}

	cfg := UserConfig{}
	for name, scope := range scopes {
		// keys holding anything but a mapping are not environments
		switch scope.(type) {
		case nil:
			cfg[Environment(name)] = Partial{}
			continue
		case map[string]any:
		default:
			continue
		}

		normalized, err := json.Marshal(scope)
		if err != nil {
			return nil, fmt.Errorf("error normalizing %q config: %w", name, err)
		}

		var p Partial
		if err = decodeStrict(normalized, &p); err != nil {
			return nil, fmt.Errorf("error decoding %q config: %w", name, err)
		}
		cfg[Environment(name)] = p
	}

	return cfg, nil
}

// decodeStrict decodes a single JSON value into v, rejecting keys that v
// does not declare.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
