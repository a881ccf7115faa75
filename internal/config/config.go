// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"time"
)

// Partial is a sparse configuration fragment. Every field is optional: a nil
// pointer (or an unset [NullString]) means "not provided by this source".
//
// Partial values are merged, never used standalone. The JSON tags define the
// schema of the user config file for every supported format (YAML and TOML
// documents are normalized through JSON before decoding).
type Partial struct {
	// Port is the TCP port the server listens on.
	Port *int `json:"port,omitempty"`

	// Host is the listen host. An explicit null means "bind all interfaces"
	// and must survive the merge as null.
	Host NullString `json:"host"`

	// Logging is the access log format identifier (e.g. "dev", "combined").
	Logging *string `json:"logging,omitempty"`

	// API declares the API-serving variant: cookie and body parsers are
	// attached only when this section is present.
	API *PartialAPI `json:"api,omitempty"`

	// Static configures static file serving.
	Static *PartialStatic `json:"static,omitempty"`

	// LiveReload configures the live-reload watcher. Its presence enables
	// live reload.
	LiveReload *PartialLiveReload `json:"livereload,omitempty"`
}

// PartialStatic is the optional form of [Static].
type PartialStatic struct {
	Path        *string           `json:"path,omitempty"`
	SPA         *bool             `json:"spa,omitempty"`
	Index       *string           `json:"index,omitempty"`
	NodeModules *string           `json:"node_modules,omitempty"`
	LiveReload  *bool             `json:"livereload,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// PartialLiveReload is the optional form of [LiveReload].
//
// In a config file the section may also be written as a boolean: true
// enables live reload with default settings, false removes a section
// provided by a lower-precedence source.
type PartialLiveReload struct {
	Options  *PartialLiveReloadOptions `json:"options,omitempty"`
	Watch    []string                  `json:"watch,omitempty"`
	Disabled bool                      `json:"-"`
}

// PartialLiveReloadOptions is the optional form of [LiveReloadOptions].
type PartialLiveReloadOptions struct {
	Exts       []string  `json:"exts,omitempty"`
	Exclusions []string  `json:"exclusions,omitempty"`
	Delay      *Duration `json:"delay,omitempty"`
}

// PartialAPI is the optional form of [API]. Like [PartialLiveReload] it may
// be written as a boolean in a config file.
type PartialAPI struct {
	BodyLimit *int64 `json:"bodyLimit,omitempty"`
	Disabled  bool   `json:"-"`
}

// Scoped is a partial configuration that additionally carries
// environment-scoped partials. Only the built-in defaults have this shape.
type Scoped struct {
	Base         Partial
	Environments map[Environment]Partial
}

// Has reports whether s defines a scope for env.
func (s Scoped) Has(env Environment) bool {
	_, ok := s.Environments[env]
	return ok
}

// UserConfig is the content of a user config file: a mapping from
// environment name to the partial configuration applied in that environment.
type UserConfig map[Environment]Partial

// Has reports whether u defines a scope for env.
func (u UserConfig) Has(env Environment) bool {
	_, ok := u[env]
	return ok
}

// Config is the effective configuration. It is produced once by [Resolve]
// and must be treated as read-only afterwards.
type Config struct {
	Port       int         `json:"port"`
	Host       *string     `json:"host"`
	Logging    string      `json:"logging,omitempty"`
	API        *API        `json:"api,omitempty"`
	Static     Static      `json:"static"`
	LiveReload *LiveReload `json:"livereload,omitempty"`

	// Environment is the environment the configuration was resolved for.
	Environment Environment `json:"-"`

	// Scoped reports whether the built-in defaults or the user config
	// define a scope for Environment.
	Scoped bool `json:"-"`
}

// Static holds the static file serving settings.
type Static struct {
	// Path is the root directory files are served from.
	Path string `json:"path"`

	// SPA enables the single-page-application fallback: unmatched paths
	// that look like page navigations are answered with Index.
	SPA bool `json:"spa"`

	// Index is the entry file served for directories and SPA fallbacks.
	Index string `json:"index"`

	// NodeModules, when non-empty, is a directory exposed read-only under
	// the /node_modules/ URL prefix.
	NodeModules string `json:"node_modules,omitempty"`

	// LiveReload makes served HTML pages load the live-reload client script.
	LiveReload bool `json:"livereload"`

	// Headers are extra response headers added to every served file.
	Headers map[string]string `json:"headers,omitempty"`
}

// LiveReload holds the live-reload watcher settings.
type LiveReload struct {
	Options LiveReloadOptions `json:"options"`
	Watch   []string          `json:"watch"`
}

// LiveReloadOptions tunes the file watcher.
type LiveReloadOptions struct {
	// Exts lists the file extensions (without dot) that trigger a reload.
	Exts []string `json:"exts"`

	// Exclusions are regular expressions matched against slash separated
	// paths; matching files and directories are not watched.
	Exclusions []string `json:"exclusions"`

	// Delay debounces bursts of file changes into a single reload.
	Delay Duration `json:"delay"`
}

// API holds the settings of the request parsers.
type API struct {
	// BodyLimit is the maximum accepted request body size in bytes.
	BodyLimit int64 `json:"bodyLimit"`
}

// NullString is a tri-state optional string: absent, explicit null or a
// value. The zero value is absent.
type NullString struct {
	// Set reports whether the source provided the field at all.
	Set bool

	// Value is nil for an explicit null.
	Value *string
}

// NullOf returns a set [NullString] holding s.
func NullOf(s string) NullString {
	return NullString{Set: true, Value: &s}
}

// Null returns a set [NullString] holding an explicit null.
func Null() NullString {
	return NullString{Set: true}
}

// UnmarshalJSON marks the field as set; JSON null is kept as an explicit null.
func (n *NullString) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = nil
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON writes the value or null.
func (n NullString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// UnmarshalJSON accepts either a section object or a boolean toggle.
func (l *PartialLiveReload) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var enabled bool
	if err := json.Unmarshal(b, &enabled); err == nil {
		*l = PartialLiveReload{Disabled: !enabled}
		return nil
	}

	type plain PartialLiveReload
	var v plain
	if err := decodeStrict(b, &v); err != nil {
		return err
	}
	*l = PartialLiveReload(v)
	return nil
}

// UnmarshalJSON accepts either a section object or a boolean toggle.
func (a *PartialAPI) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var enabled bool
	if err := json.Unmarshal(b, &enabled); err == nil {
		*a = PartialAPI{Disabled: !enabled}
		return nil
	}

	type plain PartialAPI
	var v plain
	if err := decodeStrict(b, &v); err != nil {
		return err
	}
	*a = PartialAPI(v)
	return nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "250ms" and from plain numbers of milliseconds.
type Duration time.Duration

// UnmarshalJSON decodes a duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value * float64(time.Millisecond)))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// MarshalJSON encodes the duration as a string such as "250ms".
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
