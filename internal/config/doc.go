// Package config resolves the effective server configuration.
//
// The effective configuration is assembled from four partial sources in the
// following precedence order (later sources override earlier ones leaf by
// leaf, sections are merged recursively):
//  1. Built-in defaults ([Builtin] base)
//  2. Built-in defaults scoped to the active [Environment]
//  3. User config file scoped to the active [Environment]
//  4. Command-line overrides
//
// After the merge, derived defaults are applied (see [derivedDefaults]) and
// the result is finalized into an immutable [Config] and validated.
//
// The main entry points are [GetEffectiveConfig] for the whole pipeline and
// [Resolve] for the pure merge step.
package config
