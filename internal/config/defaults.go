package config

// Built-in values used when no source provides a field.
const (
	DefaultPort      = 3000
	DefaultIndex     = "index.html"
	DefaultBodyLimit = 100 << 10
)

// DefaultLiveReloadExts are the extensions that trigger a reload unless the
// live-reload options list their own.
var DefaultLiveReloadExts = []string{
	"html", "htm", "css", "js", "mjs", "json",
	"png", "gif", "jpg", "jpeg", "svg", "webp", "ico",
}

// DefaultLiveReloadExclusions keep VCS metadata and installed packages out of
// the watcher.
var DefaultLiveReloadExclusions = []string{
	`(^|/)\.git(/|$)`,
	`(^|/)\.svn(/|$)`,
	`(^|/)\.hg(/|$)`,
	`(^|/)node_modules(/|$)`,
}

// Builtin returns the built-in defaults: a base partial (port 3000, host
// null) plus development and production scopes.
//
// A fresh value is returned on every call so callers may not alias each
// other's defaults.
func Builtin() Scoped {
	return Scoped{
		Base: Partial{
			Port: ptr(DefaultPort),
			Host: Null(),
		},
		Environments: map[Environment]Partial{
			Development: {
				Logging: ptr("dev"),
				Static: &PartialStatic{
					Path:        ptr("."),
					SPA:         ptr(true),
					NodeModules: ptr("./node_modules"),
				},
				LiveReload: &PartialLiveReload{
					Options: &PartialLiveReloadOptions{},
					Watch:   []string{"."},
				},
			},
			Production: {
				Logging: ptr("combined"),
				Static: &PartialStatic{
					Path: ptr("./dist"),
					SPA:  ptr(true),
				},
			},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
