// Package livereload implements the live-reload side channel of the server.
//
// A [Watcher] observes the configured directories with fsnotify and reports
// changed files. The [Server] keeps the connected browsers in a [Hub] and
// tells them to reload using the LiveReload protocol (version 7) over a
// websocket mounted at [SocketPath]. The browser client script is embedded in
// the binary and served at [ScriptPath].
package livereload
