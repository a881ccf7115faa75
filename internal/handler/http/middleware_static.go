// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/MKhiriev/coserv/internal/livereload"
	"github.com/MKhiriev/coserv/internal/logger"
)

const nodeModulesPrefix = "/node_modules"

// staticServer serves files below a root directory.
type staticServer struct {
	root        http.FileSystem
	nodeModules http.FileSystem
	index       string
	spa         bool
	inject      bool
	headers     map[string]string
	reserved    map[string]struct{}
}

// newStaticServer returns the static behavior for cfg. Requests for the
// reserved paths are never looked up on disk.
func newStaticServer(cfg config.Static, reserved ...string) *staticServer {
	s := &staticServer{
		root:    http.Dir(cfg.Path),
		index:   cfg.Index,
		spa:     cfg.SPA,
		inject:  cfg.LiveReload,
		headers: cfg.Headers,
	}
	if len(reserved) > 0 {
		s.reserved = make(map[string]struct{}, len(reserved))
		for _, p := range reserved {
			s.reserved[p] = struct{}{}
		}
	}
	if cfg.NodeModules != "" {
		s.nodeModules = http.Dir(cfg.NodeModules)
	}
	return s
}

// middleware answers GET and HEAD requests for existing files. With the SPA
// fallback enabled, page navigations to unknown paths get the index file.
// Paths with a segment starting with a dot are hidden. Anything else is
// passed to next.
func (s *staticServer) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := s.reserved[r.URL.Path]; ok || hasDotSegment(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		fsys, name := s.resolve(r.URL.Path)
		if s.serveFile(w, r, fsys, name) {
			return
		}
		if s.spa && isNavigation(r) && s.serveFile(w, r, s.root, "/"+s.index) {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolve maps a URL path to the file system holding it and the name of the
// file inside it.
func (s *staticServer) resolve(urlPath string) (http.FileSystem, string) {
	name := path.Clean("/" + urlPath)

	if s.nodeModules != nil && (name == nodeModulesPrefix || strings.HasPrefix(name, nodeModulesPrefix+"/")) {
		rest := strings.TrimPrefix(name, nodeModulesPrefix)
		if rest == "" {
			rest = "/"
		}
		return s.nodeModules, rest
	}

	return s.root, name
}

// serveFile writes the file name of fsys and reports whether it answered
// the request. Directories are answered with their index file.
func (s *staticServer) serveFile(w http.ResponseWriter, r *http.Request, fsys http.FileSystem, name string) bool {
	f, err := fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}

	if info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			target := r.URL.Path + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return true
		}

		name = path.Join(name, s.index)
		index, err := fsys.Open(name)
		if err != nil {
			return false
		}
		defer index.Close()

		if info, err = index.Stat(); err != nil || info.IsDir() {
			return false
		}
		f = index
	}

	for k, v := range s.headers {
		w.Header().Set(k, v)
	}

	if s.inject && isHTMLFile(name) {
		content, err := io.ReadAll(f)
		if err != nil {
			logger.FromRequest(r).Error().Err(err).Str("file", name).Msg("error reading file")
			return false
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, name, info.ModTime(), bytes.NewReader(injectScript(content)))
		return true
	}

	http.ServeContent(w, r, name, info.ModTime(), f)
	return true
}

// hasDotSegment reports whether any segment of the slash separated urlPath
// starts with a dot, like "/.env" or "/.git/config". The "." and ".."
// segments count too.
func hasDotSegment(urlPath string) bool {
	for _, seg := range strings.Split(urlPath, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// isNavigation reports whether r looks like a browser page navigation: an
// extension-less path requested by a client that accepts HTML.
func isNavigation(r *http.Request) bool {
	if r.Header.Get("Upgrade") != "" {
		return false
	}
	if path.Ext(r.URL.Path) != "" {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

func isHTMLFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// injectScript inserts the live-reload script tag before the closing body
// tag, or before the closing html tag, or at the end of the document.
func injectScript(content []byte) []byte {
	lower := bytes.ToLower(content)
	at := bytes.LastIndex(lower, []byte("</body>"))
	if at < 0 {
		at = bytes.LastIndex(lower, []byte("</html>"))
	}
	if at < 0 {
		at = len(content)
	}

	out := make([]byte, 0, len(content)+len(livereload.ScriptTag))
	out = append(out, content[:at]...)
	out = append(out, livereload.ScriptTag...)
	return append(out, content[at:]...)
}
