// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livereload

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/coserv/internal/logger"
	"github.com/MKhiriev/coserv/internal/utils"
	"github.com/gorilla/websocket"
)

// URL paths served by [Server] on the main listener.
const (
	ScriptPath = "/livereload.js"
	SocketPath = "/livereload"
)

//go:embed livereload.js
var clientScript []byte

// scriptModTime is reported for the embedded client script.
var scriptModTime = time.Now()

// ScriptTag is the element injected into served HTML pages.
const ScriptTag = `<script src="` + ScriptPath + `"></script>`

// Server serves the browser side of live reload: the client script and the
// websocket endpoint. Reload broadcasts to every connected browser.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewServer creates a live-reload server. Its hub starts with [Server.Run].
func NewServer(logger *logger.Logger) *Server {
	return &Server{
		hub: NewHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				// pages may be opened through any host name of the machine
				return true
			},
		},
		logger: logger,
	}
}

// Handles reports whether path is served by [Server].
func Handles(path string) bool {
	return path == ScriptPath || path == SocketPath
}

// ServeHTTP serves the client script and the websocket endpoint and answers
// 404 for any other path.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case ScriptPath:
		s.serveScript(w, r)
	case SocketPath:
		s.serveSocket(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Run runs the hub until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.hub.Run(ctx)
}

// Reload tells every connected browser that path changed.
func (s *Server) Reload(path string) {
	s.logger.Info().Str("path", path).Int("clients", s.hub.ClientCount()).Msg("reloading browsers")
	s.hub.Broadcast(reloadMessage(path))
}

func (s *Server) serveScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, ScriptPath, scriptModTime, bytes.NewReader(clientScript))
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// Upgrade replies with an HTTP error itself
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("livereload websocket upgrade failed")
		return
	}

	if err = handshake(conn); err != nil {
		log.Debug().Err(err).Msg("livereload handshake failed")
		_ = conn.Close()
		return
	}

	client := NewClient(utils.NewID(), s.hub, conn)
	if !s.hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// handshake waits for the peer's hello and answers with the server hello.
func handshake(conn *websocket.Conn) error {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeWait))

	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if msg.Command != CommandHello {
		return fmt.Errorf("%w: unexpected command %q", ErrHandshake, msg.Command)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(helloMessage()); err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	return nil
}
