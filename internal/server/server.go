package server

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/MKhiriev/coserv/internal/logger"
	"github.com/MKhiriev/coserv/internal/workers"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer binds the listen address of cfg and returns a server that
// serves handler on it. Workers run for as long as the server does; nil
// means none.
func NewServer(handler http.Handler, cfg *config.Config, ws *workers.Workers, logger *logger.Logger) (Server, error) {
	h, err := newHTTPServer(handler, cfg.Addr(), logger)
	if err != nil {
		return nil, err
	}

	if ws == nil {
		ws = workers.NewWorkers()
	}

	logger.Debug().Str("addr", h.listener.Addr().String()).Int("workers", ws.Len()).Msg("server created")

	return &server{
		httpServer: h,
		workers:    ws,
		logger:     logger,
	}, nil
}

func (s *server) Addr() net.Addr {
	return s.httpServer.listener.Addr()
}

func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(s.httpServer.RunServer)
	g.Go(func() error {
		return s.workers.Run(ctx)
	})

	// listen for stop signals and failures
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info().Msg("shutting down")
		s.httpServer.Shutdown()
		return nil
	})

	err := g.Wait()
	s.logger.Info().Msg("server shut down gracefully")
	return err
}
