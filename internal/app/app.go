// Package app wires the command line, the configuration and the server
// together. [Run] is the single place that turns startup outcomes into
// process exit codes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"

	"github.com/MKhiriev/coserv/internal/cli"
	"github.com/MKhiriev/coserv/internal/config"
	handler "github.com/MKhiriev/coserv/internal/handler/http"
	"github.com/MKhiriev/coserv/internal/livereload"
	"github.com/MKhiriev/coserv/internal/logger"
	"github.com/MKhiriev/coserv/internal/server"
	"github.com/MKhiriev/coserv/internal/utils"
	"github.com/MKhiriev/coserv/internal/workers"
	"github.com/MKhiriev/coserv/models"
	"github.com/joho/godotenv"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = cli.ExitUsage
)

// dotEnvFile is loaded from the served directory when present.
const dotEnvFile = ".env"

// Options are the process facilities [Run] works with.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	BuildInfo models.AppBuildInfo

	// Loader replaces the config file loader. Nil reads the file named by
	// COSERV_CONFIG or the first coserv.config.* file in the directory.
	Loader config.Loader

	// Ready, when set, is called with the bound address once the server
	// accepts connections.
	Ready func(addr net.Addr)
}

// Run executes coserv with args (without the program name) and returns the
// process exit code. The server runs until ctx is done or the process
// receives a termination signal.
func Run(ctx context.Context, args []string, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	res := cli.Parse(args)

	switch res.Action {
	case cli.ActionHelp:
		cli.PrintHelp(opts.Stdout, opts.BuildInfo)
		return ExitOK
	case cli.ActionVersion:
		cli.PrintVersion(opts.Stdout, opts.BuildInfo)
		return ExitOK
	case cli.ActionError:
		fmt.Fprintln(opts.Stderr, res.Err)
		fmt.Fprintln(opts.Stderr, MsgUsageHint)
		return ExitUsage
	}

	if err := serve(ctx, res, opts); err != nil {
		fmt.Fprintf(opts.Stderr, MsgStartupFailed, err)
		return ExitFailure
	}
	return ExitOK
}

func serve(ctx context.Context, res cli.Result, opts Options) error {
	if res.Dir != "" {
		if err := os.Chdir(res.Dir); err != nil {
			return fmt.Errorf("error changing to directory %q: %w", res.Dir, err)
		}
	}

	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", dotEnvFile, err)
	}

	pe, err := config.ReadProcessEnv()
	if err != nil {
		return err
	}
	env := pe.Environment(res.Env)

	loader := opts.Loader
	if loader == nil {
		loader = config.NewFileLoader(pe.ConfigFile)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting working directory: %w", err)
	}

	cfg, err := config.GetEffectiveConfig(env, loader, wd, res.Overrides)
	if err != nil {
		return err
	}

	if res.ShowConfig {
		if err = utils.EncodeJSON(opts.Stdout, cfg, "    "); err != nil {
			return err
		}
	}

	fmt.Fprintf(opts.Stdout, MsgRunningAs, env)

	log := newLogger(env, opts.Stderr)
	if !cfg.Scoped {
		log.Warn().Str("environment", string(env)).Msg(MsgUnscopedEnvironment)
	}

	lr, ws, err := newLiveReload(cfg, log)
	if err != nil {
		return err
	}

	h := handler.NewHandler(cfg, handler.Deps{AccessLog: opts.Stdout, LiveReload: lr}, log)

	srv, err := server.NewServer(h.Init(), cfg, ws, log)
	if err != nil {
		return err
	}

	addr := srv.Addr()
	fmt.Fprintf(opts.Stdout, MsgServerRunning, hostOf(addr), portOf(addr))
	if opts.Ready != nil {
		opts.Ready(addr)
	}

	return srv.Run(ctx)
}

// newLogger picks human-readable output for local development and JSON
// everywhere else.
func newLogger(env config.Environment, w io.Writer) *logger.Logger {
	if env == config.Development {
		return logger.NewConsoleLogger("coserv", w)
	}
	return logger.NewLogger("coserv", w)
}

// newLiveReload creates the live-reload endpoints and the workers that keep
// them running. Both are empty when live reload is off.
func newLiveReload(cfg *config.Config, log *logger.Logger) (http.Handler, *workers.Workers, error) {
	ws := workers.NewWorkers()
	if cfg.LiveReload == nil {
		return nil, ws, nil
	}

	lr := livereload.NewServer(log.GetChildLogger())
	watcher, err := livereload.NewWatcher(*cfg.LiveReload, lr.Reload, log.GetChildLogger())
	if err != nil {
		return nil, nil, err
	}

	ws.Add(lr)
	ws.Add(watcher)
	return lr, ws, nil
}

func hostOf(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

func portOf(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
