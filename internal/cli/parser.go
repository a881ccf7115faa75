// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"
	"io"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/spf13/pflag"
)

// Action tells the caller what to do with a parsed command line.
type Action int

const (
	// ActionServe starts the server with the parsed overrides.
	ActionServe Action = iota
	// ActionVersion prints version information and exits successfully.
	ActionVersion
	// ActionHelp prints usage and exits successfully.
	ActionHelp
	// ActionError reports Result.Err and exits with [ExitUsage].
	ActionError
)

// ExitUsage is the process exit code for an unusable command line.
const ExitUsage = 7

// Result is the outcome of [Parse].
type Result struct {
	Action Action

	// Overrides holds the configuration set on the command line. Only
	// options that were given are set.
	Overrides config.Partial

	// Env is the environment requested with --env, empty when not given.
	Env string

	// Dir is the directory to serve from, empty when not given.
	Dir string

	// ShowConfig requests printing the effective configuration.
	ShowConfig bool

	// Err is set for ActionError.
	Err error
}

type options struct {
	env        string
	port       int
	host       string
	showConfig bool
	version    bool
	help       bool
}

func newFlagSet(name string, opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.StringVar(&opts.env, "env", "", "Set the environment (typically development|production)")
	fs.IntVarP(&opts.port, "port", "p", 0, "Set server port")
	fs.StringVar(&opts.host, "host", "", "Set server host (empty binds all interfaces)")
	fs.BoolVar(&opts.showConfig, "show-config", false, "Log final configuration")
	fs.BoolVarP(&opts.version, "version", "v", false, "Show version info")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show this help")

	return fs
}

// Parse turns process arguments (without the program name) into a [Result].
//
// Recognized options are --env, -p/--port, --host, --show-config,
// -v/--version and -h/--help. A single positional argument names the
// directory to serve from. Any parse error wins over help and version
// requests; help wins over version.
func Parse(args []string) Result {
	var opts options
	fs := newFlagSet("coserv", &opts)

	if err := fs.Parse(args); err != nil {
		return Result{Action: ActionError, Err: classify(err)}
	}

	if opts.help {
		return Result{Action: ActionHelp}
	}
	if opts.version {
		return Result{Action: ActionVersion}
	}

	res := Result{
		Action:     ActionServe,
		Env:        opts.env,
		ShowConfig: opts.showConfig,
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		res.Dir = rest[0]
	default:
		return Result{Action: ActionError, Err: ErrTooManyArguments}
	}

	if fs.Changed("port") {
		port := opts.port
		res.Overrides.Port = &port
	}
	if fs.Changed("host") {
		if opts.host == "" {
			res.Overrides.Host = config.Null()
		} else {
			res.Overrides.Host = config.NullOf(opts.host)
		}
	}

	return res
}

func classify(err error) error {
	var notExist *pflag.NotExistError
	if errors.As(err, &notExist) {
		return &UnknownOptionError{Option: notExist.GetSpecifiedName()}
	}
	return &InvalidOptionError{Err: err}
}
