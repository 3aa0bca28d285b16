// Package cmd wires the ovx command tree: global flags, configuration
// resolution, and per-command dispatch. Commands stay thin — build a client,
// call an endpoint, hand the result to the render engine.
package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openviking/ovx/internal/client"
	"github.com/openviking/ovx/internal/config"
	"github.com/openviking/ovx/internal/filter"
	"github.com/openviking/ovx/internal/render"
	"github.com/openviking/ovx/pkg/logger"
)

var (
	outputFlag  string
	compactFlag bool
	filterExpr  string
	configPath  string
	urlFlag     string
	apiKeyFlag  string
	debugFlag   bool
)

var rootCmd = &cobra.Command{
	Use:           "ovx",
	Short:         "OpenViking - an agent-native context database client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(pf *pflag.FlagSet) {
	pf.StringVarP(&outputFlag, "output", "o", "table", "output format: table or json")
	pf.BoolVarP(&compactFlag, "compact", "c", true, "compact JSON output / simplified table output")
	pf.StringVar(&filterExpr, "filter", "", "CEL expression applied to the result before rendering (result bound to _)")
	pf.StringVar(&configPath, "config", "", "path to config file")
	pf.StringVar(&urlFlag, "url", "", "server base URL (overrides config)")
	pf.StringVar(&apiKeyFlag, "api-key", "", "API key (overrides config)")
	pf.BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// exitError carries a process exit code alongside the underlying error.
// Configuration failures exit with 2, command failures with 1.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// Execute runs the root command, reporting any error on stderr in the
// selected output mode.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func reportError(err error) {
	format := render.ParseFormat(outputFlag)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code
		if code == "" {
			code = "API_ERROR"
		}
		render.Error(os.Stderr, code, apiErr.Message, format, compactFlag)
		return
	}
	render.Error(os.Stderr, "ERROR", err.Error(), format, compactFlag)
}

// cliContext is the resolved per-invocation state shared by all commands.
type cliContext struct {
	cfg     *config.Config
	format  render.Format
	compact bool
	log     *logr.Logger
}

func newCLIContext() (*cliContext, error) {
	level := int8(0)
	if debugFlag {
		level = -1
	}
	log := logger.Get(level)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, &exitError{code: 2, err: err}
	}
	if urlFlag != "" {
		cfg.URL = urlFlag
	}
	if apiKeyFlag != "" {
		cfg.APIKey = apiKeyFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, &exitError{code: 2, err: err}
	}

	log.V(1).Info("configuration resolved", "url", cfg.URL, "source", cfg.Source)

	return &cliContext{
		cfg:     cfg,
		format:  render.ParseFormat(outputFlag),
		compact: compactFlag,
		log:     log,
	}, nil
}

func (c *cliContext) client() *client.Client {
	return client.New(c.cfg.URL, c.cfg.APIKey, c.cfg.Timeout())
}

// emit applies the optional --filter expression and writes the result in the
// selected output mode.
func (c *cliContext) emit(w io.Writer, result any) error {
	if filterExpr != "" {
		filtered, err := filter.Apply(filterExpr, result)
		if err != nil {
			return err
		}
		result = filtered
	}
	render.Success(w, result, c.format, c.compact)
	return nil
}
