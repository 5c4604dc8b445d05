// Package app implements the httpq command line.
//
// Every subcommand issues exactly one query against the client configured by
// the global flags and prints the validated result as indented JSON.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/httpq/client"
	"github.com/adamwoolhether/httpq/errs"
)

const (
	// cliName is the name of the CLI application
	cliName = "httpq"

	// cliDescription is the short description shown in help text
	cliDescription = "httpq - typed HTTP queries from the command line"

	// clientKey is the registry key of the client built from the global flags.
	clientKey = "cli"

	// baseURLEnv is read when --base-url is not given.
	baseURLEnv = "HTTPQ_BASE_URL"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// BaseURL is prepended to every endpoint.
	BaseURL string

	// Params are key=value query parameters, sent in the given order.
	Params []string

	// Headers are key=value request headers.
	Headers []string

	// Expect names the schema the response body is validated against.
	Expect string

	Timeout   time.Duration
	UserAgent string
	RPS       int
	Burst     int

	// Verbose enables debug logging on stderr.
	Verbose bool
}

// NewHTTPQCommand creates the root httpq command with all subcommands.
func NewHTTPQCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `httpq issues a single HTTP request built from an endpoint, query
parameters and headers, validates the response body against the schema named
by --expect, and prints the result as JSON.

Failures are printed as "<kind>: <message>", where kind is one of transport,
validation, config or registry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.BaseURL, "base-url", "",
		"base URL of the remote API (default: $"+baseURLEnv+")")
	flags.StringArrayVarP(&opts.Params, "param", "p", nil,
		"query parameter as key=value, repeatable")
	flags.StringArrayVarP(&opts.Headers, "header", "H", nil,
		"request header as key=value, repeatable")
	flags.StringVar(&opts.Expect, "expect", "any",
		"response schema: any, string, number, int or bool")
	flags.DurationVar(&opts.Timeout, "timeout", 30*time.Second,
		"overall request timeout")
	flags.StringVar(&opts.UserAgent, "user-agent", "",
		"User-Agent header sent with the request")
	flags.IntVar(&opts.RPS, "rps", 0,
		"throttle to this many requests per second (0 disables)")
	flags.IntVar(&opts.Burst, "burst", 1,
		"throttle burst size, used with --rps")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose output")

	cmd.AddCommand(
		NewGetCommand(opts),
		NewDeleteCommand(opts),
		NewPostCommand(opts),
		NewPutCommand(opts),
		NewPatchCommand(opts),
	)

	return cmd
}

// FormatError renders err the way the CLI reports failures.
func FormatError(err error) string {
	if e, ok := errs.As(err); ok {
		return e.String()
	}
	return fmt.Sprintf("Error: %v", err)
}

// getClient registers the client described by the global flags.
//
// The base URL is resolved in order:
//  1. --base-url flag
//  2. $HTTPQ_BASE_URL
func getClient(opts *GlobalOptions, stderr io.Writer) (*client.Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv(baseURLEnv)
	}

	level := slog.LevelError + 1 // failures are printed by FormatError
	if opts.Verbose {
		level = slog.LevelDebug
	}

	clientOpts := []client.Option{
		client.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))),
		client.WithTimeout(opts.Timeout),
	}
	if opts.UserAgent != "" {
		clientOpts = append(clientOpts, client.WithUserAgent(opts.UserAgent))
	}
	if opts.RPS != 0 {
		clientOpts = append(clientOpts, client.WithThrottle(opts.RPS, opts.Burst))
	}

	return client.NewRegistry().Register(clientKey, baseURL, clientOpts...)
}
