package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/storefront/app"
	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/resilience"
)

type globalFlags struct {
	configFile string
	output     string
	profile    string
	baseURL    string
	retries    int
	debug      bool
}

// cli is the state shared by every command.
type cli struct {
	flags  globalFlags
	stdout io.Writer
	stderr io.Writer
	out    *renderer
	app    *app.App
}

// execute runs the command line in args and releases the app afterwards.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{stdout: stdout, stderr: stderr}
	root := newRootCmd(c)
	root.SetArgs(args)
	defer c.close()
	return root.ExecuteContext(ctx)
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse products, manage your cart and orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["offline"] == "true" {
				return c.setupRenderer()
			}
			return c.setup(cmd.Context())
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	f := root.PersistentFlags()
	f.StringVarP(&c.flags.configFile, "config", "c", "", "config file (default: ./config.yml or <config dir>/storefront/config.yml)")
	f.StringVarP(&c.flags.output, "output", "o", formatTable, "output format: table, json or yaml")
	f.StringVar(&c.flags.profile, "profile", "", "storage profile to use")
	f.StringVar(&c.flags.baseURL, "base-url", "", "API base URL")
	f.IntVar(&c.flags.retries, "retries", 0, "retry read calls this many times on timeouts, network errors, 429 and 5xx")
	f.BoolVar(&c.flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAuthCmd(c),
		newWhoamiCmd(c),
		newProductsCmd(c),
		newCategoriesCmd(c),
		newCartCmd(c),
		newOrdersCmd(c),
		newThemeCmd(c),
		newVersionCmd(c),
	)
	return root
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.app.Close(ctx); err != nil {
		c.app.Logger.WithError(err).Warn("shutdown")
	}
	c.app = nil
}

func (c *cli) setupRenderer() error {
	r, err := newRenderer(c.stdout, c.flags.output)
	if err != nil {
		return err
	}
	c.out = r
	return nil
}

func (c *cli) setup(ctx context.Context) error {
	if err := c.setupRenderer(); err != nil {
		return err
	}
	cfg, err := app.Load(c.flags.configFile)
	if err != nil {
		return err
	}
	if c.flags.profile != "" {
		cfg.Storage.Profile = c.flags.profile
	}
	if c.flags.baseURL != "" {
		cfg.API.BaseURL = c.flags.baseURL
	}
	if c.flags.debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
		cfg.API.LogCalls = true
	}
	cfg.ApplyDefaults()
	log := logger.NewWithWriter(c.stderr, &cfg.Logging, cfg.Name)
	c.app, err = app.New(ctx, cfg, app.WithLogger(log), app.WithPresenter(c.out))
	return err
}

// retryConfig returns the caller retry policy set by --retries.
func (c *cli) retryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = c.flags.retries + 1
	cfg.OnRetry = func(attempt int, resp httpclient.Response, backoff time.Duration) {
		c.app.Logger.Warn(fmt.Sprintf("attempt %d failed (%d %s), retrying in %s", attempt, resp.Status, resp.Error, backoff.Round(time.Millisecond)))
	}
	return cfg
}

// splitArg splits a comma-separated flag value, dropping empty parts.
func splitArg(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// errorMessage returns the text shown for a failed command. API failures
// are shown as the server reported them.
func errorMessage(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.Cause != nil {
			return appErr.Message + ": " + appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
