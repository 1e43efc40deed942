package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/socialchef/chefgpt/internal/config"
	apperrors "github.com/socialchef/chefgpt/internal/errors"
	"github.com/socialchef/chefgpt/internal/gateway"
	"github.com/socialchef/chefgpt/internal/llm"
	"github.com/socialchef/chefgpt/internal/logger"
	"github.com/socialchef/chefgpt/internal/utils"
	"github.com/spf13/cobra"
)

type cli struct {
	loadConfig  func() (*config.Config, error)
	newProvider func(ctx context.Context, cfg *config.Config) (llm.Provider, error)

	provider string
	model    string
	timeout  time.Duration
	retries  int
	asJSON   bool
	verbose  bool

	// retryDelay overrides the initial backoff when set.
	retryDelay time.Duration

	cfg *config.Config
	gw  *gateway.Gateway
}

func defaultCLI() *cli {
	return &cli{
		loadConfig: config.Load,
		newProvider: func(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
			return llm.NewProvider(ctx, cfg.Generation, cfg.KeyFor)
		},
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "chefgpt",
		Short:         "Generate recipes from the ingredients you have",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.provider, "provider", "", "model provider (gemini, groq, cerebras, openai)")
	flags.StringVar(&c.model, "model", "", "model name override")
	flags.DurationVar(&c.timeout, "timeout", 0, "per-call timeout (default from config)")
	flags.IntVar(&c.retries, "retries", 0, "extra attempts on retryable generation errors")
	flags.BoolVar(&c.asJSON, "json", false, "print the raw JSON result")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newGenerateCmd(c),
		newModifyCmd(c),
		newNameCmd(c),
		newSuggestCmd(c),
		newDetailsCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(logger.NewWithLevel("cli", cmd.ErrOrStderr(), level))

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if c.provider != "" {
		cfg.Generation.Provider = c.provider
		cfg.Generation.BaseURL = ""
		if cfg.KeyFor(c.provider) == "" {
			return fmt.Errorf("API key for generation provider %q is required", c.provider)
		}
	}
	if c.model != "" {
		cfg.Generation.Model = c.model
	}
	if c.timeout > 0 {
		cfg.Generation.Timeout = c.timeout
	}

	provider, err := c.newProvider(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create model provider: %w", err)
	}

	c.cfg = cfg
	c.gw = gateway.New(provider, cfg.Generation.Timeout)
	return nil
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.IsRetryable()
	}
	return llm.IsRetryableError(err)
}

// run calls one capability with the caller-side retry policy and prints the
// result.
func run[In, Out any](cmd *cobra.Command, c *cli, call func(context.Context, In) (Out, error), in In, render func(*cobra.Command, Out)) error {
	retryCfg := utils.GenerationRetryConfig(c.retries+1, c.cfg.Generation.Timeout+5*time.Second, retryable)
	if c.retryDelay > 0 {
		retryCfg.InitialDelay = c.retryDelay
	}

	attempt := 0
	out, err := utils.WithRetry(cmd.Context(), func(ctx context.Context) (Out, error) {
		attempt++
		if attempt > 1 {
			slog.InfoContext(ctx, "Retrying generation", "attempt", attempt, "max_attempts", retryCfg.MaxAttempts)
		}
		return call(ctx, in)
	}, retryCfg)
	if err != nil {
		return err
	}

	if c.asJSON {
		return printJSON(cmd, out)
	}
	render(cmd, out)
	return nil
}
