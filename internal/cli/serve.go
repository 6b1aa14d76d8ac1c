package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textfmt/pkg/cache"
	"github.com/matzehuels/textfmt/pkg/config"
	"github.com/matzehuels/textfmt/pkg/pipeline"
	"github.com/matzehuels/textfmt/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string
	configPath    string
	noCache       bool
}

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the formatting API over HTTP",
		Long: `Serve exposes POST /v1/format and GET /healthz. Request configs are laid
over the profile loaded with --config. Output is cached in Redis when --redis
is given, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis host:port or redis:// URL for a shared output cache")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", cache.DefaultRedisPrefix, "prefix for redis keys")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "base profile for every request")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the output cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	base, path, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Info("loaded profile", "path", path)
	}

	runner, err := c.serveRunner(cmd, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(runner, logger, server.WithBaseConfig(base))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveRunner picks the output cache: Redis when configured, otherwise the
// same cache the other commands use.
func (c *CLI) serveRunner(cmd *cobra.Command, opts serveOpts) (*pipeline.Runner, error) {
	if opts.noCache || opts.redisAddr == "" {
		return c.newRunner(opts.noCache)
	}

	spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Connecting to redis")
	spin.Start()
	rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisOptions{
		Addr:     opts.redisAddr,
		Password: opts.redisPassword,
		DB:       opts.redisDB,
		Prefix:   opts.redisPrefix,
	})
	if err != nil {
		spin.StopWithError("Redis unavailable")
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	spin.StopWithSuccess("Connected to redis")
	return pipeline.NewRunner(rc, nil, c.Logger), nil
}
