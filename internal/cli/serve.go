package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/travelboss/daygrid/internal/server"
	"github.com/travelboss/daygrid/pkg/store"
)

const defaultListen = "127.0.0.1:8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daygrid HTTP API",
		Long: `Run the daygrid HTTP API.

The API computes layouts for posted events or calendar sources and can
persist them. Layouts are stored in MongoDB when mongo_uri is configured,
otherwise in memory for the lifetime of the process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen, noCache)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", fmt.Sprintf("bind address (default %s)", defaultListen))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the runner and store, then blocks serving HTTP until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, listen string, noCache bool) error {
	if listen == "" {
		listen = defaultListen
		if c.Config != nil && c.Config.Listen != "" {
			listen = c.Config.Listen
		}
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	printInfo("Serving on http://%s", listen)
	return server.NewServer(runner, st, c.Logger).Serve(ctx, listen)
}

// newStore opens the configured layout store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config != nil && c.Config.MongoURI != "" {
		c.Logger.Info("using mongo layout store")
		return store.NewMongoStore(ctx, store.MongoConfig{URI: c.Config.MongoURI})
	}
	c.Logger.Info("using in-memory layout store")
	return store.NewMemoryStore(), nil
}
