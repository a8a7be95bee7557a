package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petasbytes/taskrunner/internal/config"
	"github.com/petasbytes/taskrunner/internal/fsops"
	"github.com/petasbytes/taskrunner/internal/logging"
	"github.com/petasbytes/taskrunner/internal/provider"
	"github.com/petasbytes/taskrunner/tools"
)

// app is everything a subcommand needs once configuration is resolved.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	closer  io.Closer
	gateway *provider.Gateway
	files   *fsops.Reader
	toolbox *tools.Toolbox
}

func (a *app) Close() error { return a.closer.Close() }

type rootOptions struct {
	v          *viper.Viper
	configPath string
	// httpClient overrides the transport for model and fetch calls; tests set it.
	httpClient *http.Client
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.New()}

	root := &cobra.Command{
		Use:   "taskrunner",
		Short: "Run a free-text task through a planning step loop and mocked tools",
		Long: `taskrunner classifies a task by keyword (code, search, browse, read file),
then runs a fixed number of steps. Every planning interval it asks the model for
a plan; every step it runs one tool path and prints the result.

Examples:
  taskrunner run "Write code to print Hello World"
  taskrunner run "search python docs" --max-steps 2
  taskrunner run "browse https://example.com" --backend anthropic
  taskrunner run "read file" --file notes.txt
  taskrunner tools
  taskrunner history history.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ./taskrunner.yaml if present)")
	pf.String("backend", "", "model backend: gemini, anthropic or openai")
	pf.String("model", "", "model name (backend default when empty)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file (discarded when empty)")
	for key, flag := range map[string]string{
		"backend":   "backend",
		"model":     "model",
		"log.level": "log-level",
		"log.file":  "log-file",
	} {
		_ = opts.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newRunCmd(opts), newToolsCmd(), newCallCmd(opts), newHistoryCmd())
	return root
}

// setup resolves configuration and builds the gateway and tools.
func (o *rootOptions) setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(o.v, o.configPath)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	backend, err := provider.New(ctx, provider.ClientConfig{
		Backend:    cfg.Backend,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		HTTPClient: o.httpClient,
	})
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("create %s client: %w", cfg.Backend, err)
	}
	files, err := fsops.NewReader(cfg.ReadRoot)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("resolve read root: %w", err)
	}

	gw := provider.NewGateway(backend, logger.With("component", "gateway"))
	tb := tools.NewToolbox(gw, tools.Options{
		PromptLimit:    cfg.PromptLimit,
		BodyLimit:      cfg.BodyLimit,
		FetchTimeout:   cfg.FetchTimeout,
		BrowseMarkdown: cfg.BrowseMarkdown,
		CacheSize:      cfg.FetchCacheSize,
		CacheTTL:       cfg.FetchCacheTTL,
		HTTPClient:     o.httpClient,
		Loader:         files,
		Logger:         logger.With("component", "tools"),
	})
	logger.Debug("configured", "backend", cfg.Backend, "model", cfg.Model, "read_root", files.Root())

	return &app{cfg: cfg, logger: logger, closer: closer, gateway: gw, files: files, toolbox: tb}, nil
}
