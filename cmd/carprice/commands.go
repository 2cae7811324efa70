package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"carprice/catalog"
	"carprice/db"
	qhttp "carprice/http"
	"carprice/predict"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// =============================================================================
// SERVE
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the price form over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override http.port",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, logger, err := loadSettings(c.String("config"))
	if err != nil {
		return err
	}
	defer logger.Sync()
	if c.IsSet("port") {
		cfg.Http.Port = c.Int("port")
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	svc, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	watchModel(ctx, cfg.Model, logger)

	server, err := qhttp.NewServer(qhttp.ServerConfig{
		Port:         cfg.Http.Port,
		Timeout:      cfg.Http.Timeout,
		MaxBodyBytes: cfg.Http.MaxBodyBytes,
	}, svc, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exiting")
	return nil
}

// =============================================================================
// PREDICT
// =============================================================================

func predictCommand() *cli.Command {
	flags := make([]cli.Flag, 0, len(predict.Fields()))
	for _, field := range predict.Fields() {
		flags = append(flags, &cli.StringFlag{
			Name:     field,
			Usage:    "Form value for " + field,
			Required: true,
		})
	}
	return &cli.Command{
		Name:   "predict",
		Usage:  "Estimate one car price from form values",
		Flags:  flags,
		Action: runPredict,
	}
}

func runPredict(c *cli.Context) error {
	cfg, logger, err := loadSettings(c.String("config"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, err := buildService(c.Context, cfg, logger)
	if err != nil {
		return err
	}

	values := url.Values{}
	for _, field := range predict.Fields() {
		values.Set(field, c.String(field))
	}
	result, err := svc.Estimate(c.Context, values)
	if err != nil {
		code := 1
		if predict.IsInputError(err) {
			code = 2
		}
		return cli.Exit(predict.Message(err), code)
	}

	fmt.Fprintf(c.App.Writer, "Predicted Price: $%s\n", result.Display)
	return nil
}

// =============================================================================
// BRANDS
// =============================================================================

func brandsCommand() *cli.Command {
	return &cli.Command{
		Name:  "brands",
		Usage: "List the brand catalog with model indices",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadSettings(c.String("config"))
			if err != nil {
				return err
			}
			defer logger.Sync()

			cat, err := loadCatalog(c.Context, cfg.Catalog)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "catalog %s (%d brands)\n", cat.Version(), cat.Len())
			for i, brand := range cat.Brands() {
				fmt.Fprintf(c.App.Writer, "%4d  %s\n", i+1, brand)
			}
			return nil
		},
	}
}

// =============================================================================
// CATALOG
// =============================================================================

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Maintain versioned brand catalogs",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Derive a catalog from the reference dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dataset",
						Aliases:  []string{"d"},
						Usage:    "Reference CSV the model was trained on",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "column",
						Value: catalog.DefaultColumn,
						Usage: "Column holding brand values",
					},
					&cli.StringFlag{
						Name:     "version",
						Usage:    "Version label for the catalog",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "yaml",
						Usage: "Write the catalog to this YAML file",
					},
					&cli.StringFlag{
						Name:  "sqlite",
						Usage: "Store the catalog in this SQLite database",
					},
				},
				Action: runCatalogImport,
			},
			{
				Name:  "versions",
				Usage: "List catalog versions stored in SQLite",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "sqlite",
						Usage:    "SQLite database path",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					store, err := db.Open(c.String("sqlite"))
					if err != nil {
						return err
					}
					defer store.Close()
					versions, err := store.Versions(c.Context)
					if err != nil {
						return err
					}
					for _, v := range versions {
						fmt.Fprintln(c.App.Writer, v)
					}
					return nil
				},
			},
		},
	}
}

func runCatalogImport(c *cli.Context) error {
	if c.String("yaml") == "" && c.String("sqlite") == "" {
		return errors.New("at least one of --yaml or --sqlite is required")
	}
	cat, err := catalog.LoadDataset(c.String("dataset"), c.String("column"), c.String("version"))
	if err != nil {
		return err
	}

	if path := c.String("yaml"); path != "" {
		if err := cat.WriteFile(path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(c.App.Writer, "wrote %d brands to %s\n", cat.Len(), path)
	}
	if path := c.String("sqlite"); path != "" {
		store, err := db.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveCatalog(c.Context, cat); err != nil {
			return fmt.Errorf("store catalog: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "stored catalog %s (%d brands) in %s\n", cat.Version(), cat.Len(), path)
	}
	return nil
}
