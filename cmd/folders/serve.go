package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/owservable/folders"
	"github.com/owservable/folders/jobs"
	"github.com/owservable/folders/storage"
	"github.com/owservable/folders/web"
)

func newServeCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured sources over HTTP and run the scan jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return o.serve(ctx)
		},
	}
}

func (o *options) serve(ctx context.Context) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}

	sources, err := storage.NewSources(cfg.Sources())
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		log.Warn("No sources configured, the API will be empty")
	}

	catalog := folders.NewCatalog(sources, folders.WithWorkers(o.workersFrom(cfg)))
	defer catalog.Close()

	definitions, err := jobs.ParseDefinitions(cfg.Jobs(), catalog.Names())
	if err != nil {
		return err
	}

	scheduler := jobs.NewScheduler(catalog, definitions)
	defer scheduler.Close()

	log.Infof("Serving %d sources with %d scan jobs", len(sources), len(definitions))

	go scheduler.Run(ctx)

	srv := web.NewServer(cfg, web.NewRouter(catalog, scheduler))
	return web.Serve(ctx, srv, cfg.Http().Tls)
}
