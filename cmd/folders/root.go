package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/owservable/folders"
	"github.com/owservable/folders/config"
	"github.com/owservable/folders/storage"
)

type options struct {
	debug      bool
	configPath string
	workers    int
	source     string

	cfg *config.Configuration
}

func newRootCommand() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   app,
		Short: "Collect files and named subfolders below a directory",
		Long: `folders walks directory trees on the local disk or in S3 buckets.

It lists every file below a folder, finds subfolders with a given name,
or collects the files of all such subfolders. Paths are printed in
pre-order: the files of a directory before anything below it.`,
		Version:      version(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("%s (%s)", app, version())
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "configuration file (default: search ./, ~/.folders/, /etc/folders/)")
	cmd.PersistentFlags().IntVar(&o.workers, "workers", 0, "entries checked concurrently per directory (default: from configuration, else 1)")
	cmd.PersistentFlags().StringVar(&o.source, "source", "", "run against a configured source instead of the local filesystem")

	cmd.AddCommand(newFilesCommand(o))
	cmd.AddCommand(newFindCommand(o))
	cmd.AddCommand(newCollectCommand(o))
	cmd.AddCommand(newServeCommand(o))

	return cmd
}

func newFilesCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "files <folder>...",
		Short: "Print every file below the given folders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			walker, resolve, err := o.walker()
			if err != nil {
				return err
			}

			files := []string{}
			for _, arg := range args {
				folder, err := resolve(arg)
				if err != nil {
					return err
				}

				if _, err := walker.AddFilesFromFolder(&files, folder); err != nil {
					return err
				}
			}

			return printPaths(cmd.OutOrStdout(), files)
		},
	}
}

func newFindCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find <root> <name>",
		Short: "Print every folder below root called name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), folders.OperationFind, args[0], args[1])
		},
	}
}

func newCollectCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "collect <root> <name>",
		Short: "Print the files of every folder below root called name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), folders.OperationCollect, args[0], args[1])
		},
	}
}

func (o *options) run(out io.Writer, op folders.Operation, root string, name string) error {
	walker, resolve, err := o.walker()
	if err != nil {
		return err
	}

	resolved, err := resolve(root)
	if err != nil {
		return err
	}

	paths, err := walker.Run(op, resolved, name)
	if err != nil {
		return err
	}

	return printPaths(out, paths)
}

// walker returns the walker for --source, or one for the local filesystem,
// together with the function mapping command line roots onto it.
func (o *options) walker() (*folders.Walker, func(string) (string, error), error) {
	if o.source == "" {
		walker := folders.New(storage.NewLocalFilesystem(), folders.WithWorkers(o.workers))
		return walker, func(root string) (string, error) { return root, nil }, nil
	}

	cfg, err := o.config()
	if err != nil {
		return nil, nil, err
	}

	sourceConfig := cfg.Source(o.source)
	if sourceConfig == nil {
		return nil, nil, &folders.UnknownSourceError{Name: o.source}
	}

	source, err := storage.NewSource(sourceConfig)
	if err != nil {
		return nil, nil, err
	}

	return folders.New(source, folders.WithWorkers(o.workersFrom(cfg))), source.Resolve, nil
}

// config loads the configuration once and applies its log level unless
// --debug is set.
func (o *options) config() (*config.Configuration, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if !o.debug {
		log.SetLevel(cfg.Global().LogLevel())
	}

	o.cfg = cfg
	return cfg, nil
}

func (o *options) workersFrom(cfg *config.Configuration) int {
	if o.workers > 0 {
		return o.workers
	}
	return cfg.Global().Workers()
}

func printPaths(out io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(out, p); err != nil {
			return err
		}
	}
	return nil
}
