package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/crusherrl/icslinks"
	"github.com/crusherrl/icslinks/internal/config"
	"github.com/crusherrl/icslinks/internal/store"
)

// options carries flag values shared by every subcommand.
type options struct {
	configPath string
	verbose    bool

	providers []string
	labels    map[string]string
	urlsOnly  bool
	output    string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "icslinks",
		Short:        "Generate add-to-calendar links for webmail providers",
		Long:         `Builds Outlook, Office 365, Google, AOL and Yahoo compose links for one event and prints them as JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or JSON(C) config file (default $"+config.EnvConfigPath+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newParseCmd(opts))
	root.AddCommand(newICSCmd(opts))

	return root
}

func (o *options) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	path := o.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	o.cfg = cfg
	o.logger.Debug("config loaded", "path", path, "labels", len(cfg.Labels), "providers", len(cfg.Providers))
	return nil
}

// addOutputFlags registers the flags controlling what gets emitted.
func (o *options) addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&o.providers, "provider", "p", nil, "Only emit these providers (repeatable, e.g. google,yahoo)")
	cmd.Flags().StringToStringVarP(&o.labels, "label", "l", nil, "Override a provider label, e.g. google=\"My Google\"")
	cmd.Flags().BoolVar(&o.urlsOnly, "urls-only", false, "Emit client -> url instead of full records")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write JSON to this file instead of stdout")
}

// emit applies config and flag overrides to b and writes its links.  Flags
// win over the config file.
func (o *options) emit(cmd *cobra.Command, b *icslinks.Builder) error {
	b.SetLabels(o.cfg.LabelOverrides())
	for k, label := range o.labels {
		p, err := icslinks.ParseProvider(k)
		if err != nil {
			o.logger.Warn("ignoring label override", "client", k, "err", err)
			continue
		}
		b.SetLabels(map[icslinks.Provider]string{p: label})
	}

	ids, err := o.selectedProviders()
	if err != nil {
		return err
	}

	var links icslinks.LinkSet
	if len(ids) == 0 {
		links, err = b.All()
	} else {
		links, err = b.Subset(ids...)
	}
	if err != nil {
		return fmt.Errorf("generating links: %w", err)
	}

	var out any = links
	if o.urlsOnly || o.cfg.URLsOnly {
		out = links.URLs()
	}

	path := o.output
	if path == "" {
		path = o.cfg.Output
	}
	if path != "" {
		if err := store.WriteJSON(path, out); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		o.logger.Info("links written", "path", path, "count", len(links))
		return nil
	}

	data, err := store.Marshal(out)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (o *options) selectedProviders() ([]icslinks.Provider, error) {
	if len(o.providers) == 0 {
		return o.cfg.ProviderIDs()
	}
	ids := make([]icslinks.Provider, 0, len(o.providers))
	for _, s := range o.providers {
		p, err := icslinks.ParseProvider(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p)
	}
	return ids, nil
}
