package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"snowreport/internal/apiclient"
	"snowreport/internal/di"
	"snowreport/internal/services"
	"snowreport/internal/structures"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// Hooks the commands resolve their dependencies through; tests swap them.
var (
	initApp           = di.InitApp
	initScrapeService = di.InitScrapeService
	initRemoteClient  = di.InitRemoteClient
)

func NewRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:           "snowreport",
		Short:         "Ski resort status scraper and API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")
	cmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Log to console as well")

	cmd.AddCommand(newServeCmd(flags), newScrapeCmd(flags), newRemoteCmd(flags))
	return cmd
}

func newServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := initApp(flags)
			if err != nil {
				return fmt.Errorf("initializing app: %w", err)
			}
			defer cleanup()
			return app.Run()
		},
	}
}

func newScrapeCmd(flags *structures.CliFlags) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "scrape <slug>",
		Short: "Scrape one resort and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := initScrapeService(flags)
			if err != nil {
				return fmt.Errorf("initializing scraper: %w", err)
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runScrape(ctx, cmd.OutOrStdout(), svc, args[0], save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Store the result in the database")
	return cmd
}

func runScrape(ctx context.Context, out io.Writer, svc services.ScrapeServiceInterface, slug string, save bool) error {
	if save {
		rec, err := svc.ScrapeAndSave(ctx, slug)
		if err != nil {
			return err
		}
		return printJSON(out, rec)
	}
	res, err := svc.Scrape(ctx, slug)
	if err != nil {
		return err
	}
	return printJSON(out, res)
}

func newRemoteCmd(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Query a deployed scraping service",
	}

	remote := func(run func(ctx context.Context, c apiclient.ClientInterface, args []string) (any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			client, err := initRemoteClient(flags)
			if err != nil {
				return fmt.Errorf("initializing client: %w", err)
			}
			res, err := run(cmd.Context(), client, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "resort <slug>",
			Short: "Fetch one resort",
			Args:  cobra.ExactArgs(1),
			RunE: remote(func(ctx context.Context, c apiclient.ClientInterface, args []string) (any, error) {
				return c.GetResort(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "all",
			Short: "Fetch every resort",
			Args:  cobra.NoArgs,
			RunE: remote(func(ctx context.Context, c apiclient.ClientInterface, _ []string) (any, error) {
				return c.GetAllResorts(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Fetch the service status",
			Args:  cobra.NoArgs,
			RunE: remote(func(ctx context.Context, c apiclient.ClientInterface, _ []string) (any, error) {
				return c.GetStatus(ctx)
			}),
		},
	)
	return cmd
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
